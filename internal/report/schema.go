package report

// Schema is the JSON Schema (Draft 2020-12) for the export manifest
// JSON output. It documents the structure returned by WriteJSON.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/export262/manifest.schema.json",
  "title": "Export262 Manifest",
  "description": "Output schema for export262 export --format=json",
  "type": "object",
  "required": ["version", "manifest"],
  "properties": {
    "version": {
      "type": "string",
      "description": "Schema version (semver)"
    },
    "manifest": { "$ref": "#/$defs/Manifest" }
  },
  "$defs": {
    "Manifest": {
      "type": "object",
      "required": ["source_dir", "out_dir", "files", "summary"],
      "properties": {
        "source_dir": {
          "type": "string",
          "description": "Absolute path of the jstest source tree"
        },
        "out_dir": {
          "type": "string",
          "description": "Absolute path of the exported tree"
        },
        "files": {
          "type": "array",
          "items": { "$ref": "#/$defs/FileResult" }
        },
        "summary": { "$ref": "#/$defs/Summary" }
      }
    },
    "FileResult": {
      "type": "object",
      "required": ["path", "action"],
      "properties": {
        "path": {
          "type": "string",
          "description": "File path relative to the source root"
        },
        "action": {
          "type": "string",
          "enum": ["converted", "copied", "skipped"]
        },
        "rewritten": {
          "type": "integer",
          "description": "reportCompare calls rewritten to assert.sameValue"
        },
        "removed": {
          "type": "integer",
          "description": "No-op harness calls removed"
        },
        "had_header": {
          "type": "boolean",
          "description": "A |reftest| header was stripped"
        },
        "features": {
          "type": "array",
          "items": { "type": "string" },
          "description": "Globals the test depends on (from skip-if)"
        },
        "negative_type": {
          "type": "string",
          "description": "Expected error constructor for negative tests"
        },
        "module": {
          "type": "boolean",
          "description": "Test carries the module flag"
        }
      }
    },
    "Summary": {
      "type": "object",
      "required": ["converted", "copied", "skipped", "rewritten", "removed"],
      "properties": {
        "converted": { "type": "integer" },
        "copied": { "type": "integer" },
        "skipped": { "type": "integer" },
        "rewritten": { "type": "integer" },
        "removed": { "type": "integer" }
      }
    }
  }
}`
