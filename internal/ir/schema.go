package ir

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is the JSON Schema of a serialized Play.
const Schema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Play",
  "type": "object",
  "required": ["acts"],
  "properties": {
    "title": {"type": "string"},
    "subtitle": {"type": "string"},
    "acts": {"type": "array", "items": {"$ref": "#/definitions/act"}}
  },
  "definitions": {
    "act": {
      "type": "object",
      "required": ["kind", "scenes"],
      "properties": {
        "kind": {"enum": ["induct", "prologue", "act", "epilogue"]},
        "title": {"type": "string"},
        "scenes": {"type": "array", "items": {"$ref": "#/definitions/scene"}}
      }
    },
    "scene": {
      "type": "object",
      "required": ["kind", "parts"],
      "properties": {
        "kind": {"enum": ["scene", "prologue", "epilogue"]},
        "title": {"type": "string"},
        "parts": {"type": "array", "items": {"$ref": "#/definitions/part"}}
      }
    },
    "part": {
      "type": "object",
      "required": ["type"],
      "properties": {
        "type": {"enum": ["speech", "stagedir"]},
        "speech": {"$ref": "#/definitions/speech"},
        "stagedir": {"$ref": "#/definitions/stagedir"}
      }
    },
    "speech": {
      "type": "object",
      "required": ["speakers", "lines"],
      "properties": {
        "speakers": {"type": "array", "items": {"type": "string"}},
        "lines": {"type": "array", "items": {"$ref": "#/definitions/linegroup"}}
      }
    },
    "linegroup": {
      "type": "object",
      "required": ["type"],
      "properties": {
        "type": {"enum": ["line", "stagedir"]},
        "line": {
          "type": "object",
          "required": ["fragments"],
          "properties": {
            "fragments": {"type": "array", "items": {"$ref": "#/definitions/fragment"}}
          }
        },
        "stagedir": {"$ref": "#/definitions/stagedir"}
      }
    },
    "fragment": {
      "type": "object",
      "required": ["kind", "text"],
      "properties": {
        "kind": {"enum": ["text", "parenthetical"]},
        "text": {"type": "string"}
      }
    },
    "stagedir": {
      "type": "object",
      "required": ["text"],
      "properties": {"text": {"type": "string"}}
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(Schema)

// ValidateJSON checks serialized play data against Schema.
func ValidateJSON(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to validate play JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("play JSON does not match schema: %s", strings.Join(msgs, "; "))
}
