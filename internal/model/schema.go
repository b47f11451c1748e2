package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://msgram.schemas.local/model.schema.json"

const modelSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["characteristics", "interpretation"],
  "properties": {
    "version": {"type": "string"},
    "characteristics": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["key", "weight", "subcharacteristics"],
        "properties": {
          "key": {"type": "string", "minLength": 1},
          "weight": {"type": "number", "minimum": 0, "maximum": 100},
          "subcharacteristics": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["key", "weight", "measures"],
              "properties": {
                "key": {"type": "string", "minLength": 1},
                "weight": {"type": "number", "minimum": 0, "maximum": 100},
                "measures": {
                  "type": "array",
                  "minItems": 1,
                  "items": {"$ref": "#/$defs/weighted"}
                }
              }
            }
          }
        }
      }
    },
    "interpretation": {
      "type": "object",
      "required": ["bands"],
      "properties": {
        "bands": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "object",
            "required": ["label"],
            "properties": {
              "label": {"type": "string", "minLength": 1},
              "max": {"type": "number"}
            }
          }
        }
      }
    }
  },
  "$defs": {
    "weighted": {
      "type": "object",
      "required": ["key", "weight"],
      "properties": {
        "key": {"type": "string", "minLength": 1},
        "weight": {"type": "number", "minimum": 0, "maximum": 100}
      }
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, strings.NewReader(modelSchema)); err != nil {
		return nil, fmt.Errorf("model schema load failed: %w", err)
	}
	return c.Compile(schemaURL)
})

// validateSchema checks the decoded document shape. The value is
// round-tripped through encoding/json so YAML and JSON input validate alike.
func validateSchema(raw any) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return InvalidWeights("model is not a JSON-compatible document: " + err.Error())
	}
	var doc any
	if err := json.Unmarshal(buf, &doc); err != nil {
		return InvalidWeights("model is not a JSON-compatible document: " + err.Error())
	}
	if err := schema.Validate(doc); err != nil {
		return InvalidWeights("model schema: " + err.Error())
	}
	return nil
}
