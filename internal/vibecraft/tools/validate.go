package tools

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compileSchema turns a tool's raw schema document into a compiled
// validator. Schemas are package constants, so a compile failure is a
// programming error and panics at startup rather than at call time.
func compileSchema(name, schema string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schema))
	if err != nil {
		panic(fmt.Sprintf("tools: schema for %s does not parse: %v", name, err))
	}

	c := jsonschema.NewCompiler()
	url := name + ".schema.json"
	if err := c.AddResource(url, doc); err != nil {
		panic(fmt.Sprintf("tools: schema for %s rejected: %v", name, err))
	}
	compiled, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("tools: schema for %s does not compile: %v", name, err))
	}
	return compiled
}

// validateArgs checks a tool invocation's arguments against the tool's
// published schema before the handler does anything with them.
func validateArgs(schema *jsonschema.Schema, args map[string]interface{}) error {
	if args == nil {
		args = map[string]interface{}{}
	}
	// The validator wants plain decoded JSON; the arguments already are.
	return schema.Validate(normalizeForSchema(args))
}

// normalizeForSchema rewrites the argument tree so every value has one
// of the shapes the validator understands (json.Unmarshal produces
// these natively; arguments assembled in-process may carry Go ints).
func normalizeForSchema(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = normalizeForSchema(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = normalizeForSchema(val)
		}
		return out
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}
