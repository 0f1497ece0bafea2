package projectconfig

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed bootci.schema.json
var schemaJSON []byte

// printer renders jsonschema error kinds as English sentences.
var printer = message.NewPrinter(language.English)

var configSchema = compileConfigSchema()

func compileConfigSchema() *jsonschema.Schema {
	const name = "bootci.schema.json"

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("projectconfig: embedded %s is not JSON: %v", name, err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("projectconfig: adding %s: %v", name, err))
	}
	return c.MustCompile(name)
}

// violation is one schema failure at a location inside the config document.
type violation struct {
	Location []string
	Message  string
}

func (v violation) String() string {
	return "/" + strings.Join(v.Location, "/") + ": " + v.Message
}

// runParameter returns the defaults key a violation targets when that key is
// a run parameter (trials, confidence, workers or seed).
func (v violation) runParameter() (string, bool) {
	if len(v.Location) != 2 || v.Location[0] != "defaults" {
		return "", false
	}
	switch v.Location[1] {
	case "trials", "confidence", "workers", "seed":
		return v.Location[1], true
	}
	return "", false
}

// checkSchema validates a YAML-decoded document and returns its violations
// in document order, leaf causes only.
func checkSchema(doc any) []violation {
	err := configSchema.Validate(normalizeYAML(doc))
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []violation{{Message: err.Error()}}
	}

	var out []violation
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}
		out = append(out, violation{
			Location: e.InstanceLocation,
			Message:  e.ErrorKind.LocalizedString(printer),
		})
	}
	walk(ve)
	return out
}

// normalizeYAML turns the generic values yaml.v3 produces into the shapes the
// schema validator understands. Mappings with non-string keys become
// map[string]any so they are reported as schema violations instead of
// rejected as unknown types.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeYAML(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return val
	}
}

// lookup follows location through nested maps and returns the value found.
func lookup(doc any, location []string) any {
	cur := normalizeYAML(doc)
	for _, key := range location {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}
