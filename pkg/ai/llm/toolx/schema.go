package toolx

import "maps"

// Property describes one tool argument.
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Format      string   `json:"format,omitempty"`
	Pattern     string   `json:"pattern,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty"`
	Default     any      `json:"default,omitempty"`
}

// Schema is the parameter schema of a tool: an object with named
// properties, a required list and no additional properties.
type Schema struct {
	Properties map[string]Property
	Required   []string
	// Order fixes property order in generated documentation.
	Order []string
}

// DatePattern matches YYYY-MM-DD.
const DatePattern = `^\d{4}-\d{2}-\d{2}$`

func String(desc string) Property {
	return Property{Type: "string", Description: desc}
}

func Date(desc string) Property {
	return Property{Type: "string", Description: desc, Format: "date", Pattern: DatePattern}
}

func Integer(desc string, min, max *float64) Property {
	return Property{Type: "integer", Description: desc, Minimum: min, Maximum: max}
}

func Bound(v float64) *float64 {
	return &v
}

func (p Property) WithDefault(v any) Property {
	p.Default = v
	return p
}

func (p Property) WithEnum(values ...string) Property {
	p.Enum = values
	return p
}

// JSON renders the schema as a JSON-schema document.
func (s Schema) JSON() map[string]any {
	props := make(map[string]any, len(s.Properties))
	for name, p := range s.Properties {
		props[name] = p
	}
	required := s.Required
	if required == nil {
		required = []string{}
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

// withDefaults returns a copy of args where null values are dropped and
// absent optional properties take their declared default.
func (s Schema) withDefaults(args map[string]any) map[string]any {
	out := make(map[string]any, len(s.Properties))
	maps.Copy(out, args)
	for k, v := range out {
		if v == nil {
			delete(out, k)
		}
	}
	for name, p := range s.Properties {
		if _, ok := out[name]; !ok && p.Default != nil {
			out[name] = p.Default
		}
	}
	return out
}
