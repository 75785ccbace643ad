package llm

// Schema describes the structured output requested from a backend. Properties
// uses JSON Schema keywords so the same value can be handed to every provider.
type Schema struct {
	Name        string
	Description string
	Properties  map[string]any
	Required    []string
}

// JSON returns the schema as a JSON Schema object.
func (s Schema) JSON() map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           s.Properties,
		"required":             s.Required,
		"additionalProperties": false,
	}
}

// Enum returns the enum values declared for a string property, if any.
func (s Schema) Enum(property string) []string {
	prop, ok := s.Properties[property].(map[string]any)
	if !ok {
		return nil
	}
	values, _ := prop["enum"].([]string)
	return values
}
