package schema

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// values narrows an erased composite value (struct, pointer to struct or map)
// into its sub-field numbers.
func (t *CompositeType) values(value any) (map[string]float64, error) {
	if value == nil {
		return nil, fmt.Errorf("expected %s, got nil", t.name)
	}

	var raw map[string]any
	if err := mapstructure.Decode(value, &raw); err != nil {
		return nil, fmt.Errorf("expected %s, got %T", t.name, value)
	}
	if raw == nil {
		return nil, fmt.Errorf("expected %s, got nil", t.name)
	}

	out := make(map[string]float64, len(t.fields))
	for _, f := range t.fields {
		v, ok := raw[f]
		if !ok {
			return nil, fmt.Errorf("%s.%s: required", t.name, f)
		}
		n, ok := ToFloat(v)
		if !ok {
			return nil, fmt.Errorf("%s.%s: expected number, got %T", t.name, f, v)
		}
		out[f] = n
	}
	return out, nil
}

// Values returns the sub-field numbers of value, or false if value does not
// have the composite's shape. The NaN policy is not applied.
func (t *CompositeType) Values(value any) (map[string]float64, bool) {
	out, err := t.values(value)
	return out, err == nil
}

// DecodeComposite fills out (a pointer to the typed composite) from sub-field numbers.
func DecodeComposite(values map[string]float64, out any) error {
	if err := mapstructure.Decode(values, out); err != nil {
		return fmt.Errorf("decode composite: %w", err)
	}
	return nil
}
