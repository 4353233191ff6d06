package schema

import (
	"maps"
	"slices"
)

// Schema maps record field names to their expected types.
// Example: {"name": Text(), "age": Number(NaNReject), "bloodPressure": BloodPressure(NaNReject)}
type Schema map[string]Type

// Validate checks a whole record, given as a field map, against the schema.
// Every failure is collected; fields are reported in name order and keys the
// schema does not know are failures too.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		// No schema = no validation
		return nil
	}

	var errs []error

	for _, fieldName := range slices.Sorted(maps.Keys(schema)) {
		value, exists := data[fieldName]
		if !exists {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "required",
				Value:  nil,
			})
			continue
		}

		if err := schema[fieldName].Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	for _, key := range slices.Sorted(maps.Keys(data)) {
		if _, known := schema[key]; !known {
			errs = append(errs, &ValidationError{
				Key:    key,
				Reason: "not a column",
				Value:  data[key],
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}

// ValidateField checks a single value against the type registered for field.
func ValidateField(schema Schema, field string, value any) error {
	t, ok := schema[field]
	if !ok {
		return &ValidationError{Key: field, Reason: "not a column", Value: value}
	}
	if err := t.Validate(value); err != nil {
		return &ValidationError{Key: field, Reason: err.Error(), Value: value}
	}
	return nil
}
