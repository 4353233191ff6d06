// Package schema is the validation layer of the grid editor.
//
// It decides, without panicking, whether a value of erased shape conforms to a
// field's expected shape. Field shapes form a closed set of kinds (number,
// text, composite); each Type belongs to exactly one kind.
//
// Basic usage:
//
//	s := schema.Schema{
//	    "name":          schema.Text(),
//	    "age":           schema.Number(schema.NaNReject),
//	    "bloodPressure": schema.BloodPressure(schema.NaNReject),
//	}
//
//	data := map[string]any{
//	    "name":          "John Doe",
//	    "age":           30,
//	    "bloodPressure": map[string]any{"systolic": 120, "diastolic": 80, "average": 100},
//	}
//
//	if err := schema.Validate(s, data); err != nil {
//	    // Handle validation errors
//	}
//
// The narrowing guards (IsNumber, IsText, IsComposite) are the single
// authority used both when a cell renders and when an edit is dispatched.
// Composite values may arrive as the typed struct, a pointer to it, or a
// map decoded from JSON; all three are accepted.
package schema
