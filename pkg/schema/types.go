package schema

import (
	"fmt"
	"math"
	"strings"
)

// Kind is the closed set of field shapes a grid column can hold.
type Kind int

const (
	KindNumber Kind = iota + 1
	KindText
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Type defines the contract for field validation.
// Implementations determine how values are validated against a type.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "text", "number").
	Name() string
	// Kind returns the shape family the type belongs to.
	Kind() Kind
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// NaNPolicy decides whether the not-a-number sentinel is an acceptable number.
type NaNPolicy int

const (
	// NaNReject treats NaN as malformed, so unparseable numeric input is dropped.
	NaNReject NaNPolicy = iota
	// NaNPassthrough accepts NaN like any other number.
	NaNPassthrough
)

func (p NaNPolicy) String() string {
	if p == NaNPassthrough {
		return "passthrough"
	}
	return "reject"
}

// ParseNaNPolicy converts a configuration string to a NaNPolicy.
func ParseNaNPolicy(s string) (NaNPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return NaNReject, nil
	case "passthrough":
		return NaNPassthrough, nil
	default:
		return NaNReject, fmt.Errorf("unsupported nan policy: %s", s)
	}
}

// --- Built-in Type Implementations ---

// NumberType validates floating-point values.
type NumberType struct {
	policy NaNPolicy
}

func (t *NumberType) Name() string { return "number" }

func (t *NumberType) Kind() Kind { return KindNumber }

func (t *NumberType) Validate(value any) error {
	n, ok := ToFloat(value)
	if !ok {
		return fmt.Errorf("expected number, got %T", value)
	}
	if math.IsNaN(n) && t.policy == NaNReject {
		return fmt.Errorf("expected number, got NaN")
	}
	return nil
}

// IntType validates integer values.
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Kind() Kind { return KindNumber }

func (t *IntType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64:
		return nil
	case float64:
		// Accept floats that are whole numbers (from JSON unmarshaling)
		if math.IsInf(v, 0) || v != math.Trunc(v) {
			return fmt.Errorf("expected int, got float (not a whole number)")
		}
		if _, ok := ToInt(v); !ok {
			return fmt.Errorf("expected int, got %g (out of range)", v)
		}
		return nil
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
}

// TextType validates free text values.
type TextType struct{}

func (t *TextType) Name() string { return "text" }

func (t *TextType) Kind() Kind { return KindText }

func (t *TextType) Validate(value any) error {
	if !IsText(value) {
		return fmt.Errorf("expected text, got %T", value)
	}
	return nil
}

// EmailType validates formatted text holding an email address.
// Only the type tag is checked; the format is a hint for the input control.
type EmailType struct{}

func (t *EmailType) Name() string { return "email" }

func (t *EmailType) Kind() Kind { return KindText }

func (t *EmailType) Validate(value any) error {
	if !IsText(value) {
		return fmt.Errorf("expected email text, got %T", value)
	}
	return nil
}

// CompositeType validates a fixed-shape group of named numeric sub-fields.
type CompositeType struct {
	name   string
	fields []string
	policy NaNPolicy
}

func (t *CompositeType) Name() string { return t.name }

func (t *CompositeType) Kind() Kind { return KindComposite }

// Fields returns the declared sub-field names in display order.
func (t *CompositeType) Fields() []string {
	out := make([]string, len(t.fields))
	copy(out, t.fields)
	return out
}

func (t *CompositeType) Validate(value any) error {
	values, err := t.values(value)
	if err != nil {
		return err
	}
	if t.policy == NaNReject {
		for _, f := range t.fields {
			if math.IsNaN(values[f]) {
				return fmt.Errorf("%s.%s: expected number, got NaN", t.name, f)
			}
		}
	}
	return nil
}

// --- Factory Functions ---

// Number creates a number type validator.
func Number(policy NaNPolicy) Type { return &NumberType{policy: policy} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// Text creates a free text type validator.
func Text() Type { return &TextType{} }

// Email creates an email text type validator.
func Email() Type { return &EmailType{} }

// Composite creates a composite type validator requiring every listed sub-field.
func Composite(name string, policy NaNPolicy, fields ...string) *CompositeType {
	return &CompositeType{name: name, fields: fields, policy: policy}
}

// BloodPressure creates the systolic/diastolic/average composite.
func BloodPressure(policy NaNPolicy) *CompositeType {
	return Composite("bloodPressure", policy, "systolic", "diastolic", "average")
}
