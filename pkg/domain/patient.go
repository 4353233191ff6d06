package domain

import (
	"math"
	"strconv"
)

// Field identifiers of the Patient record.
const (
	FieldID            = "id"
	FieldName          = "name"
	FieldAge           = "age"
	FieldEmail         = "email"
	FieldBloodPressure = "bloodPressure"
)

// Sub-field identifiers of the BloodPressure composite.
const (
	SubSystolic  = "systolic"
	SubDiastolic = "diastolic"
	SubAverage   = "average"
)

// BloodPressure is a composite reading. All three sub-fields are always present.
type BloodPressure struct {
	Systolic  float64 `json:"systolic" yaml:"systolic" mapstructure:"systolic"`
	Diastolic float64 `json:"diastolic" yaml:"diastolic" mapstructure:"diastolic"`
	Average   float64 `json:"average" yaml:"average" mapstructure:"average"`
}

// Equal compares two readings, treating NaN sub-fields as equal to each other.
func (b BloodPressure) Equal(other BloodPressure) bool {
	return sameFloat(b.Systolic, other.Systolic) &&
		sameFloat(b.Diastolic, other.Diastolic) &&
		sameFloat(b.Average, other.Average)
}

// String renders the reading as "systolic / diastolic / average".
func (b BloodPressure) String() string {
	return formatFloat(b.Systolic) + " / " + formatFloat(b.Diastolic) + " / " + formatFloat(b.Average)
}

// Patient is one row of the dataset.
type Patient struct {
	ID            int           `json:"id" yaml:"id" mapstructure:"id"`
	Name          string        `json:"name" yaml:"name" mapstructure:"name"`
	Age           float64       `json:"age" yaml:"age" mapstructure:"age"`
	Email         string        `json:"email" yaml:"email" mapstructure:"email"`
	BloodPressure BloodPressure `json:"bloodPressure" yaml:"bloodPressure" mapstructure:"bloodPressure"`
}

// SamplePatients returns the dataset the editor starts with when no seed file is given.
func SamplePatients() []Patient {
	return []Patient{
		{
			ID:            1,
			Name:          "John Doe",
			Age:           28,
			Email:         "john@example.com",
			BloodPressure: BloodPressure{Systolic: 120, Diastolic: 80, Average: 100},
		},
		{
			ID:            2,
			Name:          "Jane Smith",
			Age:           34,
			Email:         "jane@example.com",
			BloodPressure: BloodPressure{Systolic: 130, Diastolic: 85, Average: 107.5},
		},
		{
			ID:            3,
			Name:          "Sam Johnson",
			Age:           45,
			Email:         "sam@example.com",
			BloodPressure: BloodPressure{Systolic: 140, Diastolic: 90, Average: 115},
		},
	}
}

func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
