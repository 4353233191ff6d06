package columns

import (
	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/schema"
)

// Patients returns the column table of the patient grid.
func Patients(policy schema.NaNPolicy) *Registry[domain.Patient] {
	return MustRegistry(
		Integer(domain.FieldID, "ID",
			func(p domain.Patient) int { return p.ID },
			func(p domain.Patient, v int) domain.Patient { p.ID = v; return p },
		),
		Text(domain.FieldName, "Name",
			func(p domain.Patient) string { return p.Name },
			func(p domain.Patient, v string) domain.Patient { p.Name = v; return p },
		),
		Number(domain.FieldAge, "Age", policy,
			func(p domain.Patient) float64 { return p.Age },
			func(p domain.Patient, v float64) domain.Patient { p.Age = v; return p },
		),
		Email(domain.FieldEmail, "Email",
			func(p domain.Patient) string { return p.Email },
			func(p domain.Patient, v string) domain.Patient { p.Email = v; return p },
		),
		Composite(domain.FieldBloodPressure, "Blood Pressure", schema.BloodPressure(policy),
			func(p domain.Patient) domain.BloodPressure { return p.BloodPressure },
			func(p domain.Patient, v domain.BloodPressure) domain.Patient { p.BloodPressure = v; return p },
		),
	)
}
