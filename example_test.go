package tabula_test

import (
	"fmt"
	"log"

	"github.com/aretw0/tabula"
)

// ExampleNew edits one sub-field of a composite cell and lists the result.
func ExampleNew() {
	ed, err := tabula.New()
	if err != nil {
		log.Fatal(err)
	}

	changes, err := ed.Table().Edit(0, "bloodPressure", "systolic", "125")
	if err != nil {
		log.Fatal(err)
	}

	for _, c := range changes {
		fmt.Printf("row %d %s: %v -> %v\n", c.Row, c.Field, c.Old, c.New)
	}

	// An unparseable number is dropped.
	changes, _ = ed.Table().Edit(0, "age", "", "thirty")
	fmt.Println(len(changes))

	// Output:
	// row 0 bloodPressure: 120 / 80 / 100 -> 125 / 80 / 100
	// 0
}
