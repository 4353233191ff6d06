/*
Package tabula is a type-safe, in-memory tabular data editor.

A fixed table of column descriptors drives how each record field is shown,
how raw edited input is checked and coerced back into the field's type, and
how a single edit lands on the dataset without touching other rows or fields.

# Concept

Every edit flows through one path:

	cell control -> change callback -> narrowing guard -> intent -> reducer -> new snapshot

The reducer never mutates a snapshot. An edit that fails validation, names an
unknown field or points past the last row is dropped and the previous snapshot
stays current.

# Usage

	ed, err := tabula.New()
	if err != nil {
		log.Fatal(err)
	}

	table := ed.Table()
	changes, err := table.Edit(0, "bloodPressure", "systolic", "125")

Surfaces shipped with the module (terminal, HTTP, MCP) only talk to
grid.Table, so a new surface needs nothing else.

# Packages

  - pkg/schema: value types, narrowing guards, record validation.
  - pkg/columns: column descriptors and the registry.
  - pkg/dispatch: the reducer, the dispatcher and callback binding.
  - pkg/grid: headers, bound cells and snapshots for surfaces.
*/
package tabula
