/*
Package domain contains the data model of the Tabula grid editor.

It defines the record shape being edited, the composite value carried inside it,
the ephemeral update intent consumed by the dispatcher, and the cell-level diff
surfaces use to report what an edit changed. The package is kept pure: no I/O,
no validation policy and no rendering.

# Key Entities

  - Patient: one row of the bundled dataset (id, name, age, email, blood pressure).
  - BloodPressure: a composite of three numeric readings edited as one unit.
  - Intent: a single pending mutation addressed by row index and field identifier.
  - CellChange: one cell whose value differs between two snapshots.
*/
package domain
