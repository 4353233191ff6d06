/*
Package columns is the declarative column registry of the grid.

A Column binds a field identifier to its header renderer, its cell renderer,
its validation type and typed accessors into the record. The constructors
(Number, Integer, Text, Email, Composite) are the only way to build a column,
so a column's cell editor, its guard and its setter always agree on the
field's shape.

Cell renderers follow one contract:

  - if the current value does not have the field's shape, render view.Empty();
  - otherwise render an editable control seeded with the value;
  - on every edit event, build a complete value of the field's shape and call
    onChange exactly once.

Composite cells render one numeric sub-editor per sub-field and always emit
the whole composite with only the edited sub-field changed.

A Registry is fixed at construction; there is no dynamic registration.
*/
package columns
