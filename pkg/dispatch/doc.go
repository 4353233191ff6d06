/*
Package dispatch owns the dataset and is its only writer.

Every edit reaches the dataset through Dispatcher.Apply, which runs the pure
Reduce transition: the new snapshot equals the old one everywhere except the
addressed cell, and only that field of the addressed row is replaced.
Snapshots are never mutated after they are published.

Malformed values, out-of-range rows and unknown fields are not errors: the
intent is dropped, the current snapshot is returned unchanged, and the
discard is reported through EditHooks.

Dispatch and Bind are the callback binding between rendered cells and the
dispatcher: they validate an erased value against the column's type before an
intent is formed.
*/
package dispatch
