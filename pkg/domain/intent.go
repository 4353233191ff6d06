package domain

// Intent describes one pending mutation: replace Field of the record at Row with Value.
// Intents are created by a cell's change callback and consumed immediately by the dispatcher.
type Intent struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Value any    `json:"value"`
}
