package view

// Kind identifies the node variant.
type Kind string

const (
	KindEmpty Kind = "empty"
	KindText  Kind = "text"
	KindInput Kind = "input"
	KindGroup Kind = "group"
)

// InputKind tells the surface which control to draw.
type InputKind string

const (
	InputText   InputKind = "text"
	InputEmail  InputKind = "email"
	InputNumber InputKind = "number"
)

// Input is the typed input control primitive: a current value, a kind and a
// change callback receiving the control's raw edited content.
type Input struct {
	Kind     InputKind        `json:"kind"`
	Name     string           `json:"name"`
	Value    string           `json:"value"`
	OnChange func(raw string) `json:"-"`
}

// Change reports one user edit event to the owner of the control.
func (i *Input) Change(raw string) {
	if i == nil || i.OnChange == nil {
		return
	}
	i.OnChange(raw)
}

// Node is one element of a rendered cell or header.
type Node struct {
	Kind     Kind   `json:"kind"`
	Text     string `json:"text,omitempty"`
	Label    string `json:"label,omitempty"`
	Input    *Input `json:"input,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Empty is the degraded render of a cell whose value has the wrong shape.
func Empty() Node {
	return Node{Kind: KindEmpty}
}

// Text renders static text.
func Text(s string) Node {
	return Node{Kind: KindText, Text: s}
}

// Group renders labelled children side by side.
func Group(label string, children ...Node) Node {
	return Node{Kind: KindGroup, Label: label, Children: children}
}

// NewInput renders an editable control seeded with value.
func NewInput(kind InputKind, name, value string, onChange func(raw string)) Node {
	return Node{
		Kind:  KindInput,
		Label: name,
		Input: &Input{Kind: kind, Name: name, Value: value, OnChange: onChange},
	}
}

// IsEmpty reports whether the node renders nothing.
func (n Node) IsEmpty() bool {
	return n.Kind == KindEmpty || n.Kind == ""
}

// Inputs returns every input control in the tree, depth first.
func (n Node) Inputs() []*Input {
	var out []*Input
	n.walk(func(node Node) {
		if node.Kind == KindInput && node.Input != nil {
			out = append(out, node.Input)
		}
	})
	return out
}

// FindInput returns the control with the given name. An empty name matches
// the first control, which is how scalar cells are addressed.
func (n Node) FindInput(name string) (*Input, bool) {
	for _, in := range n.Inputs() {
		if name == "" || in.Name == name {
			return in, true
		}
	}
	return nil, false
}

// PlainText flattens the tree into display text.
func (n Node) PlainText() string {
	switch n.Kind {
	case KindText:
		return n.Text
	case KindInput:
		if n.Input == nil {
			return ""
		}
		return n.Input.Value
	case KindGroup:
		out := ""
		for i, child := range n.Children {
			if i > 0 {
				out += " / "
			}
			out += child.PlainText()
		}
		return out
	default:
		return ""
	}
}

func (n Node) walk(fn func(Node)) {
	fn(n)
	for _, child := range n.Children {
		child.walk(fn)
	}
}
