package ast

// Visitor is called for every atom and command in depth-first order.
// Returning false from VisitAtom skips the atom's commands.
type Visitor interface {
	VisitAtom(a *Atom) bool
	VisitCommand(c *Command)
}

// Walk traverses root depth-first.
func Walk(root *Atom, v Visitor) {
	if !v.VisitAtom(root) || !root.Kind.IsGroup() {
		return
	}
	for i := range root.Commands {
		cmd := &root.Commands[i]
		v.VisitCommand(cmd)
		for j := range cmd.Atoms {
			Walk(&cmd.Atoms[j], v)
		}
	}
}

// SameShape reports whether a and b are equal ignoring spans.
func SameShape(a, b Atom) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Identifier:
		return a.Name == b.Name
	case Number:
		return a.Number == b.Number
	case String:
		return a.Text == b.Text
	}
	if len(a.Commands) != len(b.Commands) {
		return false
	}
	for i := range a.Commands {
		ca, cb := a.Commands[i], b.Commands[i]
		if len(ca.Atoms) != len(cb.Atoms) {
			return false
		}
		for j := range ca.Atoms {
			if !SameShape(ca.Atoms[j], cb.Atoms[j]) {
				return false
			}
		}
	}
	return true
}
