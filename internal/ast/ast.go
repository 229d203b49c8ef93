// Package ast defines the syntax tree produced by the parser.
//
// A program is an Atom of kind Batch. Batch and Inline atoms hold Commands;
// every group yields at least one Command, possibly empty, because the
// command after the last ';' is always kept.
package ast

import (
	"fmt"

	"brace/internal/source"
)

// AtomKind tells which payload field of an Atom is meaningful.
type AtomKind uint8

const (
	// Identifier uses Atom.Name.
	Identifier AtomKind = iota
	// Number uses Atom.Number.
	Number
	// String uses Atom.Text, already unescaped.
	String
	// Batch uses Atom.Commands; it comes from '{ ... }' and from the file itself.
	Batch
	// Inline uses Atom.Commands; it comes from '[ ... ]'.
	Inline
)

var atomKindNames = [...]string{
	Identifier: "Identifier",
	Number:     "Number",
	String:     "String",
	Batch:      "Batch",
	Inline:     "Inline",
}

func (k AtomKind) String() string {
	if int(k) < len(atomKindNames) {
		return atomKindNames[k]
	}
	return fmt.Sprintf("AtomKind(%d)", uint8(k))
}

// MarshalText renders the kind by name in JSON and msgpack output.
func (k AtomKind) MarshalText() ([]byte, error) {
	if int(k) >= len(atomKindNames) {
		return nil, fmt.Errorf("ast: invalid atom kind %d", uint8(k))
	}
	return []byte(atomKindNames[k]), nil
}

func (k *AtomKind) UnmarshalText(b []byte) error {
	for i, name := range atomKindNames {
		if name == string(b) {
			*k = AtomKind(i) // #nosec G115 -- i < len(atomKindNames)
			return nil
		}
	}
	return fmt.Errorf("ast: unknown atom kind %q", b)
}

// Atom is one value inside a Command.
type Atom struct {
	Kind     AtomKind    `json:"kind" msgpack:"kind"`
	Span     source.Span `json:"span" msgpack:"span"`
	Name     string      `json:"name,omitempty" msgpack:"name,omitempty"`
	Number   uint64      `json:"number,omitempty" msgpack:"number,omitempty"`
	Text     string      `json:"text,omitempty" msgpack:"text,omitempty"`
	Commands []Command   `json:"commands,omitempty" msgpack:"commands,omitempty"`
}

// Command is a run of atoms terminated by ';' or the end of its group.
// Its span starts right after the preceding boundary even when it is empty.
type Command struct {
	Atoms []Atom      `json:"atoms" msgpack:"atoms"`
	Span  source.Span `json:"span" msgpack:"span"`
}

func NewIdent(name string, sp source.Span) Atom {
	return Atom{Kind: Identifier, Name: name, Span: sp}
}

func NewNumber(n uint64, sp source.Span) Atom {
	return Atom{Kind: Number, Number: n, Span: sp}
}

func NewString(text string, sp source.Span) Atom {
	return Atom{Kind: String, Text: text, Span: sp}
}

func NewGroup(kind AtomKind, cmds []Command, sp source.Span) Atom {
	if !kind.IsGroup() {
		panic("ast: NewGroup with " + kind.String())
	}
	return Atom{Kind: kind, Commands: cmds, Span: sp}
}

// IsGroup reports whether atoms of kind k carry commands.
func (k AtomKind) IsGroup() bool { return k == Batch || k == Inline }

// Empty reports whether the command has no atoms.
func (c Command) Empty() bool { return len(c.Atoms) == 0 }

// Head returns the first atom of the command.
func (c Command) Head() (Atom, bool) {
	if len(c.Atoms) == 0 {
		return Atom{}, false
	}
	return c.Atoms[0], true
}

// Args returns every atom after the first.
func (c Command) Args() []Atom {
	if len(c.Atoms) < 2 {
		return nil
	}
	return c.Atoms[1:]
}
