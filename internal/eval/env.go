// Package eval runs a parsed brace program against a fixed set of builtins.
package eval

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"golang.org/x/text/unicode/norm"

	"brace/internal/ast"
)

// Builtin is a command implemented in Go.
type Builtin interface {
	Name() string
	Call(ctx context.Context, fr *Frame, args []ast.Atom) error
}

// Func adapts a plain function to Builtin.
type Func struct {
	ID string
	Fn func(ctx context.Context, fr *Frame, args []ast.Atom) error
}

func (f Func) Name() string { return f.ID }

func (f Func) Call(ctx context.Context, fr *Frame, args []ast.Atom) error {
	return f.Fn(ctx, fr, args)
}

// Env maps command names to builtins. It cannot change after NewEnv.
type Env struct {
	builtins map[string]Builtin
}

// NewEnv builds an environment from builtins. Names are stored in NFC so
// that "café" typed with a combining accent finds the same command.
// It panics on an empty or duplicate name.
func NewEnv(builtins ...Builtin) *Env {
	env := &Env{builtins: make(map[string]Builtin, len(builtins))}
	for _, b := range builtins {
		name := norm.NFC.String(b.Name())
		if name == "" {
			panic("eval: builtin with empty name")
		}
		if _, dup := env.builtins[name]; dup {
			panic(fmt.Sprintf("eval: duplicate builtin %q", name))
		}
		env.builtins[name] = b
	}
	return env
}

// DefaultEnv is the environment used by `brace run`.
func DefaultEnv() *Env {
	return NewEnv(Echo{})
}

// Lookup finds the builtin registered under name.
func (e *Env) Lookup(name string) (Builtin, bool) {
	if e == nil {
		return nil, false
	}
	b, ok := e.builtins[norm.NFC.String(name)]
	return b, ok
}

// Names lists the registered commands in sorted order.
func (e *Env) Names() []string {
	if e == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(e.builtins))
}
