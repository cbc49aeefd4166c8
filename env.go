package main

import (
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// binding pairs a storage handle (or function) with its semantic type. For
// variables the handle is the pointer produced by alloca; for functions it is
// the function itself and Type is the declared return type.
type binding struct {
	Value value.Value
	Type  types.Type
}

// Environment maps names to bindings and chains to an optional parent scope.
// The parent link is a non-owning back-reference: lookups walk outward, the
// chain is never mutated and never cyclic. The global scope has no parent.
type Environment struct {
	records map[string]binding
	parent  *Environment
	name    string
}

// NewEnvironment creates the global scope.
func NewEnvironment() *Environment {
	return &Environment{records: make(map[string]binding), name: "global"}
}

// NewEnclosedEnvironment creates a child scope of parent.
func NewEnclosedEnvironment(parent *Environment, name string) *Environment {
	return &Environment{records: make(map[string]binding), parent: parent, name: name}
}

// Define inserts or overwrites a binding in this scope. Redefinition always
// succeeds; it is how variable re-storage works.
func (e *Environment) Define(name string, val value.Value, typ types.Type) value.Value {
	e.records[name] = binding{Value: val, Type: typ}
	return val
}

// Lookup resolves name in the nearest enclosing scope that defines it. The
// second result is false when no scope in the chain defines the name; callers
// decide whether that is an error.
func (e *Environment) Lookup(name string) (binding, bool) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.records[name]; ok {
			return b, true
		}
	}
	return binding{}, false
}
