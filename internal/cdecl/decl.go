package cdecl

import "cdeclgen/internal/model"

// Decl is a type decomposed into a base type and the declarators applied
// to it. The zero Decl is not useful; build one with FromType or FromFunc.
type Decl struct {
	terminal terminal

	// declarators[0] binds closest to the identifier, the last one binds
	// closest to the base type.
	declarators []declarator
}

// terminal is the base type a chain of declarators ends on.
type terminal struct {
	isConst  bool
	name     string
	generics []model.Type
	tag      model.DeclarationType
}

type declarator interface {
	isDeclarator()
}

type ptrDeclarator struct {
	isConst    bool
	isNullable bool
	isRef      bool
}

type arrayDeclarator struct {
	len string
}

type funcDeclarator struct {
	args     []funcArg
	vertical bool
}

type funcArg struct {
	name string // may be empty
	decl Decl
}

func (ptrDeclarator) isDeclarator()   {}
func (arrayDeclarator) isDeclarator() {}
func (funcDeclarator) isDeclarator()  {}

func isPtr(d declarator) bool {
	_, ok := d.(ptrDeclarator)
	return ok
}
