// Package model defines the type trees and declaration records that are
// rendered as C and C++ declarations.
package model

import (
	"fmt"
	"strings"
)

// Type is a node of a composed type. It is one of Primitive, Path, Pointer,
// Array or FuncPtr.
type Type interface {
	isType()
}

// Primitive is a builtin type spelled verbatim (e.g., "int", "uint8_t").
type Primitive struct {
	Name string
}

// Path is a named type, optionally generic and optionally preceded by a
// tag keyword.
type Path struct {
	Name     string
	Generics []Type
	Tag      DeclarationType
}

// Pointer points to Inner. IsConst makes the pointee const; the constness
// of the pointer value itself is decided by whatever encloses it.
type Pointer struct {
	Inner      Type
	IsConst    bool
	IsNullable bool
	IsRef      bool // C++ reference
}

// Array is a fixed-size array. Len is emitted as written.
type Array struct {
	Inner Type
	Len   string
}

// FuncPtr is a pointer to a function.
type FuncPtr struct {
	Ret  Type
	Args []FuncPtrArg
}

// FuncPtrArg is a function pointer parameter. Name may be empty.
type FuncPtrArg struct {
	Name string
	Type Type
}

func (Primitive) isType() {}
func (Path) isType()      {}
func (Pointer) isType()   {}
func (Array) isType()     {}
func (FuncPtr) isType()   {}

// DeclarationType is the keyword C requires in front of a type name that
// has no typedef alias.
type DeclarationType string

const (
	DeclNone   DeclarationType = ""
	DeclStruct DeclarationType = "struct"
	DeclEnum   DeclarationType = "enum"
	DeclUnion  DeclarationType = "union"
)

func (d DeclarationType) String() string {
	return string(d)
}

// ParseDeclarationType parses a tag keyword. The empty string is DeclNone.
func ParseDeclarationType(s string) (DeclarationType, error) {
	switch d := DeclarationType(strings.ToLower(strings.TrimSpace(s))); d {
	case DeclNone, DeclStruct, DeclEnum, DeclUnion:
		return d, nil
	}
	return DeclNone, fmt.Errorf("unknown declaration type %q", s)
}

// File is the set of declarations extracted from one source file.
type File struct {
	Package   string
	Path      string
	Structs   []Struct
	Typedefs  []Typedef
	Functions []Function
}

// Struct is a struct definition.
type Struct struct {
	Name   string
	Doc    string
	Fields []Field
}

// Field is a struct member. IsConst makes the member itself const.
type Field struct {
	Name       string
	Type       Type
	IsConst    bool
	IsEmbedded bool // Go embedded field, named after its type
	Doc        string
}

// Typedef aliases Name to Type.
type Typedef struct {
	Name string
	Type Type
	Doc  string
}

// Function is a function signature.
type Function struct {
	Name string
	Args []FunctionArg
	Ret  Type
	Doc  string
}

// FunctionArg is a named function parameter.
type FunctionArg struct {
	Name string
	Type Type
}
