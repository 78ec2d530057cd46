package cdecl

import (
	"fmt"

	"cdeclgen/internal/model"
)

// FromType builds the declaration of t. isConst makes the declared entity
// itself const: "const int x" for a terminal, "int *const x" for a pointer.
func FromType(t model.Type, isConst bool) Decl {
	var d Decl
	d.terminal = d.build(t, isConst)
	return d
}

// FromFunc builds the declaration of f's signature. When vertical is set,
// the parameters are printed one per line.
func FromFunc(f *model.Function, vertical bool) Decl {
	args := make([]funcArg, 0, len(f.Args))
	for _, arg := range f.Args {
		args = append(args, funcArg{name: arg.Name, decl: FromType(arg.Type, false)})
	}

	d := Decl{declarators: []declarator{funcDeclarator{args: args, vertical: vertical}}}
	d.terminal = d.build(f.Ret, false)
	return d
}

// build appends the declarators of t, outermost first, and returns the
// terminal the walk ends on. isConst is the constness inherited from the
// enclosing pointer, or from the caller at the top.
func (d *Decl) build(t model.Type, isConst bool) terminal {
	switch t := t.(type) {
	case model.Primitive:
		return terminal{isConst: isConst, name: t.Name}

	case model.Path:
		return terminal{isConst: isConst, name: t.Name, generics: t.Generics, tag: t.Tag}

	case model.Pointer:
		d.declarators = append(d.declarators, ptrDeclarator{
			isConst:    isConst,
			isNullable: t.IsNullable,
			isRef:      t.IsRef,
		})
		return d.build(t.Inner, t.IsConst)

	case model.Array:
		d.declarators = append(d.declarators, arrayDeclarator{len: t.Len})
		return d.build(t.Inner, isConst)

	case model.FuncPtr:
		args := make([]funcArg, 0, len(t.Args))
		for _, arg := range t.Args {
			args = append(args, funcArg{name: arg.Name, decl: FromType(arg.Type, false)})
		}
		d.declarators = append(d.declarators,
			ptrDeclarator{isNullable: true},
			funcDeclarator{args: args},
		)
		return d.build(t.Ret, false)
	}

	// nil or a Type from outside package model.
	panic(fmt.Sprintf("cdecl: malformed type tree at %#v", t))
}
