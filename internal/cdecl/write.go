package cdecl

import (
	"cdeclgen/internal/config"
	"cdeclgen/internal/model"
	"cdeclgen/internal/writer"
)

// Write prints d declaring ident. An empty ident prints the bare type.
//
// Pointers are prefix operators and arrays and functions are postfix
// operators that bind tighter, so the declarators are written in two
// passes around the identifier: prefixes from the base type outwards,
// then suffixes from the identifier inwards. A postfix operator applied
// to a pointer is grouped with parentheses.
func (d Decl) Write(w *writer.SourceWriter, ident string, cfg *config.Config) {
	t := d.terminal
	if t.isConst {
		w.Write("const ")
	}
	if t.tag != model.DeclNone {
		w.Write(t.tag.String() + " ")
	}
	w.Write(t.name)
	if len(t.generics) > 0 {
		w.Write("<")
		w.WriteHorizontalList(typeSources(t.generics, cfg), ", ")
		w.Write(">")
	}

	if ident != "" {
		w.Write(" ")
	}

	for i := len(d.declarators) - 1; i >= 0; i-- {
		nextIsPtr := i > 0 && isPtr(d.declarators[i-1])

		switch dc := d.declarators[i].(type) {
		case ptrDeclarator:
			if dc.isRef {
				w.Write("&")
			} else {
				w.Write("*")
			}
			if dc.isConst {
				w.Write("const ")
			} else if !dc.isNullable && !dc.isRef && cfg.Pointer.NonNullAttribute != "" {
				w.Write(cfg.Pointer.NonNullAttribute + " ")
			}
		case arrayDeclarator, funcDeclarator:
			if nextIsPtr {
				w.Write("(")
			}
		}
	}

	w.Write(ident)

	lastWasPtr := false
	for _, dc := range d.declarators {
		switch dc := dc.(type) {
		case ptrDeclarator:
			lastWasPtr = true
			continue
		case arrayDeclarator:
			if lastWasPtr {
				w.Write(")")
			}
			w.Write("[" + dc.len + "]")
		case funcDeclarator:
			if lastWasPtr {
				w.Write(")")
			}
			dc.write(w, cfg)
		}
		lastWasPtr = false
	}
}

// write prints the parenthesized parameter list.
func (f funcDeclarator) write(w *writer.SourceWriter, cfg *config.Config) {
	w.Write("(")
	if len(f.args) == 0 && cfg.Language == config.LanguageC {
		w.Write("void")
	}

	args := make([]writer.Source, 0, len(f.args))
	for _, arg := range f.args {
		args = append(args, arg.source(cfg))
	}
	if f.vertical {
		w.WriteVerticalList(args, ",")
	} else {
		w.WriteHorizontalList(args, ", ")
	}
	w.Write(")")
}

func (a funcArg) source(cfg *config.Config) writer.Source {
	return writer.SourceFunc(func(w *writer.SourceWriter) {
		a.decl.Write(w, a.name, cfg)
	})
}

func typeSources(types []model.Type, cfg *config.Config) []writer.Source {
	sources := make([]writer.Source, 0, len(types))
	for _, t := range types {
		t := t
		sources = append(sources, writer.SourceFunc(func(w *writer.SourceWriter) {
			WriteType(w, t, cfg)
		}))
	}
	return sources
}
