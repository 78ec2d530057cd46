// Package cdecl renders type trees as C and C++ declarations.
//
// A type is first flattened into a Decl, a base type plus the chain of
// pointer, array and function declarators applied to it, and then printed
// with the right-left rule, adding parentheses only where a pointer is
// wrapped by an array or function declarator:
//
//	int (*x)[4]          pointer to array of 4 int
//	int *x[4]            array of 4 pointers to int
//	void (*f)(void)      pointer to function returning void
//
// See section 6.7, Declarations, of the C standard.
package cdecl

import (
	"strings"

	"cdeclgen/internal/config"
	"cdeclgen/internal/model"
	"cdeclgen/internal/writer"
)

// WriteFunc writes the full signature of f, without a trailing semicolon.
func WriteFunc(w *writer.SourceWriter, f *model.Function, vertical bool, cfg *config.Config) {
	FromFunc(f, vertical).Write(w, f.Name, cfg)
}

// WriteField writes t declaring ident.
func WriteField(w *writer.SourceWriter, t model.Type, ident string, cfg *config.Config) {
	FromType(t, false).Write(w, ident, cfg)
}

// WriteConstField writes t declaring ident, with ident itself const.
func WriteConstField(w *writer.SourceWriter, t model.Type, ident string, cfg *config.Config) {
	FromType(t, true).Write(w, ident, cfg)
}

// WriteType writes t as a bare type, as used in casts and template arguments.
func WriteType(w *writer.SourceWriter, t model.Type, cfg *config.Config) {
	FromType(t, false).Write(w, "", cfg)
}

// TypeString returns the bare spelling of t.
func TypeString(t model.Type, cfg *config.Config) string {
	return render(cfg, func(w *writer.SourceWriter) { WriteType(w, t, cfg) })
}

// FieldString returns the declaration of ident with type t.
func FieldString(t model.Type, ident string, cfg *config.Config) string {
	return render(cfg, func(w *writer.SourceWriter) { WriteField(w, t, ident, cfg) })
}

// FuncString returns the signature of f.
func FuncString(f *model.Function, vertical bool, cfg *config.Config) string {
	return render(cfg, func(w *writer.SourceWriter) { WriteFunc(w, f, vertical, cfg) })
}

func render(cfg *config.Config, fn func(w *writer.SourceWriter)) string {
	var sb strings.Builder
	fn(writer.NewWithTabWidth(&sb, cfg.TabWidth))
	return sb.String()
}
