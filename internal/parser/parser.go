// Package parser extracts C-compatible declarations from Go source files.
package parser

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"reflect"
	"strings"

	"cdeclgen/internal/config"
	"cdeclgen/internal/model"
)

// Parser parses Go source files and extracts type and function declarations.
type Parser struct {
	fset *token.FileSet
	cfg  *config.Config
}

// New creates a new Parser.
func New(cfg *config.Config) *Parser {
	return &Parser{
		fset: token.NewFileSet(),
		cfg:  cfg,
	}
}

// ParseFile parses a single Go source file and returns its declarations.
func (p *Parser) ParseFile(path string) (*model.File, error) {
	return p.ParseSource(path, nil)
}

// ParseSource parses src as the contents of the named file. If src is nil
// the file is read from disk.
func (p *Parser) ParseSource(path string, src any) (*model.File, error) {
	file, err := parser.ParseFile(p.fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	x := &extractor{
		Parser: p,
		locals: make(map[string]bool),
	}
	result := &model.File{
		Package: file.Name.Name,
		Path:    path,
	}

	// Record every local type first so references resolve regardless of
	// declaration order.
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec := spec.(*ast.TypeSpec)
			_, isStruct := typeSpec.Type.(*ast.StructType)
			x.locals[typeSpec.Name.Name] = isStruct
		}
	}

	for _, decl := range file.Decls {
		switch decl := decl.(type) {
		case *ast.GenDecl:
			if decl.Tok != token.TYPE {
				continue
			}
			for _, spec := range decl.Specs {
				x.typeSpec(result, spec.(*ast.TypeSpec), decl.Doc)
			}
		case *ast.FuncDecl:
			x.funcDecl(result, decl)
		}
	}

	if len(x.errs) > 0 {
		return nil, errors.Join(x.errs...)
	}
	return result, nil
}

// extractor holds the state of one file's extraction.
type extractor struct {
	*Parser
	locals map[string]bool // type name -> is a struct
	errs   []error
}

func (x *extractor) errorf(pos token.Pos, format string, args ...any) {
	x.errs = append(x.errs, fmt.Errorf("%s: %s", x.fset.Position(pos), fmt.Sprintf(format, args...)))
}

// typeSpec extracts a struct or typedef from an ast.TypeSpec.
func (x *extractor) typeSpec(file *model.File, spec *ast.TypeSpec, groupDoc *ast.CommentGroup) {
	name := spec.Name.Name
	if x.cfg.Options.ExportedOnly && !ast.IsExported(name) {
		return
	}
	// Generic declarations have no C spelling; their instantiations are
	// referenced by name only.
	if spec.TypeParams != nil {
		return
	}

	doc := commentText(spec.Doc)
	if doc == "" {
		doc = commentText(groupDoc)
	}

	switch typeExpr := spec.Type.(type) {
	case *ast.StructType:
		file.Structs = append(file.Structs, model.Struct{
			Name:   name,
			Doc:    doc,
			Fields: x.fields(typeExpr.Fields),
		})

	case *ast.InterfaceType:
		// Interfaces have no C counterpart.

	default:
		t, ok := x.typeFromExpr(typeExpr)
		if !ok {
			return
		}
		file.Typedefs = append(file.Typedefs, model.Typedef{Name: name, Type: t, Doc: doc})
	}
}

// fields extracts fields from a struct.
func (x *extractor) fields(fieldList *ast.FieldList) []model.Field {
	if fieldList == nil {
		return nil
	}

	var fields []model.Field
	for _, f := range fieldList.List {
		opts, ok := x.tagOptions(f)
		if !ok || opts.skip {
			continue
		}
		t, ok := x.typeFromExpr(f.Type)
		if !ok {
			continue
		}
		t, ok = x.applyPointerOptions(f.Type.Pos(), t, opts)
		if !ok {
			continue
		}
		doc := commentText(f.Doc)
		if doc == "" {
			doc = commentText(f.Comment)
		}

		if len(f.Names) == 0 {
			// Embedded field
			fields = append(fields, model.Field{
				Name:       embeddedName(t),
				Type:       t,
				IsConst:    opts.isConst,
				IsEmbedded: true,
				Doc:        doc,
			})
			continue
		}
		// Unexported fields are kept: dropping them would change the
		// struct's layout.
		for _, name := range f.Names {
			fields = append(fields, model.Field{
				Name:    name.Name,
				Type:    t,
				IsConst: opts.isConst,
				Doc:     doc,
			})
		}
	}
	return fields
}

// funcDecl extracts a top level function.
func (x *extractor) funcDecl(file *model.File, decl *ast.FuncDecl) {
	name := decl.Name.Name
	if decl.Recv != nil || decl.Type.TypeParams != nil {
		return
	}
	if x.cfg.Options.ExportedOnly && !ast.IsExported(name) {
		return
	}

	args, ret, ok := x.signature(decl.Type)
	if !ok {
		return
	}
	fn := model.Function{
		Name: name,
		Ret:  ret,
		Doc:  commentText(decl.Doc),
	}
	for _, arg := range args {
		fn.Args = append(fn.Args, model.FunctionArg{Name: arg.Name, Type: arg.Type})
	}
	file.Functions = append(file.Functions, fn)
}

// signature converts a function type to C parameters and a return type.
func (x *extractor) signature(ft *ast.FuncType) ([]model.FuncPtrArg, model.Type, bool) {
	ok := true
	args := []model.FuncPtrArg{}
	if ft.Params != nil {
		for _, f := range ft.Params.List {
			if _, variadic := f.Type.(*ast.Ellipsis); variadic {
				x.errorf(f.Type.Pos(), "variadic parameters are not supported")
				ok = false
				continue
			}
			if isArray(f.Type) {
				x.errorf(f.Type.Pos(), "array parameter type %s is not supported, pass a pointer to it", types.ExprString(f.Type))
				ok = false
				continue
			}
			t, tok := x.typeFromExpr(f.Type)
			if !tok {
				ok = false
				continue
			}
			if len(f.Names) == 0 {
				args = append(args, model.FuncPtrArg{Type: t})
			}
			for _, name := range f.Names {
				argName := name.Name
				if argName == "_" {
					argName = ""
				}
				args = append(args, model.FuncPtrArg{Name: argName, Type: t})
			}
		}
	}

	var ret model.Type = model.Primitive{Name: "void"}
	if ft.Results != nil && ft.Results.NumFields() > 0 {
		if ft.Results.NumFields() > 1 {
			x.errorf(ft.Results.Pos(), "multiple results are not supported")
			return nil, nil, false
		}
		result := ft.Results.List[0].Type
		if isArray(result) {
			x.errorf(result.Pos(), "array result type %s is not supported", types.ExprString(result))
			return nil, nil, false
		}
		t, rok := x.typeFromExpr(result)
		if !rok {
			return nil, nil, false
		}
		ret = t
	}
	return args, ret, ok
}

// typeFromExpr converts an ast.Expr to a type tree. Failures are recorded
// on x and reported with ok == false.
func (x *extractor) typeFromExpr(expr ast.Expr) (model.Type, bool) {
	switch e := expr.(type) {
	case *ast.Ident:
		return x.named(e)

	case *ast.SelectorExpr:
		// Package-qualified type (e.g., C.int, unsafe.Pointer)
		pkg := ""
		if ident, isIdent := e.X.(*ast.Ident); isIdent {
			pkg = ident.Name
		}
		full := pkg + "." + e.Sel.Name
		switch {
		case full == "unsafe.Pointer":
			return model.Pointer{Inner: model.Primitive{Name: "void"}, IsNullable: true}, true
		case x.cfg.IsMapped(full):
			return model.Primitive{Name: x.cfg.MapType(full)}, true
		case pkg == "C":
			// cgo spells tagged types C.struct_foo, C.union_foo, C.enum_foo.
			if kind, name, found := strings.Cut(e.Sel.Name, "_"); found {
				if tag, err := model.ParseDeclarationType(kind); err == nil && tag != model.DeclNone {
					return model.Path{Name: name, Tag: tag}, true
				}
			}
		}
		return model.Path{Name: e.Sel.Name}, true

	case *ast.StarExpr:
		inner, ok := x.typeFromExpr(e.X)
		if !ok {
			return nil, false
		}
		return model.Pointer{Inner: inner, IsNullable: true}, true

	case *ast.ArrayType:
		if e.Len == nil {
			x.errorf(e.Pos(), "slice type %s is not supported", types.ExprString(e))
			return nil, false
		}
		if _, isEllipsis := e.Len.(*ast.Ellipsis); isEllipsis {
			x.errorf(e.Pos(), "array type %s needs an explicit length", types.ExprString(e))
			return nil, false
		}
		inner, ok := x.typeFromExpr(e.Elt)
		if !ok {
			return nil, false
		}
		return model.Array{Inner: inner, Len: types.ExprString(e.Len)}, true

	case *ast.FuncType:
		args, ret, ok := x.signature(e)
		if !ok {
			return nil, false
		}
		return model.FuncPtr{Ret: ret, Args: args}, true

	case *ast.IndexExpr:
		return x.generic(e.X, []ast.Expr{e.Index})

	case *ast.IndexListExpr:
		return x.generic(e.X, e.Indices)

	case *ast.ParenExpr:
		return x.typeFromExpr(e.X)
	}

	x.errorf(expr.Pos(), "type %s is not supported", types.ExprString(expr))
	return nil, false
}

// named resolves an identifier to a local type, a mapped type or an
// external named type.
func (x *extractor) named(ident *ast.Ident) (model.Type, bool) {
	name := ident.Name
	if isStruct, ok := x.locals[name]; ok {
		path := model.Path{Name: name}
		if isStruct && x.cfg.Language == config.LanguageC && !x.cfg.Style.GenerateTypedef() {
			path.Tag = model.DeclStruct
		}
		return path, true
	}
	if x.cfg.IsMapped(name) {
		return model.Primitive{Name: x.cfg.MapType(name)}, true
	}
	if types.Universe.Lookup(name) != nil {
		x.errorf(ident.Pos(), "type %s has no C mapping", name)
		return nil, false
	}
	return model.Path{Name: name}, true
}

// generic converts an instantiated generic type.
func (x *extractor) generic(base ast.Expr, indices []ast.Expr) (model.Type, bool) {
	t, ok := x.typeFromExpr(base)
	if !ok {
		return nil, false
	}
	path, isPath := t.(model.Path)
	if !isPath {
		x.errorf(base.Pos(), "type %s cannot take type arguments", types.ExprString(base))
		return nil, false
	}
	for _, index := range indices {
		arg, ok := x.typeFromExpr(index)
		if !ok {
			return nil, false
		}
		path.Generics = append(path.Generics, arg)
	}
	return path, true
}

// fieldOptions are the options of a field's tag.
type fieldOptions struct {
	skip     bool
	isConst  bool
	readonly bool
	nonnull  bool
	ref      bool
}

// tagOptions parses the field's tag under the configured key.
func (x *extractor) tagOptions(f *ast.Field) (fieldOptions, bool) {
	var opts fieldOptions
	if f.Tag == nil {
		return opts, true
	}

	raw := strings.Trim(f.Tag.Value, "`")
	value, ok := reflect.StructTag(raw).Lookup(x.cfg.Options.TagKey)
	if !ok {
		return opts, true
	}
	if value == "-" {
		opts.skip = true
		return opts, true
	}

	for _, opt := range strings.Split(value, ",") {
		switch strings.TrimSpace(opt) {
		case "":
		case "const":
			opts.isConst = true
		case "readonly":
			opts.readonly = true
		case "nonnull":
			opts.nonnull = true
		case "ref":
			opts.ref = true
		default:
			x.errorf(f.Tag.Pos(), "unknown %s tag option %q", x.cfg.Options.TagKey, opt)
			return opts, false
		}
	}
	return opts, true
}

// applyPointerOptions applies the pointer options to the outermost pointer.
func (x *extractor) applyPointerOptions(pos token.Pos, t model.Type, opts fieldOptions) (model.Type, bool) {
	if !opts.readonly && !opts.nonnull && !opts.ref {
		return t, true
	}
	ptr, ok := t.(model.Pointer)
	if !ok {
		x.errorf(pos, "readonly, nonnull and ref apply to pointer fields only")
		return nil, false
	}
	if opts.readonly {
		ptr.IsConst = true
	}
	if opts.nonnull {
		ptr.IsNullable = false
	}
	if opts.ref {
		ptr.IsRef = true
		ptr.IsNullable = false
	}
	return ptr, true
}

// isArray reports whether expr is an array type. C functions can neither
// return arrays nor take them by value.
func isArray(expr ast.Expr) bool {
	at, ok := expr.(*ast.ArrayType)
	return ok && at.Len != nil
}

// embeddedName returns the field name Go gives an embedded field.
func embeddedName(t model.Type) string {
	switch t := t.(type) {
	case model.Path:
		return t.Name
	case model.Pointer:
		return embeddedName(t.Inner)
	case model.Primitive:
		return t.Name
	}
	return ""
}

// commentText extracts text from a comment group.
func commentText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return strings.TrimSpace(cg.Text())
}
