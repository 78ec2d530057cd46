// Package generator provides template-based header generation.
package generator

import (
	"embed"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/google/uuid"

	"cdeclgen/internal/config"
	"cdeclgen/internal/model"
)

//go:embed templates/*.tmpl
var templates embed.FS

const defaultTemplate = "header.tmpl"

// Generator executes templates against extracted declarations.
type Generator struct {
	config   *config.Config
	template *template.Template
}

// New creates a new Generator.
func New(cfg *config.Config) *Generator {
	return &Generator{
		config: cfg,
	}
}

// LoadTemplate loads a template from file.
func (g *Generator) LoadTemplate(path string) error {
	tmpl, err := template.New(filepath.Base(path)).
		Funcs(templateFuncs(g.config)).
		ParseFiles(path)
	if err != nil {
		return fmt.Errorf("loading template: %w", err)
	}
	g.template = tmpl
	return nil
}

// UseDefaultTemplate selects the built-in header template.
func (g *Generator) UseDefaultTemplate() error {
	tmpl, err := template.New(defaultTemplate).
		Funcs(templateFuncs(g.config)).
		ParseFS(templates, "templates/"+defaultTemplate)
	if err != nil {
		return fmt.Errorf("loading default template: %w", err)
	}
	g.template = tmpl
	return nil
}

// TemplateData represents data passed to templates.
type TemplateData struct {
	File         *model.File      // The parsed file
	Structs      []model.Struct   // Structs to generate (filtered, renamed)
	Typedefs     []model.Typedef  // Typedefs to generate (filtered)
	Functions    []model.Function // Functions to generate (filtered, renamed)
	Config       *config.Config   // Configuration
	IncludeGuard string           // Include guard macro
}

// Generate writes the declarations of file to w.
func (g *Generator) Generate(file *model.File, w io.Writer) error {
	if g.template == nil {
		if err := g.UseDefaultTemplate(); err != nil {
			return err
		}
	}

	// Build struct map for embedded field flattening
	structMap := make(map[string]model.Struct)
	for _, s := range file.Structs {
		structMap[s.Name] = s
	}

	data := &TemplateData{
		File:         file,
		Structs:      g.renameFields(g.flattenEmbedded(g.filterStructs(file.Structs), structMap)),
		Typedefs:     g.filterTypedefs(file.Typedefs),
		Functions:    g.renameArgs(g.filterFunctions(file.Functions)),
		Config:       g.config,
		IncludeGuard: g.includeGuard(file),
	}
	if err := g.template.Execute(w, data); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	return nil
}

// guardNamespace scopes the name-based UUIDs used for include guards.
var guardNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("cdeclgen"))

// includeGuard returns the configured include guard, or one derived from
// the input path so that regenerating a header does not change it.
func (g *Generator) includeGuard(file *model.File) string {
	if g.config.IncludeGuard != "" {
		return g.config.IncludeGuard
	}
	id := uuid.NewSHA1(guardNamespace, []byte(filepath.ToSlash(file.Path)))
	return "CDECLGEN_" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "_")) + "_H"
}

func (g *Generator) filterStructs(structs []model.Struct) []model.Struct {
	var result []model.Struct
	for _, s := range structs {
		if g.config.ShouldIncludeType(s.Name, true) {
			result = append(result, s)
		}
	}
	return result
}

func (g *Generator) filterTypedefs(typedefs []model.Typedef) []model.Typedef {
	var result []model.Typedef
	for _, t := range typedefs {
		if g.config.ShouldIncludeType(t.Name, true) {
			result = append(result, t)
		}
	}
	return result
}

func (g *Generator) filterFunctions(funcs []model.Function) []model.Function {
	var result []model.Function
	for _, f := range funcs {
		if g.config.ShouldIncludeType(f.Name, true) {
			result = append(result, f)
		}
	}
	return result
}

// renameArgs applies the configured rename rule to function arguments.
func (g *Generator) renameArgs(funcs []model.Function) []model.Function {
	rule := g.config.Function.RenameArgs
	result := make([]model.Function, 0, len(funcs))
	for _, f := range funcs {
		args := make([]model.FunctionArg, len(f.Args))
		for i, arg := range f.Args {
			args[i] = model.FunctionArg{Name: rename(rule, arg.Name), Type: arg.Type}
		}
		f.Args = args
		result = append(result, f)
	}
	return result
}

// renameFields applies the configured rename rule to struct fields.
func (g *Generator) renameFields(structs []model.Struct) []model.Struct {
	rule := g.config.Structs.RenameFields
	result := make([]model.Struct, 0, len(structs))
	for _, s := range structs {
		fields := make([]model.Field, len(s.Fields))
		for i, f := range s.Fields {
			f.Name = rename(rule, f.Name)
			fields[i] = f
		}
		s.Fields = fields
		result = append(result, s)
	}
	return result
}

// flattenEmbedded flattens embedded fields into their parent structs.
func (g *Generator) flattenEmbedded(structs []model.Struct, structMap map[string]model.Struct) []model.Struct {
	result := make([]model.Struct, 0, len(structs))

	for _, s := range structs {
		s.Fields = g.flattenFields(s.Fields, structMap, map[string]bool{s.Name: true})
		result = append(result, s)
	}

	return result
}

// flattenFields recursively flattens embedded struct values. Embedded
// pointers and unknown types stay as fields named after the type.
func (g *Generator) flattenFields(fields []model.Field, structMap map[string]model.Struct, seen map[string]bool) []model.Field {
	var result []model.Field

	for _, f := range fields {
		path, isPath := f.Type.(model.Path)
		if !f.IsEmbedded || !isPath {
			result = append(result, f)
			continue
		}

		embedded, ok := structMap[path.Name]
		if !ok || seen[path.Name] {
			result = append(result, f)
			continue
		}

		seen[path.Name] = true
		result = append(result, g.flattenFields(embedded.Fields, structMap, seen)...)
		delete(seen, path.Name)
	}

	return result
}
