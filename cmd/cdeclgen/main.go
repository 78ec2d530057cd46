// cdeclgen generates C and C++ declarations for the types and functions
// of a Go source file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"cdeclgen/internal/config"
	"cdeclgen/internal/generator"
	"cdeclgen/internal/parser"
)

type options struct {
	inputFile    string
	templateFile string
	configFile   string
	outputFile   string
	language     string
	style        string
	nonNull      string
	layout       string
	cppCompat    bool
	types        string
	exclude      string
	verbose      bool
	showHelp     bool
}

func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("cdeclgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.inputFile, "input", "", "Input Go source file (required)")
	fs.StringVar(&opts.inputFile, "i", "", "Input Go source file (shorthand)")

	fs.StringVar(&opts.templateFile, "template", "", "Template file (default: built-in header)")
	fs.StringVar(&opts.templateFile, "t", "", "Template file (shorthand)")

	fs.StringVar(&opts.configFile, "config", "", "Config file (YAML/JSON)")
	fs.StringVar(&opts.configFile, "c", "", "Config file (shorthand)")

	fs.StringVar(&opts.outputFile, "output", "", "Output file (default: stdout)")
	fs.StringVar(&opts.outputFile, "o", "", "Output file (shorthand)")

	fs.StringVar(&opts.language, "lang", "", "Output language: c or c++")
	fs.StringVar(&opts.style, "style", "", "C struct style: both, tag or type")
	fs.StringVar(&opts.nonNull, "nonnull", "", "Attribute written after non-null pointers")
	fs.StringVar(&opts.layout, "layout", "", "Function argument layout: horizontal, vertical or auto")
	fs.BoolVar(&opts.cppCompat, "cpp-compat", false, "Make a C header usable from C++")
	fs.StringVar(&opts.types, "types", "", "Only generate these types and functions (comma-separated)")
	fs.StringVar(&opts.types, "T", "", "Only generate these types and functions (shorthand)")
	fs.StringVar(&opts.exclude, "exclude", "", "Exclude these types and functions (comma-separated)")
	fs.StringVar(&opts.exclude, "X", "", "Exclude these types and functions (shorthand)")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose output")
	fs.BoolVar(&opts.showHelp, "h", false, "Show help")
	fs.BoolVar(&opts.showHelp, "help", false, "Show help")

	fs.Usage = func() { usage(fs, stderr) }
	return fs
}

func usage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `cdeclgen - C declaration generator

Usage:
    cdeclgen -i <input.go> [options]

Options:
`)
	fs.PrintDefaults()
	fmt.Fprintf(w, `
Examples:
    # Generate a C++ header
    cdeclgen -i api.go -o api.hpp

    # Generate a C header with tagged structs
    cdeclgen -i api.go --lang c --style tag -o api.h

    # Generate a C header that C++ code can include
    cdeclgen -i api.go --lang c --cpp-compat -o api.h

    # Annotate non-null pointers for clang
    cdeclgen -i api.go --lang c --nonnull _Nonnull -o api.h

    # Generate only some declarations, one argument per line
    cdeclgen -i api.go -T Point,Distance --layout vertical

    # Render through a custom template
    cdeclgen -i api.go -t decls.tmpl -c cdeclgen.yaml

`)
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var opts options
	fs := newFlagSet(&opts, stderr)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if opts.showHelp {
		fs.Usage()
		return nil
	}

	// Validate required flags
	if opts.inputFile == "" {
		return fmt.Errorf("input file is required (-i or --input)")
	}

	// Load configuration
	cfg := config.New()
	if opts.configFile != "" {
		if err := cfg.LoadFile(opts.configFile); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Apply CLI overrides
	if err := applyOverrides(cfg, &opts); err != nil {
		return err
	}

	// Parse input file
	p := parser.New(cfg)
	file, err := p.ParseFile(opts.inputFile)
	if err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}

	if opts.verbose {
		fmt.Fprintf(stderr, "Parsed %d structs, %d typedefs, %d functions from %s\n",
			len(file.Structs), len(file.Typedefs), len(file.Functions), opts.inputFile)
		for _, s := range file.Structs {
			fmt.Fprintf(stderr, "  - struct %s (%d fields)\n", s.Name, len(s.Fields))
		}
		for _, f := range file.Functions {
			fmt.Fprintf(stderr, "  - func %s (%d args)\n", f.Name, len(f.Args))
		}
	}

	// Create generator and load template
	gen := generator.New(cfg)
	if opts.templateFile != "" {
		if err := gen.LoadTemplate(opts.templateFile); err != nil {
			return err
		}
	}

	// Determine output destination
	output := stdout
	if opts.outputFile != "" {
		f, err := os.Create(opts.outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	// Generate output
	if err := gen.Generate(file, output); err != nil {
		return err
	}

	if opts.verbose && opts.outputFile != "" {
		fmt.Fprintf(stderr, "Generated output to %s\n", opts.outputFile)
	}

	return nil
}

// applyOverrides copies flag values onto the configuration.
func applyOverrides(cfg *config.Config, opts *options) error {
	if opts.language != "" {
		lang, err := config.ParseLanguage(opts.language)
		if err != nil {
			return err
		}
		cfg.Language = lang
	}
	if opts.style != "" {
		style, err := config.ParseStyle(opts.style)
		if err != nil {
			return err
		}
		cfg.Style = style
	}
	if opts.layout != "" {
		layout, err := config.ParseLayout(opts.layout)
		if err != nil {
			return err
		}
		cfg.Function.Args = layout
	}
	if opts.cppCompat {
		cfg.CppCompat = true
	}
	if opts.nonNull != "" {
		cfg.Pointer.NonNullAttribute = opts.nonNull
	}
	if opts.types != "" {
		cfg.Options.IncludeTypes = parseCommaSeparated(opts.types)
	}
	if opts.exclude != "" {
		cfg.Options.ExcludeTypes = parseCommaSeparated(opts.exclude)
	}
	return nil
}

// parseCommaSeparated splits a comma-separated string into a slice of trimmed strings.
func parseCommaSeparated(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
