package generator

import (
	"strings"
	"text/template"
	"unicode"

	"cdeclgen/internal/cdecl"
	"cdeclgen/internal/config"
	"cdeclgen/internal/model"
	"cdeclgen/internal/writer"
)

// templateFuncs returns custom template functions.
func templateFuncs(cfg *config.Config) template.FuncMap {
	return template.FuncMap{
		// Declarations
		"ctype": func(t model.Type) string {
			return cdecl.TypeString(t, cfg)
		},
		"cdecl": func(t model.Type, name string) string {
			return cdecl.FieldString(t, name, cfg)
		},
		"cfield": func(f model.Field) string {
			return fieldDecl(cfg, f)
		},
		"cfunc": func(f model.Function) string {
			return funcDecl(cfg, f)
		},
		"structOpen":  func(s model.Struct) string { return structOpen(cfg, s) },
		"structClose": func(s model.Struct) string { return structClose(cfg, s) },

		// Language helpers
		"isC":   func() bool { return cfg.Language == config.LanguageC },
		"isCxx": func() bool { return cfg.Language == config.LanguageCxx },

		// String manipulation
		"camelCase":          camelCase,
		"pascalCase":         pascalCase,
		"snakeCase":          snakeCase,
		"screamingSnakeCase": screamingSnakeCase,
		"lower":              strings.ToLower,
		"upper":              strings.ToUpper,
		"trim":               strings.TrimSpace,
		"replace":            strings.ReplaceAll,

		// Comment formatting
		"comment":    formatComment,
		"docComment": formatDocComment,
	}
}

// fieldDecl renders a struct member without the trailing semicolon.
func fieldDecl(cfg *config.Config, f model.Field) string {
	if f.IsConst {
		var sb strings.Builder
		cdecl.WriteConstField(writer.NewWithTabWidth(&sb, cfg.TabWidth), f.Type, f.Name, cfg)
		return sb.String()
	}
	return cdecl.FieldString(f.Type, f.Name, cfg)
}

// funcDecl renders a function declaration with the configured prefix and
// postfix. It assumes the declaration starts a line, which is where the
// column used to align vertical arguments is measured from.
func funcDecl(cfg *config.Config, f model.Function) string {
	switch cfg.Function.Args {
	case config.LayoutVertical:
		decl, _ := renderFunc(cfg, f, true)
		return decl
	case config.LayoutHorizontal:
		decl, _ := renderFunc(cfg, f, false)
		return decl
	}

	horizontal, width := renderFunc(cfg, f, false)
	if len(f.Args) > 1 && width > cfg.LineLength {
		vertical, _ := renderFunc(cfg, f, true)
		return vertical
	}
	return horizontal
}

// renderFunc returns the declaration and the length of its longest line.
func renderFunc(cfg *config.Config, f model.Function, vertical bool) (string, int) {
	var sb strings.Builder
	w := writer.NewWithTabWidth(&sb, cfg.TabWidth)
	if cfg.Function.Prefix != "" {
		w.Write(cfg.Function.Prefix + " ")
	}
	cdecl.WriteFunc(w, &f, vertical, cfg)
	if cfg.Function.Postfix != "" {
		w.Write(" " + cfg.Function.Postfix)
	}
	return sb.String(), w.MaxLineLength()
}

// structOpen returns the opening line of a struct definition.
func structOpen(cfg *config.Config, s model.Struct) string {
	if cfg.Language == config.LanguageCxx {
		return "struct " + s.Name + " {"
	}
	open := "struct {"
	if cfg.Style.GenerateTag() {
		open = "struct " + s.Name + " {"
	}
	if cfg.Style.GenerateTypedef() {
		open = "typedef " + open
	}
	return open
}

// structClose returns the closing line of a struct definition.
func structClose(cfg *config.Config, s model.Struct) string {
	if cfg.Language == config.LanguageC && cfg.Style.GenerateTypedef() {
		return "} " + s.Name + ";"
	}
	return "};"
}

// rename applies a rename rule to an identifier.
func rename(rule config.RenameRule, s string) string {
	if s == "" {
		return s
	}
	switch rule {
	case config.RenameSnakeCase:
		return snakeCase(s)
	case config.RenameScreamingSnakeCase:
		return screamingSnakeCase(s)
	case config.RenameCamelCase:
		return camelCase(s)
	case config.RenamePascalCase:
		return pascalCase(s)
	}
	return s
}

// camelCase converts to camelCase.
func camelCase(s string) string {
	if s == "" {
		return s
	}
	pascal := pascalCase(s)
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// pascalCase converts to PascalCase.
func pascalCase(s string) string {
	words := splitWords(s)
	for i, word := range words {
		if len(word) > 0 {
			runes := []rune(word)
			runes[0] = unicode.ToUpper(runes[0])
			for j := 1; j < len(runes); j++ {
				runes[j] = unicode.ToLower(runes[j])
			}
			words[i] = string(runes)
		}
	}
	return strings.Join(words, "")
}

// snakeCase converts to snake_case.
func snakeCase(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	return strings.Join(words, "_")
}

// screamingSnakeCase converts to SCREAMING_SNAKE_CASE.
func screamingSnakeCase(s string) string {
	return strings.ToUpper(snakeCase(s))
}

// splitWords splits a string into words (handles camelCase, PascalCase, snake_case, etc.).
func splitWords(s string) []string {
	var words []string
	var current []rune

	for i, r := range s {
		if r == '_' || r == '-' || r == ' ' {
			if len(current) > 0 {
				words = append(words, string(current))
				current = nil
			}
			continue
		}

		if unicode.IsUpper(r) && i > 0 {
			// Check if this is the start of a new word
			prev := rune(s[i-1])
			if unicode.IsLower(prev) || (i+1 < len(s) && unicode.IsLower(rune(s[i+1]))) {
				if len(current) > 0 {
					words = append(words, string(current))
					current = nil
				}
			}
		}

		current = append(current, r)
	}

	if len(current) > 0 {
		words = append(words, string(current))
	}

	return words
}

// formatComment formats a comment with a prefix.
func formatComment(comment, prefix string) string {
	if comment == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(comment), "\n")
	var result []string
	for _, line := range lines {
		result = append(result, prefix+strings.TrimSpace(line))
	}
	return strings.Join(result, "\n")
}

// formatDocComment formats a documentation comment as a C block comment.
func formatDocComment(comment string) string {
	if comment == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(comment), "\n")
	if len(lines) == 1 {
		return "/** " + strings.TrimSpace(lines[0]) + " */"
	}
	var result []string
	result = append(result, "/**")
	for _, line := range lines {
		result = append(result, " * "+strings.TrimSpace(line))
	}
	result = append(result, " */")
	return strings.Join(result, "\n")
}
