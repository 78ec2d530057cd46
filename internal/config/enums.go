package config

import (
	"fmt"
	"strings"
)

// Language is the output language.
type Language string

const (
	LanguageC   Language = "C"
	LanguageCxx Language = "C++"
)

// ParseLanguage parses a language name. Matching is case-insensitive and
// "cxx" and "cpp" are accepted for C++.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c":
		return LanguageC, nil
	case "c++", "cxx", "cpp":
		return LanguageCxx, nil
	}
	return "", fmt.Errorf("unknown language %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Language) UnmarshalText(text []byte) error {
	v, err := ParseLanguage(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Style selects how C structs are declared and referred to.
type Style string

const (
	// StyleBoth declares "typedef struct Foo {...} Foo;".
	StyleBoth Style = "both"
	// StyleTag declares "struct Foo {...};" and refers to "struct Foo".
	StyleTag Style = "tag"
	// StyleType declares "typedef struct {...} Foo;".
	StyleType Style = "type"
)

// ParseStyle parses a style name.
func ParseStyle(s string) (Style, error) {
	switch v := Style(strings.ToLower(strings.TrimSpace(s))); v {
	case StyleBoth, StyleTag, StyleType:
		return v, nil
	}
	return "", fmt.Errorf("unknown style %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Style) UnmarshalText(text []byte) error {
	v, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// GenerateTag reports whether struct definitions carry a tag name.
func (s Style) GenerateTag() bool {
	return s == StyleBoth || s == StyleTag
}

// GenerateTypedef reports whether struct definitions are typedef'd.
func (s Style) GenerateTypedef() bool {
	return s == StyleBoth || s == StyleType
}

// Layout selects how function arguments are laid out.
type Layout string

const (
	LayoutHorizontal Layout = "horizontal"
	LayoutVertical   Layout = "vertical"
	// LayoutAuto is horizontal unless the line would exceed the line length.
	LayoutAuto Layout = "auto"
)

// ParseLayout parses a layout name.
func ParseLayout(s string) (Layout, error) {
	switch v := Layout(strings.ToLower(strings.TrimSpace(s))); v {
	case LayoutHorizontal, LayoutVertical, LayoutAuto:
		return v, nil
	}
	return "", fmt.Errorf("unknown layout %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Layout) UnmarshalText(text []byte) error {
	v, err := ParseLayout(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// RenameRule is a casing convention applied to identifiers.
type RenameRule string

const (
	RenameNone               RenameRule = "none"
	RenameSnakeCase          RenameRule = "snake_case"
	RenameScreamingSnakeCase RenameRule = "SCREAMING_SNAKE_CASE"
	RenameCamelCase          RenameRule = "camelCase"
	RenamePascalCase         RenameRule = "PascalCase"
)

// ParseRenameRule parses a rename rule. Separators and case are ignored,
// so "snake_case", "SnakeCase" and "snake-case" are the same rule.
func ParseRenameRule(s string) (RenameRule, error) {
	norm := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(s))
	switch norm {
	case "", "none":
		return RenameNone, nil
	case "snakecase":
		return RenameSnakeCase, nil
	case "screamingsnakecase":
		return RenameScreamingSnakeCase, nil
	case "camelcase", "lowercamelcase":
		return RenameCamelCase, nil
	case "pascalcase", "uppercamelcase":
		return RenamePascalCase, nil
	}
	return "", fmt.Errorf("unknown rename rule %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *RenameRule) UnmarshalText(text []byte) error {
	v, err := ParseRenameRule(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
