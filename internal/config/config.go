package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration. CppCompat wraps the
// function declarations of a C header in extern "C" when it is compiled
// as C++.
type Config struct {
	Language     Language          `yaml:"language" json:"language"`
	Style        Style             `yaml:"style" json:"style"`
	Header       string            `yaml:"header" json:"header"`
	IncludeGuard string            `yaml:"includeGuard" json:"includeGuard"`
	CppCompat    bool              `yaml:"cppCompat" json:"cppCompat"`
	LineLength   int               `yaml:"lineLength" json:"lineLength"`
	TabWidth     int               `yaml:"tabWidth" json:"tabWidth"`
	Pointer      PointerConfig     `yaml:"pointer" json:"pointer"`
	Function     FunctionConfig    `yaml:"fn" json:"fn"`
	Structs      StructConfig      `yaml:"struct" json:"struct"`
	TypeMappings map[string]string `yaml:"typeMappings" json:"typeMappings"`
	Options      Options           `yaml:"options" json:"options"`
}

// PointerConfig controls how pointers are annotated.
type PointerConfig struct {
	// NonNullAttribute is written after every non-nullable raw pointer,
	// e.g. "_Nonnull". Empty disables the annotation.
	NonNullAttribute string `yaml:"nonNullAttribute" json:"nonNullAttribute"`
}

// FunctionConfig controls how function declarations are written.
type FunctionConfig struct {
	Args       Layout     `yaml:"args" json:"args"`
	Prefix     string     `yaml:"prefix" json:"prefix"`
	Postfix    string     `yaml:"postfix" json:"postfix"`
	RenameArgs RenameRule `yaml:"renameArgs" json:"renameArgs"`
}

// StructConfig controls how struct definitions are written.
type StructConfig struct {
	RenameFields RenameRule `yaml:"renameFields" json:"renameFields"`
}

// Options represents front end options.
type Options struct {
	ExportedOnly bool     `yaml:"exportedOnly" json:"exportedOnly"`
	TagKey       string   `yaml:"tagKey" json:"tagKey"`
	IncludeTypes []string `yaml:"includeTypes" json:"includeTypes"`
	ExcludeTypes []string `yaml:"excludeTypes" json:"excludeTypes"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Language:     LanguageCxx,
		Style:        StyleBoth,
		LineLength:   DefaultLineLength,
		TabWidth:     DefaultTabWidth,
		Function:     FunctionConfig{Args: LayoutAuto, RenameArgs: RenameNone},
		Structs:      StructConfig{RenameFields: RenameNone},
		TypeMappings: DefaultTypeMappings(),
		Options:      DefaultOptions(),
	}
}

// LoadFile loads configuration from a file (YAML or JSON based on extension).
// Values present in the file override the current ones.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	// Decode into a copy so a failed parse leaves c untouched.
	loaded := c.clone()
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, loaded); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, loaded); err != nil {
			return fmt.Errorf("parsing JSON config: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, loaded); err != nil {
			loaded = c.clone()
			if err := json.Unmarshal(data, loaded); err != nil {
				return fmt.Errorf("unable to parse config as YAML or JSON")
			}
		}
	}

	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	*c = *loaded
	return nil
}

// clone returns a copy of c that shares nothing mutable with it.
func (c *Config) clone() *Config {
	cp := *c
	cp.TypeMappings = make(map[string]string, len(c.TypeMappings))
	for k, v := range c.TypeMappings {
		cp.TypeMappings[k] = v
	}
	cp.Options.IncludeTypes = append([]string(nil), c.Options.IncludeTypes...)
	cp.Options.ExcludeTypes = append([]string(nil), c.Options.ExcludeTypes...)
	return &cp
}

// Validate checks option ranges.
func (c *Config) Validate() error {
	if c.LineLength <= 0 {
		return fmt.Errorf("lineLength must be positive, got %d", c.LineLength)
	}
	if c.TabWidth <= 0 {
		return fmt.Errorf("tabWidth must be positive, got %d", c.TabWidth)
	}
	if c.Options.TagKey == "" {
		return fmt.Errorf("options.tagKey must not be empty")
	}
	return nil
}

// MapType maps a Go type to its target type using the configured mappings.
func (c *Config) MapType(goType string) string {
	if mapped, ok := c.TypeMappings[goType]; ok {
		return mapped
	}
	return goType
}

// IsMapped reports whether goType has a mapping.
func (c *Config) IsMapped(goType string) bool {
	_, ok := c.TypeMappings[goType]
	return ok
}

// ShouldIncludeType checks if a type should be included based on config.
func (c *Config) ShouldIncludeType(name string, isExported bool) bool {
	// Check exported only filter
	if c.Options.ExportedOnly && !isExported {
		return false
	}

	// Check include list (if specified, type must be in it)
	if len(c.Options.IncludeTypes) > 0 {
		found := false
		for _, t := range c.Options.IncludeTypes {
			if t == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	// Check exclude list
	for _, t := range c.Options.ExcludeTypes {
		if t == name {
			return false
		}
	}

	return true
}
