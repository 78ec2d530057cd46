// Package config provides configuration handling for cdeclgen.
package config

const (
	DefaultLineLength = 100
	DefaultTabWidth   = 2
	DefaultTagKey     = "c"
)

// DefaultTypeMappings returns default Go to C type mappings.
func DefaultTypeMappings() map[string]string {
	return map[string]string{
		// Fixed width integers
		"int8":   "int8_t",
		"int16":  "int16_t",
		"int32":  "int32_t",
		"int64":  "int64_t",
		"uint8":  "uint8_t",
		"uint16": "uint16_t",
		"uint32": "uint32_t",
		"uint64": "uint64_t",
		"byte":   "uint8_t",
		"rune":   "int32_t",

		// Pointer sized integers
		"int":     "intptr_t",
		"uint":    "uintptr_t",
		"uintptr": "uintptr_t",

		// Floating point
		"float32": "float",
		"float64": "double",

		"bool": "bool",

		// cgo spellings
		"C.char":      "char",
		"C.schar":     "signed char",
		"C.uchar":     "unsigned char",
		"C.short":     "short",
		"C.ushort":    "unsigned short",
		"C.int":       "int",
		"C.uint":      "unsigned int",
		"C.long":      "long",
		"C.ulong":     "unsigned long",
		"C.longlong":  "long long",
		"C.ulonglong": "unsigned long long",
		"C.float":     "float",
		"C.double":    "double",
		"C.size_t":    "size_t",
	}
}

// DefaultOptions returns default front end options.
func DefaultOptions() Options {
	return Options{
		ExportedOnly: true,
		TagKey:       DefaultTagKey,
	}
}
