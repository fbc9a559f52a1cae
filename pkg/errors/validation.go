package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateMoleculeName validates a molecule name for safety and correctness.
// It rejects names that could be used for path traversal or injection attacks
// when the name ends up in cache keys or output filenames.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateMoleculeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidMolecule, "molecule name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidMolecule, "molecule name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidMolecule, "molecule name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidMolecule, "molecule name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// elementSymbolRegex matches element symbols as they appear in chemical
// file formats: an uppercase letter optionally followed by up to two
// lowercase letters ("C", "Cl", "Uut").
var elementSymbolRegex = regexp.MustCompile(`^[A-Z][a-z]{0,2}$`)

// ValidateElementSymbol validates a chemical element symbol.
// Symbols are not checked against the periodic table; file formats carry
// pseudo-atoms ("R", "Du") that a strict table would reject.
func ValidateElementSymbol(symbol string) error {
	if symbol == "" {
		return New(ErrCodeInvalidElement, "element symbol cannot be empty")
	}

	if !elementSymbolRegex.MatchString(symbol) {
		return New(ErrCodeInvalidElement, "invalid element symbol: %q", symbol)
	}

	return nil
}

// ValidateFormat validates a molecule file format name against the set of
// supported formats.
func ValidateFormat(format string) error {
	switch format {
	case "json", "xyz", "sdf", "mol":
		return nil
	case "":
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	default:
		return New(ErrCodeInvalidFormat, "unknown molecule format: %q (supported: json, xyz, sdf, mol)", format)
	}
}

// ValidatePath validates a file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
