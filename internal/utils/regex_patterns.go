package utils

import "regexp"

// Centralized compiled patterns. Compiling once at package init keeps the
// validation hot path allocation-free.
var (
	// TranslationKeyPattern matches dotted translation identifiers such as
	// "tickets.list.title". The first segment is the owning module.
	TranslationKeyPattern = regexp.MustCompile(`^[a-z][a-zA-Z0-9._-]*$`)

	// PlaceholderPattern captures {{param}} interpolation markers inside a
	// translation value, including malformed ones; the captured name is
	// validated separately against ParamNamePattern.
	PlaceholderPattern = regexp.MustCompile(`\{\{([^}]*)\}\}`)

	// ParamNamePattern is the allowed shape of an interpolation parameter name.
	ParamNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
)
