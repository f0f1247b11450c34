package change

import (
	"fmt"
	"regexp"
	"strings"
)

// identifierPattern matches plain SQLite identifiers. Quoted or dotted
// names are rejected: the declaration should never need them.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks that every change in the declaration is structurally
// additive and well-formed. It runs before any database work so that a
// bad declaration fails the build's tests, not a production migration.
func Validate(changes []Change) error {
	seen := make(map[string]bool, len(changes))

	for _, c := range changes {
		if err := validateOne(c); err != nil {
			return err
		}

		if seen[c.ID()] {
			return fmt.Errorf("%w: %s", ErrDuplicateChange, c.ID())
		}

		seen[c.ID()] = true
	}

	return nil
}

// validateOne applies the per-change rules: identifier shape, column
// typing, safe defaults, and the additive-only DDL guard.
func validateOne(c Change) error {
	if !identifierPattern.MatchString(c.Table) {
		return fmt.Errorf("%w: table %q", ErrInvalidIdentifier, c.Table)
	}

	if c.IsTable() {
		return validateTable(c)
	}

	return validateColumn(c)
}

func validateColumn(c Change) error {
	if !identifierPattern.MatchString(c.Column) {
		return fmt.Errorf("%w: column %q", ErrInvalidIdentifier, c.Column)
	}

	if c.Type == "" {
		return fmt.Errorf("%w: %s", ErrMissingType, c.ID())
	}

	if c.NotNull && c.Default == "" {
		return fmt.Errorf("%w: %s", ErrMissingDefault, c.ID())
	}

	return nil
}

func validateTable(c Change) error {
	trimmed := strings.TrimSpace(c.CreateSQL)

	if !strings.HasPrefix(strings.ToUpper(trimmed), "CREATE TABLE") {
		return fmt.Errorf("%w: %s", ErrNotAdditive, c.ID())
	}

	return nil
}
