// Package errors provides typed error values for the Kauri secrets engine.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Configuration errors: kauri.toml cannot drive generation (ErrMissingPort)
//   - Referential integrity errors: merged files are inconsistent (ErrUnresolvedReference)
//   - File errors: secrets files missing or malformed (ErrLocalSecretsMissing)
//
// # Structured Errors
//
// Two structured types carry the offending identifier alongside the kind, so
// the CLI layer can format remediation text without parsing messages:
//
//	var refErr *errors.ReferenceError
//	if errors.As(err, &refErr) {
//	    // refErr.Service, refErr.Reference
//	}
//
// Both unwrap to their sentinel, so errors.Is(err, ErrUnresolvedReference)
// also works.
package errors
