// Package errs holds the typed errors shared by the domain, the use cases
// and the adapters.
//
// Every type unwraps to one sentinel (ErrObjectNotFound, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrValueIsRequired, ErrConflict, ErrForbidden), so
// callers branch with errors.Is and read details with errors.As. Values
// echoed into messages have their line breaks flattened.
package errs
