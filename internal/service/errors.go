// Package service holds the relay-adjacent server state: the version ledger,
// the local upload store and the drive-link conversion cache
package service

import "errors"

// ErrNotFound covers unknown storage names, unknown local paths and
// out-of-range version indices. Callers translate it to a 404.
var ErrNotFound = errors.New("not found")

// ConversionError wraps a blob store failure during a drive-link conversion.
// The cause stays reachable through Unwrap so handlers can surface upstream
// details to the client.
type ConversionError struct {
	Cause error
}

func (e *ConversionError) Error() string {
	return "conversion failed, " + e.Cause.Error()
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}
