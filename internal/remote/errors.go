package remote

import "errors"

var (
	// ErrListNotFound is returned when no list matches a name.
	ErrListNotFound = errors.New("list not found")

	// ErrListAmbiguous is returned when several lists match a name.
	ErrListAmbiguous = errors.New("ambiguous list name")

	// ErrAuth is returned when the backend cannot be reached for lack of valid
	// credentials. Backends wrap it so callers can test with errors.Is.
	ErrAuth = errors.New("auth error")
)
