package kvk

import "errors"

var (
	// ErrInvalidJSON is returned when a response body is not a JSON object.
	ErrInvalidJSON = errors.New("invalid JSON response")

	// ErrMissingKvkNumber is returned when a detail record has no usable
	// kvkNummer: absent, null, empty, or an object or array.
	ErrMissingKvkNumber = errors.New("invalid response: missing kvkNummer")
)

func validateRecord(r Record) error {
	if n, ok := r.String(fieldKvkNumber); !ok || n == "" {
		return ErrMissingKvkNumber
	}
	return nil
}
