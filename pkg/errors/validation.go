package errors

import (
	"strings"
)

const maxResultsPerPage = 100

// ValidateKvkNumber checks that s is an 8-digit KVK number.
func ValidateKvkNumber(s string) error {
	return validateDigits("KVK number", s, 8)
}

// ValidateRsin checks that s is a 9-digit RSIN.
func ValidateRsin(s string) error {
	return validateDigits("RSIN", s, 9)
}

// ValidateVestigingsnummer checks that s is a 12-digit establishment number.
func ValidateVestigingsnummer(s string) error {
	return validateDigits("vestigingsnummer", s, 12)
}

func validateDigits(what, s string, n int) error {
	if s == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", what)
	}
	if len(s) != n {
		return New(ErrCodeInvalidInput, "%s must be %d digits, got %q", what, n, s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return New(ErrCodeInvalidInput, "%s must contain only digits, got %q", what, s)
		}
	}
	return nil
}

// ValidatePage checks that a result page number is positive.
func ValidatePage(page int) error {
	if page < 1 {
		return New(ErrCodeInvalidInput, "page must be >= 1, got %d", page)
	}
	return nil
}

// ValidateResultsPerPage checks the page size accepted by the search endpoint.
func ValidateResultsPerPage(n int) error {
	if n < 1 || n > maxResultsPerPage {
		return New(ErrCodeInvalidInput, "results per page must be between 1 and %d, got %d", maxResultsPerPage, n)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
