package integrations

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net/http"
	"os"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a resource doesn't exist in the registry.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-200 responses).
	ErrNetwork = errors.New("network error")

	// ErrCertificate is returned when a root certificate cannot be loaded.
	ErrCertificate = errors.New("invalid root certificate")
)

// NewHTTPClient creates an HTTP client with a standard timeout for registry requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NewTLSHTTPClient creates an HTTP client that trusts only the PEM-encoded
// root certificates in rootPEM. An empty rootPEM yields the default client
// from [NewHTTPClient].
func NewTLSHTTPClient(rootPEM []byte) (*http.Client, error) {
	if len(rootPEM) == 0 {
		return NewHTTPClient(), nil
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(rootPEM) {
		return nil, ErrCertificate
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}
	return &http.Client{Timeout: httpTimeout, Transport: transport}, nil
}

// LoadRootCertificate reads a PEM root certificate from path and returns an
// HTTP client trusting it.
func LoadRootCertificate(path string) (*http.Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrCertificate, err)
	}
	return NewTLSHTTPClient(data)
}
