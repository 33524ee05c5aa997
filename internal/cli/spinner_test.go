package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func TestSpinnerBasic(t *testing.T) {
	s := newSpinner(io.Discard, "Testing...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if !s.Cancelled() {
		t.Error("Stop cancels the spinner context")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, io.Discard, "Testing with context...")
	s.Start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(io.Discard, "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithError(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Testing error...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("Request failed")

	if !strings.Contains(buf.String(), "Request failed") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestStopSpinnerNil(t *testing.T) {
	stopSpinner(nil, nil)
	stopSpinner(nil, context.Canceled)
}
