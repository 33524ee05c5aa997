package buildinfo

import (
	"strings"
	"testing"
)

func withVersion(t *testing.T, v, c, d string) {
	t.Helper()
	oldV, oldC, oldD := Version, Commit, Date
	Version, Commit, Date = v, c, d
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })
}

func TestString(t *testing.T) {
	withVersion(t, "v1.0.0", "abc123", "2026-01-01")

	want := "version: v1.0.0\ncommit: abc123\nbuilt: 2026-01-01"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTemplate(t *testing.T) {
	withVersion(t, "v1.0.0", "abc123", "2026-01-01")

	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version v1.0.0\n") {
		t.Errorf("Template() = %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("Template() should end with a newline")
	}
}

func TestUserAgent(t *testing.T) {
	withVersion(t, "v1.2.3", "", "")

	if got := UserAgent(); got != "kvkapi/v1.2.3" {
		t.Errorf("UserAgent() = %q", got)
	}
}
