package buildinfo

import "testing"

func TestCanonicalVersion(t *testing.T) {
	tests := map[string]string{
		"v1.2.3":      "v1.2.3",
		"1.2.3":       "v1.2.3",
		"v1.2":        "v1.2.0",
		"v2.0.0-rc.1": "v2.0.0-rc.1",
		"dev":         devVersion,
		"":            devVersion,
	}
	for in, want := range tests {
		if got := canonicalVersion(in); got != want {
			t.Errorf("canonicalVersion(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGet(t *testing.T) {
	if got := Get(); got != "graphctl dev (commit: unknown, built: unknown)" {
		t.Errorf("unexpected build info %q", got)
	}
}
