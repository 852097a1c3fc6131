// ABOUTME: Tests for version constants
// ABOUTME: Ensures version information is properly defined
package version

import (
	"strings"
	"testing"
)

func TestConstantsDefined(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"Version", Version},
		{"Product", Product},
		{"Manufacturer", Manufacturer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value == "" {
				t.Errorf("%s should not be empty", tt.name)
			}
			if len(tt.value) > 100 {
				t.Errorf("%s is unreasonably long", tt.name)
			}
		})
	}
}

func TestProductUsableAsClientName(t *testing.T) {
	// Sound servers show the client name in mixer UIs; keep it to one token
	if strings.ContainsAny(Product, " \t\n") {
		t.Errorf("Product should not contain whitespace: %q", Product)
	}
}

func TestVersionFormat(t *testing.T) {
	if strings.Count(Version, ".") != 2 {
		t.Errorf("expected semantic version, got %q", Version)
	}
}

func TestString(t *testing.T) {
	s := String()
	for _, part := range []string{Product, Version, Manufacturer} {
		if !strings.Contains(s, part) {
			t.Errorf("expected %q in %q", part, s)
		}
	}
}
