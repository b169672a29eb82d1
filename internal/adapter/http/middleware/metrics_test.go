package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/entries/01JABCDEF", "/api/v1/entries/:id"},
		{"/api/v1/entries/01JABCDEF/", "/api/v1/entries/:id/"},
		{"/api/v1/entries/", "/api/v1/entries/"},
		{"/api/v1/summaries", "/api/v1/summaries"},
		{"/health", "/health"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
