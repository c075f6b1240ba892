package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"/api/equipment/42":             "/api/equipment/{id}",
		"/api/equipment/42/attachments": "/api/equipment/{id}/attachments",
		"/api/equipment":                "/api/equipment",
		"/":                             "/",
	}
	for in, want := range cases {
		if got := normalizePath(in); got != want {
			t.Errorf("normalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}
