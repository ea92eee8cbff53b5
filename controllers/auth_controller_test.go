package controllers

import "testing"

func TestValidUsername(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"bob", true},
		{"trainee-42", true},
		{"AB-cd-09", true},
		{"ab", false},
		{"has space", false},
		{"under_score", false},
		{"émile", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := validUsername(tt.in); got != tt.want {
			t.Errorf("validUsername(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResolveTimezone(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		def       string
		want      string
	}{
		{"valid zone kept", "Europe/Stockholm", "UTC", "Europe/Stockholm"},
		{"empty falls back", "", "UTC", "UTC"},
		{"whitespace falls back", "   ", "UTC", "UTC"},
		{"unknown falls back", "Mars/Olympus", "UTC", "UTC"},
		{"fallback honors configured default", "bogus", "Europe/Berlin", "Europe/Berlin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveTimezone(tt.requested, tt.def); got != tt.want {
				t.Errorf("resolveTimezone(%q, %q) = %q, want %q", tt.requested, tt.def, got, tt.want)
			}
		})
	}
}
