package utils

import (
	"strings"
	"testing"
)

func TestSanitize_StripsScript(t *testing.T) {
	out := Sanitize(`hello <script>alert(1)</script><b>world</b>`)
	if strings.Contains(out, "script") {
		t.Errorf("script survived sanitization: %q", out)
	}
	if !strings.Contains(out, "<b>world</b>") {
		t.Errorf("safe markup should survive UGC policy: %q", out)
	}
}

func TestSanitizePlain_StripsAllMarkup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain name", "plain name"},
		{"<b>bold</b> name", "bold name"},
		{`<a href="http://evil">x</a>`, "x"},
		{"<script>alert(1)</script>", ""},
	}
	for _, tt := range tests {
		if got := SanitizePlain(tt.in); got != tt.want {
			t.Errorf("SanitizePlain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
