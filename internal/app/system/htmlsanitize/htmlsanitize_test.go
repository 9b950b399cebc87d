package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/panelboard/panelboard/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	result := htmlsanitize.Sanitize("")
	if result != "" {
		t.Errorf("expected empty string, got %q", result)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	result := htmlsanitize.Sanitize("Hello, World!")
	if result != "Hello, World!" {
		t.Errorf("expected plain text unchanged, got %q", result)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	input := "<p>Hello</p><script>alert('xss')</script>"
	result := htmlsanitize.Sanitize(input)
	if result != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", result)
	}
}

func TestSanitize_RemovesJavascriptHref(t *testing.T) {
	input := `<a href="javascript:alert('xss')">Click</a>`
	result := htmlsanitize.Sanitize(input)
	if result == input {
		t.Error("expected javascript: href to be removed")
	}
}

func TestStrip_RemovesAllMarkup(t *testing.T) {
	input := "<p><strong>Login</strong></p>"
	result := htmlsanitize.Strip(input)
	if result != "Login" {
		t.Errorf("expected markup stripped, got %q", result)
	}
}

func TestStrip_PlainTextUnchanged(t *testing.T) {
	result := htmlsanitize.Strip("Update Profile")
	if result != "Update Profile" {
		t.Errorf("expected plain text unchanged, got %q", result)
	}
}

func TestStrip_Script(t *testing.T) {
	result := htmlsanitize.Strip("Login<script>alert(1)</script>")
	if strings.Contains(result, "script") || strings.Contains(result, "alert") {
		t.Errorf("expected script content removed, got %q", result)
	}
}
