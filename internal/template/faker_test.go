package template

import (
	"strings"
	"testing"
)

func TestGenerateKnownKinds(t *testing.T) {
	kinds := []string{
		"firstname", "lastname", "fullname", "email", "username", "password",
		"domain", "ipv4", "ipv6", "uuid", "guid", "number", "float", "boolean",
		"date", "datetime", "color", "hexcolor", "word", "sentence",
	}
	for _, kind := range kinds {
		t.Run(kind, func(t *testing.T) {
			got, err := generate(kind)
			if err != nil {
				t.Fatalf("generate(%q): %v", kind, err)
			}
			if got == "" {
				t.Errorf("generate(%q) returned empty string", kind)
			}
		})
	}
}

func TestGenerateCaseInsensitive(t *testing.T) {
	if _, err := generate("EMAIL"); err != nil {
		t.Errorf("expected case-insensitive match, got %v", err)
	}
}

func TestGenerateUnknownKind(t *testing.T) {
	_, err := generate("not-a-real-kind")
	if err == nil {
		t.Fatal("expected error for unknown faker kind")
	}
}

func TestGenerateEmailLooksLikeEmail(t *testing.T) {
	email, err := generate("email")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(email, "@") {
		t.Errorf("expected email-shaped output, got %q", email)
	}
}

func TestSubstituteStrictWithFaker(t *testing.T) {
	got, err := SubstituteStrict("id={{f:uuid}}", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "id=") || len(got) <= len("id=") {
		t.Errorf("got %q", got)
	}
}
