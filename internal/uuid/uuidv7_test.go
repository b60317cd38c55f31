package uuid

import (
	"testing"

	googleuuid "github.com/google/uuid"
)

func TestNew(t *testing.T) {
	t.Run("returns_version_7", func(t *testing.T) {
		id := New()
		parsed, err := googleuuid.Parse(id)
		if err != nil {
			t.Fatalf("New() returned invalid UUID %q: %v", id, err)
		}
		if parsed.Version() != 7 {
			t.Errorf("expected version 7, got %d", parsed.Version())
		}
	})

	t.Run("unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id := New()
			if seen[id] {
				t.Fatalf("duplicate id %s", id)
			}
			seen[id] = true
		}
	})
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{New(), true},
		{"01900000-0000-7000-8000-000000000001", true},
		{"not-a-uuid", false},
		{"", false},
		{"{01900000-0000-7000-8000-000000000001}", false},
		{"urn:uuid:01900000-0000-7000-8000-000000000001", false},
	}
	for _, tt := range tests {
		if got := IsValid(tt.in); got != tt.want {
			t.Errorf("IsValid(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("01900000-0000-7000-8000-00000000000A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "01900000-0000-7000-8000-00000000000a" {
		t.Errorf("expected lower-case canonical form, got %s", got)
	}

	if _, err := Parse("nope"); err == nil {
		t.Error("expected error for invalid input")
	}
}
