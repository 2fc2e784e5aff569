package ids

import "testing"

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"generated", New(), true},
		{"fixed", "65f1c0ffee0000000000abcd", true},
		{"empty", "", false},
		{"too_short", "abc123", false},
		{"not_hex", "zzzzzzzzzzzzzzzzzzzzzzzz", false},
		{"uuid", "e42b6ed3-0af3-49f0-9dcd-37aa7ed8c980", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Valid(tt.id); got != tt.want {
				t.Fatalf("Valid(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestNewIsUnique(t *testing.T) {
	if New() == New() {
		t.Fatal("expected distinct ids")
	}
}
