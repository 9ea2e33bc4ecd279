package envutil

import "testing"

func TestFloat(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{"unset falls back", "", 0.1},
		{"parses value", "0.75", 0.75},
		{"garbage falls back", "lots", 0.1},
		{"whitespace trimmed", "  0.5  ", 0.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.value != "" {
				t.Setenv("FORGE_TEST_FLOAT", tc.value)
			}
			if got := Float("FORGE_TEST_FLOAT", 0.1); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestList(t *testing.T) {
	if got := List("FORGE_TEST_LIST", []string{"a"}); len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected fallback, got %v", got)
	}
	t.Setenv("FORGE_TEST_LIST", " x , ,y ")
	got := List("FORGE_TEST_LIST", nil)
	if len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Fatalf("expected trimmed parts, got %v", got)
	}
}
