package domain

import "testing"

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  hello  ", want: "hello"},
		{name: "case preserved", input: "Hello World", want: "Hello World"},
		{name: "compress multiple spaces", input: "hello   world", want: "hello world"},
		{name: "tabs collapse to space", input: "hello\t\tworld", want: "hello world"},
		{name: "diacritics preserved", input: "Café", want: "Café"},
		{name: "decomposed to composed", input: "Cafe\u0301", want: "Caf\u00e9"},
		{name: "hyphens preserved", input: "well-known", want: "well-known"},
		{name: "apostrophes preserved", input: "don't", want: "don't"},
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "   ", want: ""},
		{name: "japanese", input: " 猫 ", want: "猫"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFoldKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b  string
		equal bool
	}{
		{"Chat", "chat", true},
		{"STRASSE", "straße", true},
		{"Éte", "éte", true},
		{"e\u0301te", "\u00e9te", true},
		{"été", "ete", false},
		{"cat", "cats", false},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			t.Parallel()
			if got := FoldKey(tt.a) == FoldKey(tt.b); got != tt.equal {
				t.Errorf("FoldKey(%q) == FoldKey(%q) is %v, want %v", tt.a, tt.b, got, tt.equal)
			}
		})
	}
}
