package domain

import "testing"

func TestFormatKind_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind FormatKind
		want bool
	}{
		{FormatFlatFile, true},
		{FormatDictd, true},
		{FormatTEI, true},
		{FormatKind("STARDICT"), false},
		{FormatKind(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()
			if got := tt.kind.IsValid(); got != tt.want {
				t.Errorf("FormatKind(%q).IsValid() = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestParseFormatKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    FormatKind
		wantErr bool
	}{
		{"tei", FormatTEI, false},
		{"TEI", FormatTEI, false},
		{"dictd", FormatDictd, false},
		{"flat", FormatFlatFile, false},
		{"FLAT_FILE", FormatFlatFile, false},
		{" dz ", FormatFlatFile, false},
		{"stardict", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFormatKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormatKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormatKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPartOfSpeech_IsValid(t *testing.T) {
	t.Parallel()

	for _, p := range AllPartsOfSpeech {
		if !p.IsValid() {
			t.Errorf("%q should be valid", p)
		}
	}
	if PartOfSpeech("PRONOUN").IsValid() {
		t.Error("PRONOUN is not a canonical value")
	}
}

func TestParsePartOfSpeech(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    PartOfSpeech
		wantErr bool
	}{
		{"n", PartOfSpeechNoun, false},
		{"N", PartOfSpeechNoun, false},
		{"noun", PartOfSpeechNoun, false},
		{"v", PartOfSpeechVerb, false},
		{"adj", PartOfSpeechAdjective, false},
		{"adv", PartOfSpeechAdverb, false},
		{"ADVERB", PartOfSpeechAdverb, false},
		{"unknown", PartOfSpeechUnknown, false},
		{"prep", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run("pos_"+tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParsePartOfSpeech(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePartOfSpeech(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePartOfSpeech(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
