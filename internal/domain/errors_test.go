package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestRecordError_UnwrapsToMalformed(t *testing.T) {
	t.Parallel()

	err := NewRecordError(7, "segment truncated")

	if got := err.Error(); got != "record 7: segment truncated" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrRecordMalformed) {
		t.Fatal("errors.Is(err, ErrRecordMalformed) = false")
	}

	wrapped := fmt.Errorf("read body: %w", err)
	var re *RecordError
	if !errors.As(wrapped, &re) || re.Index != 7 {
		t.Fatalf("errors.As should recover the record index, got %+v", re)
	}
}

func TestParseStats_Skip(t *testing.T) {
	t.Parallel()

	var st ParseStats
	for i := range maxSkipped + 5 {
		st.Skip(NewRecordError(i+1, "bad"))
	}

	if st.Malformed != maxSkipped+5 {
		t.Fatalf("Malformed = %d, want %d", st.Malformed, maxSkipped+5)
	}
	if len(st.Skipped) != maxSkipped {
		t.Fatalf("len(Skipped) = %d, want %d", len(st.Skipped), maxSkipped)
	}
	if st.Skipped[0].Index != 1 {
		t.Fatalf("first skipped index = %d, want 1", st.Skipped[0].Index)
	}
}

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("pos", "unknown part of speech")

	if got := err.Error(); got != "validation: pos: unknown part of speech" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrUnsupportedFormat, ErrArchiveCorrupt, ErrRecordMalformed,
		ErrNoUsableEntries, ErrValidation,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
