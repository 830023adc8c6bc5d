package langcode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/zippy/internal/domain"
)

func TestCodes(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		src, tgt string
	}{
		{"freedict release", "freedict-eng-ces-0.1.3.dictd.tar.xz", "eng", "ces"},
		{"plain pair", "fra-eng.dz", "fra", "eng"},
		{"dict.dz member", "fra-eng.dict.dz", "fra", "eng"},
		{"path", "/data/dictionaries/deu-eng.src.tar.xz", "deu", "eng"},
		{"upper case", "FRA-ENG.dz", "fra", "eng"},
		{"non letter segment", "eng-x1y.dz", "eng", "x1y"},
		{"long segments", "english-czech.dz", "english", "czech"},
		{"single segment", "mydict.dz", "mydict", "mydict"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, tgt := Codes(tt.filename)
			assert.Equal(t, tt.src, src)
			assert.Equal(t, tt.tgt, tgt)
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(nil)

	assert.Equal(t, domain.LanguagePair{
		SourceCode: "eng", TargetCode: "ces",
		SourceName: "english", TargetName: "czech",
		Resolved: true,
	}, r.Resolve("freedict-eng-ces-0.1.3.dictd.tar.xz"))

	pair := r.Resolve("eng-x1y.dz")
	assert.Equal(t, "english", pair.SourceName)
	assert.Equal(t, "x1y", pair.TargetName)
	assert.False(t, pair.Resolved)

	pair = r.Resolve("mydict.dz")
	assert.Equal(t, "mydict", pair.SourceName)
	assert.Equal(t, "mydict", pair.TargetName)
	assert.False(t, pair.Resolved)
}

func TestResolver_Names(t *testing.T) {
	r := NewResolver(map[string]string{"ENG": "English-US", "tlh": "Klingon"})

	tests := []struct {
		code     string
		want     string
		resolved bool
	}{
		{"eng", "english-us", true},
		{"tlh", "klingon", true},
		{"jpn", "japanese", true},
		{"ckb", "sorani", true},
		{"xho", "xhosa", true},
		{"x1y", "x1y", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			pair := r.Resolve("fra-" + tt.code + ".dz")
			assert.Equal(t, "french", pair.SourceName)
			assert.Equal(t, tt.want, pair.TargetName)
			assert.Equal(t, tt.resolved, pair.Resolved)
		})
	}
}

func TestResolver_TableIsNotShared(t *testing.T) {
	NewResolver(map[string]string{"fra": "francais"})
	assert.Equal(t, "french", NewResolver(nil).Resolve("fra-eng.dz").SourceName)
}
