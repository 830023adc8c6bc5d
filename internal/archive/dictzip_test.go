package archive

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/zippy/internal/archive/archivetest"
	"github.com/heartmarshall/zippy/internal/domain"
)

func sampleBody() []byte {
	var b strings.Builder
	for i := range 40 {
		b.WriteString("line ")
		b.WriteByte(byte('a' + i%26))
		b.WriteString(" of the dictionary body\n")
	}
	return []byte(b.String())
}

func TestDictzip_ChunkedSegments(t *testing.T) {
	body := sampleBody()
	dz := archivetest.Dictzip(t, body, 50)

	d, err := NewDictzip(bytes.NewReader(dz), int64(len(dz)))
	require.NoError(t, err)
	require.NotNil(t, d.chunks)

	tests := []struct {
		name           string
		offset, length int64
	}{
		{"inside first chunk", 3, 10},
		{"exactly one chunk", 50, 50},
		{"across a boundary", 45, 20},
		{"across many chunks", 10, 400},
		{"tail of body", int64(len(body)) - 7, 7},
		{"whole body", 0, int64(len(body))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Segment(tt.offset, tt.length)
			require.NoError(t, err)
			assert.Equal(t, string(body[tt.offset:tt.offset+tt.length]), string(got))
		})
	}
}

func TestDictzip_FallbackWithoutRandomAccess(t *testing.T) {
	body := sampleBody()
	gz := archivetest.Gzip(t, body)

	d, err := NewDictzip(bytes.NewReader(gz), int64(len(gz)))
	require.NoError(t, err)
	assert.Nil(t, d.chunks)

	got, err := d.Segment(100, 64)
	require.NoError(t, err)
	assert.Equal(t, string(body[100:164]), string(got))
}

func TestDictzip_OutOfRangeIsMalformed(t *testing.T) {
	body := sampleBody()

	for name, data := range map[string][]byte{
		"chunked": archivetest.Dictzip(t, body, 50),
		"plain":   archivetest.Gzip(t, body),
	} {
		t.Run(name, func(t *testing.T) {
			d, err := NewDictzip(bytes.NewReader(data), int64(len(data)))
			require.NoError(t, err)

			_, err = d.Segment(int64(len(body))-5, 20)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrRecordMalformed))

			_, err = d.Segment(-1, 3)
			assert.True(t, errors.Is(err, domain.ErrRecordMalformed))

			_, err = d.Segment(0, MaxSegmentSize+1)
			assert.True(t, errors.Is(err, domain.ErrRecordMalformed))

			got, err := d.Segment(7, 0)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestDictzip_CorruptChunkIsMalformed(t *testing.T) {
	body := sampleBody()
	dz := archivetest.Dictzip(t, body, 50)

	d, err := NewDictzip(bytes.NewReader(dz), int64(len(dz)))
	require.NoError(t, err)

	// Overwrite the deflate data of the second chunk with garbage.
	second := d.chunks[1]
	corrupt := bytes.Clone(dz)
	for i := second.offset; i < second.offset+second.size; i++ {
		corrupt[i] = 0xff
	}
	d, err = NewDictzip(bytes.NewReader(corrupt), int64(len(corrupt)))
	require.NoError(t, err)

	_, err = d.Segment(55, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRecordMalformed))

	// Other chunks are unaffected.
	got, err := d.Segment(0, 10)
	require.NoError(t, err)
	assert.Equal(t, string(body[:10]), string(got))
}

func TestDictzip_BadHeader(t *testing.T) {
	data := []byte("definitely not gzip")
	_, err := NewDictzip(bytes.NewReader(data), int64(len(data)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrArchiveCorrupt))
}
