package tei

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/zippy/internal/archive"
	"github.com/heartmarshall/zippy/internal/archive/archivetest"
	"github.com/heartmarshall/zippy/internal/domain"
)

func parseDoc(t *testing.T, doc string) ([]domain.RawEntry, domain.ParseStats, *archive.Archive) {
	t.Helper()
	path := archivetest.WriteTEI(t, t.TempDir(), "fra-eng.src.tar.xz", "fra-eng", doc)
	a, err := archive.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	var (
		st      domain.ParseStats
		entries []domain.RawEntry
	)
	for e, err := range New().Entries(a, &st) {
		require.NoError(t, err)
		entries = append(entries, e)
	}
	return entries, st, a
}

func TestEntries_SingleEntry(t *testing.T) {
	doc := archivetest.TEIDocument("GNU General Public License",
		`<entry><form><orth>chat</orth></form><gramGrp><pos>noun</pos></gramGrp>`+
			`<sense><cit type="trans" xml:lang="en"><quote>cat</quote></cit></sense></entry>`)

	entries, st, a := parseDoc(t, doc)

	require.Len(t, entries, 1)
	assert.Equal(t, domain.RawEntry{
		Headword:     "chat",
		POS:          []string{"noun"},
		Translations: []string{"cat"},
		Index:        1,
	}, entries[0])
	assert.Equal(t, 1, st.Records)
	assert.Equal(t, 1, st.Tagged)
	assert.Equal(t, 1, st.Metadata)
	assert.Equal(t, "GNU General Public License", a.Metadata.License)
}

func TestEntries_SensePerRawEntry(t *testing.T) {
	doc := archivetest.TEIDocument("",
		`<entry>
			<form type="lemma"><orth>run</orth><pron>rʌn</pron></form>
			<gramGrp><pos>v</pos></gramGrp>
			<sense n="1"><cit type="trans"><quote>courir</quote></cit></sense>
			<sense n="2">
				<gramGrp><pos>n</pos><gen>f</gen></gramGrp>
				<cit type="trans"><quote>course</quote></cit>
				<cit type="example"><quote>a morning run</quote></cit>
			</sense>
			<sense n="3">
				<sense><cit type="translation"><quote>diriger</quote><quote>gérer</quote></cit></sense>
			</sense>
		</entry>`)

	entries, _, _ := parseDoc(t, doc)

	require.Len(t, entries, 3)
	assert.Equal(t, domain.RawEntry{Headword: "run", POS: []string{"v"}, Translations: []string{"courir"}, Index: 1}, entries[0])
	assert.Equal(t, domain.RawEntry{Headword: "run", POS: []string{"n"}, Translations: []string{"course"}, Markers: []string{"f"}, Index: 1}, entries[1])
	assert.Equal(t, domain.RawEntry{Headword: "run", POS: []string{"v"}, Translations: []string{"diriger", "gérer"}, Index: 1}, entries[2])
}

func TestEntries_GramVariants(t *testing.T) {
	doc := archivetest.TEIDocument("",
		`<entry><form><orth>Haus</orth><gramGrp><gram type="pos">noun</gram><gram type="gen">neut</gram></gramGrp></form>`+
			`<sense><cit type="trans"><quote>house</quote></cit></sense></entry>`,
		`<entry><form><orth>Katze</orth></form><gramGrp><pos>n</pos></gramGrp><trans><tr>cat</tr></trans></entry>`,
		`<entry><form><orth>und</orth></form></entry>`)

	entries, _, _ := parseDoc(t, doc)

	require.Len(t, entries, 3)
	assert.Equal(t, domain.RawEntry{Headword: "Haus", POS: []string{"noun"}, Translations: []string{"house"}, Markers: []string{"neut"}, Index: 1}, entries[0])
	assert.Equal(t, domain.RawEntry{Headword: "Katze", POS: []string{"n"}, Translations: []string{"cat"}, Index: 2}, entries[1])
	assert.Equal(t, domain.RawEntry{Headword: "und", Index: 3}, entries[2])
}

func TestEntries_MalformedEntrySkipped(t *testing.T) {
	doc := archivetest.TEIDocument("",
		`<entry><form><orth>chat</orth></form><sense><cit type="trans"><quote>cat</quote></cit></sense></entry>`,
		`<entry><form><orth>chien</orth></form><sense><cit type="trans"><quote>dog</quote></cit></sense>`,
		`<entry><form><orth>oiseau</orth></form><sense><cit type="trans"><quote>bird</quote></cit></sense></entry>`,
		`<entry><form><orth>a &undefined; b</orth></form></entry>`)

	entries, st, _ := parseDoc(t, doc)

	require.Len(t, entries, 2)
	assert.Equal(t, "chat", entries[0].Headword)
	assert.Equal(t, "oiseau", entries[1].Headword)
	assert.Equal(t, []string{"bird"}, entries[1].Translations)
	assert.Equal(t, 4, st.Records)
	assert.Equal(t, 2, st.Malformed)
	require.Len(t, st.Skipped, 2)
	assert.Equal(t, 2, st.Skipped[0].Index)
	assert.Equal(t, 4, st.Skipped[1].Index)
}

func TestEntries_EmptyHeadwordDropped(t *testing.T) {
	doc := archivetest.TEIDocument("",
		`<entry><form><orth>  </orth></form><sense><cit type="trans"><quote>x</quote></cit></sense></entry>`,
		`<entry><form><form><orth>nested</orth></form></form></entry>`)

	entries, st, _ := parseDoc(t, doc)

	require.Len(t, entries, 1)
	assert.Equal(t, "nested", entries[0].Headword)
	assert.Equal(t, 1, st.Dropped)
}

func TestEntries_NoDocument(t *testing.T) {
	path := archivetest.WriteFile(t, t.TempDir(), "fra-eng.src.tar.xz", archivetest.TarXz(t,
		archivetest.Member{Name: "fra-eng/README", Data: []byte("nothing here")}))
	a, err := archive.Open(path)
	require.NoError(t, err)
	defer a.Close()

	var st domain.ParseStats
	var gotErr error
	for _, err := range New().Entries(a, &st) {
		gotErr = err
	}
	require.Error(t, gotErr)
	assert.True(t, errors.Is(gotErr, domain.ErrArchiveCorrupt))
}

func collect(t *testing.T, members ...archivetest.Member) ([]domain.RawEntry, error) {
	t.Helper()
	path := archivetest.WriteFile(t, t.TempDir(), "fra-eng.src.tar.xz", archivetest.TarXz(t, members...))
	a, err := archive.Open(path)
	require.NoError(t, err)
	defer a.Close()

	var (
		st      domain.ParseStats
		entries []domain.RawEntry
	)
	for e, err := range New().Entries(a, &st) {
		if err != nil {
			return entries, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func TestEntries_MemberSelection(t *testing.T) {
	lexicon := archivetest.TEIDocument("", `<entry><form><orth>chat</orth></form><sense><cit type="trans"><quote>cat</quote></cit></sense></entry>`)
	schema := `<?xml version="1.0"?><TEI xmlns="http://www.tei-c.org/ns/1.0"><text><body><schemaSpec ident="freedict"/></body></text></TEI>`
	odd := `<?xml version="1.0"?><schemaSpec ident="freedict"><entry><form><orth>bogus</orth></form></entry></schemaSpec>`

	tests := []struct {
		name    string
		members []archivetest.Member
		want    []string
		wantErr bool
	}{
		{
			name: "tei member wins over earlier xml",
			members: []archivetest.Member{
				{Name: "fra-eng/freedict-P5.xml", Data: []byte(odd)},
				{Name: "fra-eng/fra-eng.tei", Data: []byte(lexicon)},
			},
			want: []string{"chat"},
		},
		{
			name: "tei member wins over earlier tei-rooted xml",
			members: []archivetest.Member{
				{Name: "fra-eng/freedict-P5.xml", Data: []byte(schema)},
				{Name: "fra-eng/fra-eng.tei", Data: []byte(lexicon)},
			},
			want: []string{"chat"},
		},
		{
			name: "tei-rooted xml used without tei member",
			members: []archivetest.Member{
				{Name: "fra-eng/odd.xml", Data: []byte(odd)},
				{Name: "fra-eng/fra-eng.xml", Data: []byte(lexicon)},
			},
			want: []string{"chat"},
		},
		{
			name: "xml without tei root is not a lexicon",
			members: []archivetest.Member{
				{Name: "fra-eng/freedict-P5.xml", Data: []byte(odd)},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := collect(t, tt.members...)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrArchiveCorrupt))
				return
			}
			require.NoError(t, err)
			var got []string
			for _, e := range entries {
				got = append(got, e.Headword)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntries_BareDocument(t *testing.T) {
	doc := archivetest.TEIDocument("", `<entry><form><orth>chat</orth></form><sense><cit><quote>cat</quote></cit></sense></entry>`)
	path := archivetest.WriteFile(t, t.TempDir(), "fra-eng.tei", []byte(doc))
	a, err := archive.Open(path)
	require.NoError(t, err)
	defer a.Close()

	var st domain.ParseStats
	var got []domain.RawEntry
	for e, err := range New().Entries(a, &st) {
		require.NoError(t, err)
		got = append(got, e)
	}
	require.Len(t, got, 1)
	assert.Equal(t, []string{"cat"}, got[0].Translations)
}

func TestEntries_Deterministic(t *testing.T) {
	doc := archivetest.TEIDocument("",
		`<entry><form><orth>a</orth></form><sense><cit type="trans"><quote>x</quote></cit></sense><sense><cit type="trans"><quote>y</quote></cit></sense></entry>`,
		`<entry><form><orth>b</orth></form><gramGrp><pos>adj</pos></gramGrp></entry>`)

	first, _, _ := parseDoc(t, doc)
	second, _, _ := parseDoc(t, doc)
	assert.Equal(t, first, second)
}

func TestTextContent(t *testing.T) {
	got := textContent([]byte(`<p>Licensed under the</p>
		<licence target="http://www.gnu.org/licenses/gpl-3.0.html"><p>GNU GPL 3</p></licence>`))
	assert.Equal(t, "Licensed under the GNU GPL 3", got)
}
