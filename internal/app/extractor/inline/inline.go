// Package inline extracts POS tags and translations from free-text
// definitions, as found in dictd bodies and flat gzip dictionaries.
//
// The extraction is a heuristic. Angle-bracket groups (<n, masc>) are always
// tags. Parenthesized groups are tags only when every token in them is a
// known tag ("(n)", "(v, trans)"); otherwise they are annotations and are
// dropped, as are square-bracket labels, braces and /pronunciations/.
// A tag group that follows text and precedes more text starts a new segment,
// so "(n) cat; (v) to cat around" yields two segments.
package inline

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TagSet decides whether a token is a recognized POS tag.
type TagSet interface {
	IsTag(token string) bool
}

// Segment is a run of definition text governed by one set of tags.
type Segment struct {
	Tags         []string
	Translations []string
}

var (
	senseNumberRe = regexp.MustCompile(`^(?:\d+[.)]|[a-z]\))\s+`)
	annotationRe  = regexp.MustCompile(`^[\p{L} ]{1,24}:\s`)
)

// Parse splits a definition into tagged segments. When the first line starts
// with the headword it is treated as a headline: its tags apply to every
// segment and its remaining text is ignored unless it is the only line.
// A lone line whose text after the headword opens with a list separator
// ("table <n>, tableau") lists the headword itself as a translation.
// Lines holding nothing but tags before any text extend the headline tags.
func Parse(headword string, lines []string, tags TagSet) []Segment {
	lines = nonEmpty(lines)
	var lead []string

	if len(lines) > 0 {
		if word, rest, ok := cutHeadword(lines[0], headword); ok {
			head := scan(rest, tags)
			for _, s := range head {
				lead = append(lead, s.tags...)
			}
			if len(lines) == 1 {
				seg := Segment{Tags: lead}
				if continuesList(head) {
					seg.Translations = append(seg.Translations, word)
				}
				for _, s := range head {
					seg.Translations = append(seg.Translations, SplitTranslations(s.text)...)
				}
				return []Segment{seg}
			}
			lines = lines[1:]
		}
	}

	var segs []rawSegment
	for _, line := range lines {
		line = senseNumberRe.ReplaceAllString(line, "")
		if annotationRe.MatchString(line) {
			continue
		}
		scanned := scan(line, tags)
		if len(segs) == 0 && tagsOnly(scanned) {
			for _, s := range scanned {
				lead = append(lead, s.tags...)
			}
			continue
		}
		segs = append(segs, scanned...)
	}
	return finish(lead, segs)
}

// SplitTranslations splits segment text on translation separators.
func SplitTranslations(text string) []string {
	parts := strings.FieldsFunc(text, isSeparator)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type rawSegment struct {
	tags []string
	text string
}

func finish(lead []string, segs []rawSegment) []Segment {
	var out []Segment
	for _, s := range segs {
		trans := SplitTranslations(s.text)
		if len(trans) == 0 && len(s.tags) == 0 {
			continue
		}
		out = append(out, Segment{Tags: merge(lead, s.tags), Translations: trans})
	}
	if len(out) == 0 {
		return []Segment{{Tags: lead}}
	}
	return out
}

func merge(lead, own []string) []string {
	if len(lead) == 0 {
		return own
	}
	out := make([]string, 0, len(lead)+len(own))
	out = append(out, lead...)
	return append(out, own...)
}

func tagsOnly(segs []rawSegment) bool {
	if len(segs) == 0 {
		return false
	}
	for _, s := range segs {
		if strings.TrimSpace(s.text) != "" {
			return false
		}
	}
	return true
}

// scan walks one line, collecting tag groups and text.
func scan(line string, tags TagSet) []rawSegment {
	var (
		segs    []rawSegment
		cur     rawSegment
		pending []string
		text    strings.Builder
	)

	flush := func() {
		cur.text = text.String()
		if strings.TrimSpace(cur.text) != "" || len(cur.tags) > 0 {
			segs = append(segs, cur)
		}
		cur = rawSegment{}
		text.Reset()
	}
	addTags := func(ts []string) {
		if strings.TrimSpace(text.String()) == "" {
			cur.tags = append(cur.tags, ts...)
			return
		}
		pending = append(pending, ts...)
	}
	addText := func(s string) {
		if strings.TrimSpace(s) != "" && len(pending) > 0 {
			flush()
			cur.tags = pending
			pending = nil
		}
		text.WriteString(s)
	}

	for i := 0; i < len(line); {
		c := line[i]
		switch c {
		case '<', '(', '[', '{':
			end := strings.IndexByte(line[i+1:], closer(c))
			if end < 0 {
				i++
				continue
			}
			inner := line[i+1 : i+1+end]
			i += end + 2
			switch c {
			case '<':
				addTags(tagTokens(inner))
			case '(':
				if ts := tagTokens(inner); len(ts) > 0 && allTags(ts, tags) {
					addTags(ts)
				} else {
					text.WriteByte(' ')
				}
			default:
				text.WriteByte(' ')
			}
		case '/':
			end := strings.IndexByte(line[i+1:], '/')
			if end > 0 && !strings.ContainsFunc(line[i+1:i+1+end], unicode.IsSpace) {
				i += end + 2
				text.WriteByte(' ')
				continue
			}
			addText(",")
			i++
		default:
			j := i
			for j < len(line) && !strings.ContainsRune("<([{/", rune(line[j])) {
				j++
			}
			addText(line[i:j])
			i = j
		}
	}
	cur.tags = append(cur.tags, pending...)
	flush()
	return segs
}

func closer(open byte) byte {
	switch open {
	case '<':
		return '>'
	case '(':
		return ')'
	case '[':
		return ']'
	}
	return '}'
}

func tagTokens(inner string) []string {
	return strings.FieldsFunc(inner, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
}

func allTags(tokens []string, tags TagSet) bool {
	for _, t := range tokens {
		if !tags.IsTag(t) {
			return false
		}
	}
	return true
}

// cutHeadword splits a leading headword, as spelled in line, from the rest
// of line.
func cutHeadword(line, headword string) (word, rest string, ok bool) {
	headword = strings.TrimSpace(headword)
	if headword == "" || len(line) < len(headword) {
		return "", "", false
	}
	if !strings.EqualFold(line[:len(headword)], headword) {
		return "", "", false
	}
	rest = line[len(headword):]
	if rest != "" {
		r := rune(rest[0])
		if !unicode.IsSpace(r) && !strings.ContainsRune("</([{", r) {
			return "", "", false
		}
	}
	return line[:len(headword)], rest, true
}

// continuesList reports whether the text of segs opens with a translation
// separator.
func continuesList(segs []rawSegment) bool {
	for _, s := range segs {
		text := strings.TrimSpace(s.text)
		if text == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(text)
		return isSeparator(r)
	}
	return false
}

func isSeparator(r rune) bool {
	switch r {
	case ';', ',', '、', '，', '；', '،':
		return true
	}
	return false
}

func nonEmpty(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
