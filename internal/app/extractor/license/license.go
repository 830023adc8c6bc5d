// Package license condenses embedded license text to a short identifier.
package license

import (
	"regexp"
	"strings"
)

// Unknown is returned when no license is recognized.
const Unknown = "unknown"

type rule struct {
	id      string
	match   *regexp.Regexp
	version *regexp.Regexp
}

var versionRe = regexp.MustCompile(`(?i)(?:version|v\.?|-)\s*([1-4](?:\.[0-9])?)\b`)

// rules are tried in order; more specific licenses come first.
var rules = []rule{
	{id: "LGPL", match: regexp.MustCompile(`(?i)\b(?:LGPL|lesser general public licen[cs]e|library general public licen[cs]e)`), version: versionRe},
	{id: "AGPL", match: regexp.MustCompile(`(?i)\b(?:AGPL|affero general public licen[cs]e)`), version: versionRe},
	{id: "GFDL", match: regexp.MustCompile(`(?i)\b(?:GFDL|GNU FDL|free documentation licen[cs]e)`), version: versionRe},
	{id: "GPL", match: regexp.MustCompile(`(?i)\b(?:GPL|general public licen[cs]e)`), version: versionRe},
	{id: "CC-BY-SA", match: regexp.MustCompile(`(?i)\b(?:CC[- ]BY[- ]SA|creative\s+commons\s+attribution[- ]share\s*alike)`), version: regexp.MustCompile(`(?i)(?:BY[- ]SA|share\s*alike)[- ]*([1-4]\.[0-9])`)},
	{id: "CC-BY", match: regexp.MustCompile(`(?i)\b(?:CC[- ]BY|creative\s+commons\s+attribution)\b`), version: regexp.MustCompile(`(?i)(?:BY|attribution)[- ]*([1-4]\.[0-9])`)},
	{id: "CC0", match: regexp.MustCompile(`(?i)\bCC0\b`)},
	{id: "public-domain", match: regexp.MustCompile(`(?i)public\s+domain`)},
	{id: "MIT", match: regexp.MustCompile(`(?i)\bMIT\s+licen[cs]e\b`)},
	{id: "BSD", match: regexp.MustCompile(`(?i)\bBSD\b`)},
}

// Summarize returns an SPDX-like identifier for the first license found in
// text, with its version when one is stated nearby, or Unknown.
func Summarize(text string) string {
	if strings.TrimSpace(text) == "" {
		return Unknown
	}
	for _, r := range rules {
		loc := r.match.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if r.version == nil {
			return r.id
		}
		// Look for a version right after the license name.
		window := text[loc[0]:min(len(text), loc[1]+48)]
		if m := r.version.FindStringSubmatch(window); m != nil {
			v := m[1]
			if !strings.Contains(v, ".") {
				v += ".0"
			}
			return r.id + "-" + v
		}
		return r.id
	}
	return Unknown
}
