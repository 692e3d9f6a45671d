package news

import (
	"regexp"
	"strings"
)

// Vocabulary is an immutable keyword set compiled once at startup.
//
// Matching rules (all case-insensitive):
//   - tokens of up to 3 bytes match as whole words, so "ai" does not hit "said"
//   - longer tokens and phrases match at a word start, so "sport" does not hit
//     "transport" but still matches "sports"
type Vocabulary struct {
	name     string
	keywords []string
	short    *regexp.Regexp
	long     *regexp.Regexp
}

// NewVocabulary compiles the given keywords. Blank keywords are ignored.
func NewVocabulary(name string, keywords ...string) *Vocabulary {
	v := &Vocabulary{name: name}

	var short, long []string
	seen := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		v.keywords = append(v.keywords, k)

		if len(k) <= 3 && !strings.Contains(k, " ") {
			short = append(short, regexp.QuoteMeta(k))
		} else {
			long = append(long, regexp.QuoteMeta(k))
		}
	}

	if len(short) > 0 {
		v.short = regexp.MustCompile(`\b(?:` + strings.Join(short, "|") + `)\b`)
	}
	if len(long) > 0 {
		v.long = regexp.MustCompile(`\b(?:` + strings.Join(long, "|") + `)`)
	}
	return v
}

// Name identifies the vocabulary in diagnostics.
func (v *Vocabulary) Name() string { return v.name }

// Len is the number of distinct keywords.
func (v *Vocabulary) Len() int { return len(v.keywords) }

// Keywords returns a copy of the normalized keywords.
func (v *Vocabulary) Keywords() []string {
	out := make([]string, len(v.keywords))
	copy(out, v.keywords)
	return out
}

// Match reports whether text contains at least one keyword.
func (v *Vocabulary) Match(text string) bool {
	if v == nil || text == "" {
		return false
	}
	text = strings.ToLower(text)
	if v.short != nil && v.short.MatchString(text) {
		return true
	}
	return v.long != nil && v.long.MatchString(text)
}

// MatchArticle matches against title and description.
func (v *Vocabulary) MatchArticle(a Article) bool {
	return v.Match(a.Text())
}
