// Package translate turns English article text into the reader's language.
// Backends are tried in order; when every backend fails the original text is
// kept so a list never loses entries to translation.
package translate

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/gulcinmobile/newsengine/internal/diag"
	"github.com/gulcinmobile/newsengine/internal/ratelimit"
)

// SourceLanguage is the language every feed and the search API deliver.
const SourceLanguage = "en"

// maxChars bounds a single request to the backends.
const maxChars = 4000

// Translator converts text between two language codes.
type Translator interface {
	Name() string
	Translate(ctx context.Context, text, from, to string) (string, error)
}

var languages = map[string]string{
	"en": "English",
	"tr": "Turkish",
	"fr": "French",
	"es": "Spanish",
	"de": "German",
}

// Languages lists the supported codes in menu order.
func Languages() []string {
	return []string{"en", "tr", "fr", "es", "de"}
}

// Supported reports whether code is a language the app offers.
func Supported(code string) bool {
	_, ok := languages[code]
	return ok
}

// LanguageName returns the English name for a code, or the code itself.
func LanguageName(code string) string {
	if name, ok := languages[code]; ok {
		return name
	}
	return code
}

// Chain tries each backend until one produces text.
type Chain struct {
	backends []Translator
	limiter  *ratelimit.Limiter
	sink     diag.Sink
}

// NewChain builds a chain. limiter may be nil; budgets are looked up by
// backend name.
func NewChain(limiter *ratelimit.Limiter, sink diag.Sink, backends ...Translator) *Chain {
	var bs []Translator
	for _, b := range backends {
		if b != nil {
			bs = append(bs, b)
		}
	}
	return &Chain{backends: bs, limiter: limiter, sink: diag.OrDiscard(sink)}
}

func (c *Chain) Name() string { return "chain" }

// Len is the number of configured backends.
func (c *Chain) Len() int { return len(c.backends) }

// Translate never fails: on total failure it returns text unchanged.
func (c *Chain) Translate(ctx context.Context, text, from, to string) (string, error) {
	if strings.TrimSpace(text) == "" || from == to {
		return text, nil
	}

	input := text
	if r := []rune(input); len(r) > maxChars {
		input = string(r[:maxChars]) + "..."
	}

	for _, b := range c.backends {
		if err := ctx.Err(); err != nil {
			break
		}
		if c.limiter != nil {
			if err := c.limiter.Use(ctx, b.Name()); err != nil {
				c.fail(b.Name(), to, err)
				continue
			}
		}
		result, err := b.Translate(ctx, input, from, to)
		if err == nil {
			result = SanitizeAIText(result)
			if result != "" {
				return result, nil
			}
			err = errors.New("empty translation")
		}
		c.fail(b.Name(), to, err)
	}
	return text, nil
}

func (c *Chain) fail(backend, to string, err error) {
	c.sink.Emit(diag.Stamp(diag.Event{
		Kind:      diag.KindTranslateError,
		Component: "translate",
		Source:    backend,
		Msg:       to,
		Err:       err,
	}))
}

var (
	parenNoteRe   = regexp.MustCompile(`(?i)\(\s*note\s*:[^)]*\)`)
	bracketNoteRe = regexp.MustCompile(`(?i)\[\s*note\s*:[^\]]*\]`)
	lineNoteRe    = regexp.MustCompile(`(?i)^note\s*:`)
	spacesRe      = regexp.MustCompile(`[ \t]+`)
)

// SanitizeAIText removes the "Note: this is a machine translation" asides
// that language models like to add, in parentheses, brackets or on a line
// of their own.
func SanitizeAIText(s string) string {
	s = parenNoteRe.ReplaceAllString(s, "")
	s = bracketNoteRe.ReplaceAllString(s, "")

	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(spacesRe.ReplaceAllString(line, " "))
		if line == "" || lineNoteRe.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
