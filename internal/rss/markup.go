package rss

import (
	"html"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/gulcinmobile/newsengine/internal/news"
)

// maxDescriptionRunes bounds sanitized descriptions, ellipsis included.
const maxDescriptionRunes = 150

var (
	cdataRe   = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	anyTagRe  = regexp.MustCompile(`(?s)<[^>]*>`)
	attrRe    = regexp.MustCompile(`([\w:.-]+)\s*=\s*(?:"([^"]*)"|'([^']*)')`)

	blockRes sync.Map // tag name -> *regexp.Regexp
	openRes  sync.Map
)

func unwrapCDATA(s string) string {
	return cdataRe.ReplaceAllString(s, "$1")
}

// cleanText unwraps CDATA, strips markup, decodes entities and collapses
// whitespace. Text that decodes to "<" stays text.
func cleanText(raw string) string {
	s := unwrapCDATA(raw)
	s = anyTagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// cleanEscapedHTML is cleanText for elements declared type="html", whose
// markup is itself entity-encoded.
func cleanEscapedHTML(raw string) string {
	return cleanText(html.UnescapeString(unwrapCDATA(raw)))
}

// escapedHTML reports whether the first <tag> in block declares its content
// as escaped HTML.
func escapedHTML(block, tag string) bool {
	for _, attrs := range openTags(block, tag) {
		switch strings.ToLower(attrs["type"]) {
		case "html", "text/html":
			return true
		}
		return false
	}
	return false
}

// elementText returns the cleaned text of the first <tag> in block.
func elementText(block, tag string) string {
	raw := innerText(block, tag)
	if escapedHTML(block, tag) {
		return cleanEscapedHTML(raw)
	}
	return cleanText(raw)
}

// sanitizeDescription bounds already cleaned text.
func sanitizeDescription(text string) string {
	if text == "" {
		return news.NoDescription
	}
	return truncate(text, maxDescriptionRunes)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}

// blocks returns the inner text of every <tag ...>...</tag> element.
func blocks(doc, tag string) []string {
	re := cachedRe(&blockRes, tag, `(?s)<`+regexp.QuoteMeta(tag)+`(?:\s[^>]*)?>(.*?)</`+regexp.QuoteMeta(tag)+`\s*>`)
	matches := re.FindAllStringSubmatch(doc, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// innerText returns the trimmed content of the first non-self-closing <tag>
// element in block. The tag name must be followed by whitespace or '>'.
func innerText(block, tag string) string {
	open := "<" + tag
	closing := "</" + tag + ">"
	for i := 0; i < len(block); {
		j := strings.Index(block[i:], open)
		if j < 0 {
			return ""
		}
		start := i + j + len(open)
		if start >= len(block) {
			return ""
		}
		if c := block[start]; c != '>' && c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			i = start
			continue
		}
		end := strings.IndexByte(block[start:], '>')
		if end < 0 {
			return ""
		}
		if end > 0 && block[start+end-1] == '/' {
			i = start + end + 1
			continue
		}
		body := block[start+end+1:]
		k := strings.Index(body, closing)
		if k < 0 {
			return ""
		}
		return strings.TrimSpace(body[:k])
	}
	return ""
}

// openTags returns the attributes of every <tag ...> opening element,
// self-closing or not. Attribute values are entity-decoded.
func openTags(block, tag string) []map[string]string {
	re := cachedRe(&openRes, tag, `(?s)<`+regexp.QuoteMeta(tag)+`\s([^>]*)>`)
	matches := re.FindAllStringSubmatch(block, -1)
	out := make([]map[string]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, attributes(m[1]))
	}
	return out
}

func attributes(s string) map[string]string {
	attrs := map[string]string{}
	for _, m := range attrRe.FindAllStringSubmatch(s, -1) {
		v := m[2]
		if v == "" {
			v = m[3]
		}
		attrs[strings.ToLower(m[1])] = strings.TrimSpace(html.UnescapeString(v))
	}
	return attrs
}

// firstImgSrc finds the first <img src> in an HTML fragment. Fragments that
// only carry escaped markup are decoded first.
func firstImgSrc(fragment string) string {
	s := unwrapCDATA(fragment)
	if !strings.Contains(s, "<img") && strings.Contains(s, "&lt;img") {
		s = html.UnescapeString(s)
	}
	if !strings.Contains(s, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return strings.TrimSpace(src)
}

func cachedRe(m *sync.Map, key, expr string) *regexp.Regexp {
	if re, ok := m.Load(key); ok {
		return re.(*regexp.Regexp)
	}
	re, _ := m.LoadOrStore(key, regexp.MustCompile(expr))
	return re.(*regexp.Regexp)
}
