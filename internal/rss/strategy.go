package rss

import (
	"strings"

	"github.com/gulcinmobile/newsengine/internal/news"
)

// imageResolver extracts an image URL from one entry block, or "".
type imageResolver func(block string) string

// strategy holds everything dialect-specific about reading entries.
type strategy struct {
	name         string
	entryTag     string
	link         func(block string) string
	descriptions []string // candidate tags, first non-empty wins
	images       []imageResolver
}

var (
	rssStrategy = strategy{
		name:         "rss",
		entryTag:     "item",
		link:         rssLink,
		descriptions: []string{"content:encoded", "description", "excerpt:encoded"},
		images: []imageResolver{
			mediaContent,
			inlineImage("content:encoded", "description"),
			enclosureImage,
		},
	}

	// flexibleRSSStrategy is used for atom-or-rss sources that turn out to
	// publish RSS; they often carry media:thumbnail as well.
	flexibleRSSStrategy = strategy{
		name:         "rss",
		entryTag:     "item",
		link:         rssLink,
		descriptions: []string{"content:encoded", "description", "excerpt:encoded"},
		images: []imageResolver{
			mediaContent,
			mediaThumbnail,
			inlineImage("content:encoded", "description"),
			enclosureImage,
		},
	}

	atomStrategy = strategy{
		name:         "atom",
		entryTag:     "entry",
		link:         atomLink,
		descriptions: []string{"content", "summary"},
		images: []imageResolver{
			mediaContent,
			mediaThumbnail,
			inlineImage("content", "summary"),
			enclosureImage,
		},
	}
)

// strategiesFor lists the strategies to probe, in order.
func strategiesFor(d Dialect) []strategy {
	if d == DialectAtomOrRSS {
		return []strategy{atomStrategy, flexibleRSSStrategy}
	}
	return []strategy{rssStrategy}
}

func (s strategy) article(block string, src Source) (news.Article, bool) {
	a := news.Article{
		Title:      elementText(block, "title"),
		URL:        s.link(block),
		SourceName: src.Name,
	}
	if a.Title == "" || a.URL == "" {
		return news.Article{}, false
	}

	text := ""
	for _, tag := range s.descriptions {
		if text = elementText(block, tag); text != "" {
			break
		}
	}
	a.Description = sanitizeDescription(text)

	for _, resolve := range s.images {
		if img := resolve(block); img != "" {
			a.ImageURL = img
			break
		}
	}
	return a, true
}

func rssLink(block string) string {
	if link := cleanText(innerText(block, "link")); link != "" {
		return link
	}
	// permalink guids stand in for a missing <link>
	for _, attrs := range openTags(block, "guid") {
		if attrs["ispermalink"] == "false" {
			return ""
		}
	}
	guid := cleanText(innerText(block, "guid"))
	if strings.HasPrefix(guid, "http://") || strings.HasPrefix(guid, "https://") {
		return guid
	}
	return ""
}

// atomLink prefers rel="alternate" (or no rel), then any other href that is
// not an enclosure or self link.
func atomLink(block string) string {
	var fallback string
	for _, attrs := range openTags(block, "link") {
		href := attrs["href"]
		if href == "" {
			continue
		}
		switch attrs["rel"] {
		case "", "alternate":
			return href
		case "enclosure", "self":
		default:
			if fallback == "" {
				fallback = href
			}
		}
	}
	if fallback != "" {
		return fallback
	}
	// some feeds mix <entry> with RSS-style <link>text</link>
	return cleanText(innerText(block, "link"))
}

func mediaContent(block string) string {
	for _, attrs := range openTags(block, "media:content") {
		if attrs["url"] == "" {
			continue
		}
		if t := attrs["type"]; t != "" && !strings.HasPrefix(t, "image/") {
			continue
		}
		if m := attrs["medium"]; m != "" && m != "image" {
			continue
		}
		return attrs["url"]
	}
	return ""
}

func mediaThumbnail(block string) string {
	for _, attrs := range openTags(block, "media:thumbnail") {
		if attrs["url"] != "" {
			return attrs["url"]
		}
	}
	return ""
}

func inlineImage(tags ...string) imageResolver {
	return func(block string) string {
		for _, tag := range tags {
			if src := firstImgSrc(innerText(block, tag)); src != "" {
				return src
			}
		}
		return ""
	}
}

// enclosureImage covers RSS <enclosure> and Atom <link rel="enclosure">.
func enclosureImage(block string) string {
	for _, attrs := range openTags(block, "enclosure") {
		if strings.HasPrefix(attrs["type"], "image/") && attrs["url"] != "" {
			return attrs["url"]
		}
	}
	for _, attrs := range openTags(block, "link") {
		if attrs["rel"] == "enclosure" && strings.HasPrefix(attrs["type"], "image/") && attrs["href"] != "" {
			return attrs["href"]
		}
	}
	return ""
}
