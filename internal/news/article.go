package news

import "strings"

// NoDescription replaces descriptions that are empty after sanitizing.
const NoDescription = "No description available for this article."

// placeholderBase renders a neutral image tagged with the source name.
const placeholderBase = "https://via.placeholder.com/300x200?text="

// Article is a single normalized news record produced by a feed or the search API.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ImageURL    string `json:"image,omitempty"`
	SourceName  string `json:"source"`
}

// Valid reports whether the article carries the fields required for display.
func (a Article) Valid() bool {
	return strings.TrimSpace(a.Title) != "" && strings.TrimSpace(a.URL) != ""
}

// Text is the lower-cased title+description used for keyword matching.
func (a Article) Text() string {
	return strings.ToLower(a.Title + " " + a.Description)
}

// DisplayTitle appends the source name the way list screens show it.
func (a Article) DisplayTitle() string {
	if a.SourceName == "" {
		return a.Title
	}
	return a.Title + " - " + a.SourceName
}

// ArticleList is the uniform result returned to callers.
type ArticleList struct {
	TotalCount int       `json:"totalArticles"`
	Articles   []Article `json:"articles"`
}

// NewArticleList wraps articles, never returning a nil slice.
func NewArticleList(articles []Article) ArticleList {
	if articles == nil {
		articles = []Article{}
	}
	return ArticleList{TotalCount: len(articles), Articles: articles}
}

// Empty is the zero-count result used on total failure.
func Empty() ArticleList {
	return NewArticleList(nil)
}

// PlaceholderImage returns a deterministic placeholder image URL for a source.
func PlaceholderImage(sourceName string) string {
	name := strings.TrimSpace(sourceName)
	if name == "" {
		name = "News"
	}
	return placeholderBase + strings.ReplaceAll(name, " ", "+")
}
