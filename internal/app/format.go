package app

import (
	"fmt"
	"strings"

	"github.com/gulcinmobile/newsengine/internal/news"
)

const maxPreviewLen = 200

// FormatText renders a list for terminal output, numbered like the list
// screen. max <= 0 prints every article.
func FormatText(cat news.Category, list news.ArticleList, max int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s news (%d)\n", strings.ToUpper(string(cat)), list.TotalCount))
	b.WriteString(strings.Repeat("━", 40) + "\n\n")

	if len(list.Articles) == 0 {
		b.WriteString("No articles available.\n")
		return b.String()
	}

	for i, a := range list.Articles {
		if max > 0 && i >= max {
			break
		}
		b.WriteString(formatSingleNews(a, i+1))
	}
	return b.String()
}

func formatSingleNews(a news.Article, number int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%d. %s\n", number, a.DisplayTitle()))
	if a.Description != "" && a.Description != news.NoDescription {
		b.WriteString("   " + preview(a.Description) + "\n")
	}
	b.WriteString("   " + a.URL + "\n\n")

	return b.String()
}

// preview cuts at the last full sentence within maxPreviewLen.
func preview(s string) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= maxPreviewLen {
		return s
	}
	cut := string(r[:maxPreviewLen])
	if i := strings.LastIndex(cut, ". "); i > 0 {
		return cut[:i+1]
	}
	return cut + "..."
}
