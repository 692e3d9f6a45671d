package news

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVocabularyMatch(t *testing.T) {
	v := NewVocabulary("test", "ai", "sport", "machine learning", " ", "AI")

	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "short token whole word", text: "The AI boom", want: true},
		{name: "short token inside word", text: "He said so", want: false},
		{name: "short token before hyphen", text: "AI-powered tools", want: true},
		{name: "long token prefix", text: "Sports roundup", want: true},
		{name: "long token mid-word", text: "Public transport strike", want: false},
		{name: "phrase", text: "Advances in Machine Learning", want: true},
		{name: "empty", text: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, v.Match(tt.text))
		})
	}

	require.Equal(t, 3, v.Len())
	require.Equal(t, "test", v.Name())
}

func TestVocabularyKeywordsCopy(t *testing.T) {
	v := NewVocabulary("copy", "war")
	kw := v.Keywords()
	kw[0] = "peace"
	require.True(t, v.Match("war"))
}

func TestNilVocabulary(t *testing.T) {
	var v *Vocabulary
	require.False(t, v.Match("anything"))
}

func TestArticleHelpers(t *testing.T) {
	a := Article{Title: "Title", URL: "https://x", SourceName: "The Verge"}
	require.True(t, a.Valid())
	require.Equal(t, "Title - The Verge", a.DisplayTitle())
	require.False(t, Article{Title: "x"}.Valid())

	require.Equal(t, "https://via.placeholder.com/300x200?text=The+Verge", PlaceholderImage("The Verge"))
	require.Equal(t, "https://via.placeholder.com/300x200?text=News", PlaceholderImage(""))

	empty := Empty()
	require.Zero(t, empty.TotalCount)
	require.NotNil(t, empty.Articles)
}
