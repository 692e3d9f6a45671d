package rss

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gulcinmobile/newsengine/internal/diag"
	"github.com/gulcinmobile/newsengine/internal/news"
	"github.com/stretchr/testify/require"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:media="http://search.yahoo.com/mrss/">
<channel>
  <title>TechCrunch</title>
  <link>https://techcrunch.com</link>
  <item>
    <title><![CDATA[Startup raises <b>$10M</b>]]></title>
    <link>https://techcrunch.com/1</link>
    <description><![CDATA[<p>Short teaser</p>]]></description>
    <content:encoded><![CDATA[<p><img src="https://tc.example.com/1.jpg"/>Long body text</p>]]></content:encoded>
  </item>
  <item>
    <title>Second</title>
    <description>Plain &amp; simple</description>
    <link>https://techcrunch.com/2</link>
    <media:content medium="image" url="https://tc.example.com/2.jpg"/>
  </item>
  <item>
    <title>Third</title>
    <link>https://techcrunch.com/3</link>
    <enclosure length="100" type="image/jpeg" url="https://tc.example.com/3.jpg"/>
  </item>
  <item>
    <title>No link here</title>
    <description>dropped</description>
  </item>
  <item>
    <title>Startup raises $10M (again)</title>
    <link>https://techcrunch.com/1</link>
  </item>
</channel>
</rss>`

const atomFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:media="http://search.yahoo.com/mrss/">
  <title>The Verge</title>
  <link rel="self" href="https://www.theverge.com/rss/index.xml"/>
  <entry>
    <title type="html">Framework ships a new laptop</title>
    <link type="text/html" href="https://www.theverge.com/1" rel="alternate"/>
    <summary type="html">&lt;p&gt;A modular machine.&lt;/p&gt;</summary>
    <content type="html">&lt;figure&gt;&lt;img alt="x" src="https://cdn.example.com/1.jpg" /&gt;&lt;/figure&gt;&lt;p&gt;Full text&lt;/p&gt;</content>
  </entry>
  <entry>
    <title>Second &amp; final</title>
    <link href="https://www.theverge.com/2"/>
    <media:thumbnail url="https://cdn.example.com/2.jpg" width="300"/>
    <summary></summary>
  </entry>
  <entry>
    <title>Third</title>
    <link rel="enclosure" type="image/png" href="https://cdn.example.com/3.png"/>
    <link rel="alternate" href="https://www.theverge.com/3"/>
    <summary>Short summary</summary>
  </entry>
</feed>`

var (
	techCrunch = Source{Name: "TechCrunch", URL: "https://techcrunch.com/feed/", Dialect: DialectRSS}
	verge      = Source{Name: "The Verge", URL: "https://www.theverge.com/rss/index.xml", Dialect: DialectAtomOrRSS}
)

func TestParseRSS(t *testing.T) {
	got := NewParser(nil).Parse(rssFixture, techCrunch)

	require.Equal(t, []news.Article{
		{
			Title:       "Startup raises $10M",
			Description: "Long body text",
			URL:         "https://techcrunch.com/1",
			ImageURL:    "https://tc.example.com/1.jpg",
			SourceName:  "TechCrunch",
		},
		{
			Title:       "Second",
			Description: "Plain & simple",
			URL:         "https://techcrunch.com/2",
			ImageURL:    "https://tc.example.com/2.jpg",
			SourceName:  "TechCrunch",
		},
		{
			Title:       "Third",
			Description: news.NoDescription,
			URL:         "https://techcrunch.com/3",
			ImageURL:    "https://tc.example.com/3.jpg",
			SourceName:  "TechCrunch",
		},
	}, got)
}

func TestParseAtom(t *testing.T) {
	var rec diag.Recorder
	got := NewParser(&rec).Parse(atomFixture, verge)

	require.Len(t, got, 3)

	require.Equal(t, "Framework ships a new laptop", got[0].Title)
	require.Equal(t, "https://www.theverge.com/1", got[0].URL)
	require.Equal(t, "Full text", got[0].Description)
	require.Equal(t, "https://cdn.example.com/1.jpg", got[0].ImageURL)

	require.Equal(t, "Second & final", got[1].Title)
	require.Equal(t, news.NoDescription, got[1].Description)
	require.Equal(t, "https://cdn.example.com/2.jpg", got[1].ImageURL)

	require.Equal(t, "https://www.theverge.com/3", got[2].URL)
	require.Equal(t, "Short summary", got[2].Description)
	require.Equal(t, "https://cdn.example.com/3.png", got[2].ImageURL)

	events := rec.Events()
	require.Len(t, events, 1)
	require.Equal(t, diag.KindParseComplete, events[0].Kind)
	require.Equal(t, 3, events[0].Count)
	require.Equal(t, "atom", events[0].Msg)
}

func TestParseDialectDecidesThumbnailSupport(t *testing.T) {
	body := `<rss><channel><item>
		<title>Thumb only</title>
		<link>https://example.com/a</link>
		<media:thumbnail url="https://example.com/a.jpg"/>
	</item></channel></rss>`

	strict := NewParser(nil).Parse(body, Source{Name: "A", Dialect: DialectRSS})
	require.Len(t, strict, 1)
	require.Empty(t, strict[0].ImageURL)

	flexible := NewParser(nil).Parse(body, Source{Name: "A", Dialect: DialectAtomOrRSS})
	require.Len(t, flexible, 1)
	require.Equal(t, "https://example.com/a.jpg", flexible[0].ImageURL)
}

func TestParseAtomOrRSSFallsBackToItems(t *testing.T) {
	got := NewParser(nil).Parse(rssFixture, verge)
	require.Len(t, got, 3)
	require.Equal(t, "The Verge", got[0].SourceName)
}

func TestParseDescriptionBounds(t *testing.T) {
	long := strings.Repeat("word ", 60)
	wide := strings.Repeat("ğ", 200)
	body := `<rss><channel>
		<item><title>Long</title><link>https://example.com/1</link><description>` + long + `</description></item>
		<item><title>Wide</title><link>https://example.com/2</link><description>` + wide + `</description></item>
		<item><title>Tags only</title><link>https://example.com/3</link><description><![CDATA[<p> </p>]]></description></item>
		<item><title>Entities</title><link>https://example.com/4</link><description>Tom &quot;T&quot; &apos;s &#39;x&#39; 5 &lt; 6 &amp;&amp; 7 &gt; 2&nbsp;done</description></item>
	</channel></rss>`

	got := NewParser(nil).Parse(body, techCrunch)
	require.Len(t, got, 4)

	for _, a := range got {
		require.LessOrEqual(t, utf8.RuneCountInString(a.Description), 150, a.Title)
	}
	require.True(t, strings.HasSuffix(got[0].Description, "..."))
	require.Equal(t, 150, utf8.RuneCountInString(got[1].Description))
	require.Equal(t, news.NoDescription, got[2].Description)
	require.Equal(t, `Tom "T" 's 'x' 5 < 6 && 7 > 2 done`, got[3].Description)
}

func TestParseKeepsDecodedAngleBrackets(t *testing.T) {
	body := `<rss><channel><item>
		<title>if a&lt;b and c&gt;d</title>
		<link>https://example.com/1</link>
		<description>Compare a&lt;b and c&gt;d in code</description>
	</item></channel></rss>`

	got := NewParser(nil).Parse(body, techCrunch)
	require.Len(t, got, 1)
	require.Equal(t, "if a<b and c>d", got[0].Title)
	require.Equal(t, "Compare a<b and c>d in code", got[0].Description)

	atom := `<feed xmlns="http://www.w3.org/2005/Atom"><entry>
		<title type="html">if a &amp;lt; b</title>
		<link href="https://example.com/2"/>
		<content type="html">&lt;p&gt;Compare a &amp;lt; b &lt;b&gt;now&lt;/b&gt;&lt;/p&gt;</content>
	</entry></feed>`

	got = NewParser(nil).Parse(atom, verge)
	require.Len(t, got, 1)
	require.Equal(t, "if a < b", got[0].Title)
	require.Equal(t, "Compare a < b now", got[0].Description)
}

func TestParseCDATAUnwrapMatchesPlainText(t *testing.T) {
	tests := []struct {
		name    string
		wrapped string
		plain   string
		want    string
	}{
		{
			name:    "headline",
			wrapped: "<![CDATA[Breaking: Market Rally]]>",
			plain:   "Breaking: Market Rally",
			want:    "Breaking: Market Rally",
		},
		{
			name:    "ampersand",
			wrapped: "<![CDATA[Fish & Chips today]]>",
			plain:   "Fish &amp; Chips today",
			want:    "Fish & Chips today",
		},
		{
			name:    "padded",
			wrapped: "  <![CDATA[  Rates hold   steady ]]>  ",
			plain:   "Rates hold steady",
			want:    "Rates hold steady",
		},
	}
	item := func(text string) string {
		return `<rss><channel><item><title>` + text + `</title>` +
			`<link>https://example.com/1</link>` +
			`<description>` + text + `</description></item></channel></rss>`
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := NewParser(nil).Parse(item(tt.wrapped), techCrunch)
			plain := NewParser(nil).Parse(item(tt.plain), techCrunch)
			require.Len(t, wrapped, 1)
			require.Equal(t, plain, wrapped)
			require.Equal(t, tt.want, wrapped[0].Title)
			require.Equal(t, tt.want, wrapped[0].Description)
			require.NotContains(t, wrapped[0].Title, "CDATA")
		})
	}
}

func TestParseMalformedYieldsEmpty(t *testing.T) {
	tests := []struct {
		name string
		body string
		src  Source
	}{
		{name: "empty body", body: "", src: verge},
		{name: "html page", body: "<html><body><p>Not a feed</p></body></html>", src: techCrunch},
		{name: "mixed tags", body: "<feed><item><title>No link</title></item><entry><title>unterminated", src: verge},
		{name: "garbage", body: "\x00\x01 not xml {", src: techCrunch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewParser(nil).Parse(tt.body, tt.src)
			require.NotNil(t, got)
			require.Empty(t, got)
		})
	}
}

func TestParseStrictFallbackJSONFeed(t *testing.T) {
	body := `{
		"version": "https://jsonfeed.org/version/1.1",
		"title": "Example",
		"items": [
			{"id": "1", "url": "https://example.com/json/1", "title": "From JSON", "content_html": "<p>Body <img src=\"https://example.com/j.jpg\"></p>"},
			{"id": "2", "title": "No url"}
		]
	}`

	var rec diag.Recorder
	got := NewParser(&rec).Parse(body, techCrunch)

	require.Len(t, got, 1)
	require.Equal(t, "From JSON", got[0].Title)
	require.Equal(t, "Body", got[0].Description)
	require.Equal(t, "https://example.com/j.jpg", got[0].ImageURL)
	require.Equal(t, []diag.Kind{diag.KindParseStrict}, rec.Kinds())
}

func TestInnerTextSkipsSelfClosingAndPrefixedTags(t *testing.T) {
	block := `<linkage>x</linkage><link href="https://a"/><link>https://b</link>`
	require.Equal(t, "https://b", innerText(block, "link"))
	require.Equal(t, "", innerText("<title>open", "title"))
}

func TestRSSLinkFromPermalinkGUID(t *testing.T) {
	require.Equal(t, "https://example.com/g", rssLink(`<guid isPermaLink="true">https://example.com/g</guid>`))
	require.Equal(t, "", rssLink(`<guid isPermaLink="false">https://example.com/g</guid>`))
	require.Equal(t, "", rssLink(`<guid>tag:example.com,2024:1</guid>`))
}
