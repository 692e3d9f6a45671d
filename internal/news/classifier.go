package news

// Classifier tags articles with topical categories using keyword vocabularies.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	topics   map[Category]*Vocabulary
	natural  *Vocabulary
	conflict *Vocabulary
	world    *Vocabulary
}

// NewClassifier builds a classifier from the built-in vocabularies.
func NewClassifier() *Classifier {
	return &Classifier{
		topics: map[Category]*Vocabulary{
			AI:            NewVocabulary("ai", aiKeywords...),
			Tech:          NewVocabulary("tech", techKeywords...),
			Sports:        NewVocabulary("sports", sportsKeywords...),
			Business:      NewVocabulary("business", businessKeywords...),
			Art:           NewVocabulary("art", artKeywords...),
			Entertainment: NewVocabulary("entertainment", entertainmentKeywords...),
		},
		natural:  NewVocabulary("natural-disaster", naturalDisasterKeywords...),
		conflict: NewVocabulary("conflict", conflictKeywords...),
		world:    NewVocabulary("world", worldKeywords...),
	}
}

// excludedFromGeneral are the explicit categories that keep an article out of
// the general section, in the order they are checked.
var excludedFromGeneral = []Category{Tech, Sports, Business, Art, Entertainment, AI}

// Matches reports whether the article belongs to the category's vocabulary.
// General is special: it needs a disaster, war or world match and no match
// against any other explicit category.
func (c *Classifier) Matches(cat Category, a Article) bool {
	if cat == General {
		return !c.Excluded(a) && (c.IsDisaster(a) || c.IsWorld(a))
	}
	v, ok := c.topics[cat]
	if !ok {
		return false
	}
	return v.MatchArticle(a)
}

// Excluded reports whether the article matches any category that competes
// with general news. Exclusion wins over any general match.
func (c *Classifier) Excluded(a Article) bool {
	text := a.Text()
	for _, cat := range excludedFromGeneral {
		if c.topics[cat].Match(text) {
			return true
		}
	}
	return false
}

// IsDisaster matches either tier of the disaster/war vocabulary.
func (c *Classifier) IsDisaster(a Article) bool {
	text := a.Text()
	return c.natural.Match(text) || c.conflict.Match(text)
}

// IsWorld matches the broader international affairs vocabulary.
func (c *Classifier) IsWorld(a Article) bool {
	return c.world.MatchArticle(a)
}

// Categorize lists every category the article matches, in menu order.
func (c *Classifier) Categorize(a Article) []Category {
	var out []Category
	for _, cat := range Categories() {
		if c.Matches(cat, a) {
			out = append(out, cat)
		}
	}
	return out
}

// FilterAI keeps, per source, the articles matching the AI vocabulary.
func (c *Classifier) FilterAI(lists map[string][]Article) map[string][]Article {
	out := make(map[string][]Article, len(lists))
	ai := c.topics[AI]
	for src, articles := range lists {
		kept := make([]Article, 0, len(articles))
		for _, a := range articles {
			if ai.MatchArticle(a) {
				kept = append(kept, a)
			}
		}
		out[src] = kept
	}
	return out
}

// FilterGeneral selects world news per source. Disaster and war matches come
// first; when a source has fewer of those than its quota the remainder is
// filled from the broader world-news matches of the same source. Articles
// matching another explicit category never pass.
func (c *Classifier) FilterGeneral(lists map[string][]Article, plan Plan) map[string][]Article {
	out := make(map[string][]Article, len(lists))
	for src, articles := range lists {
		var disaster, world []Article
		for _, a := range articles {
			if c.Excluded(a) {
				continue
			}
			switch {
			case c.IsDisaster(a):
				disaster = append(disaster, a)
			case c.IsWorld(a):
				world = append(world, a)
			}
		}

		kept := make([]Article, 0, len(disaster)+len(world))
		kept = append(kept, disaster...)
		if missing := plan.Target(src) - len(disaster); missing > 0 {
			kept = append(kept, world[:min(missing, len(world))]...)
		}
		out[src] = kept
	}
	return out
}

// Eligible reports whether an unmatched article may still be used to backfill
// the category.
func (c *Classifier) Eligible(cat Category) func(Article) bool {
	if cat == General {
		return func(a Article) bool { return !c.Excluded(a) }
	}
	return func(Article) bool { return true }
}
