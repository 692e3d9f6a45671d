package news

// Balanced is the outcome of blending per-source lists under a plan.
type Balanced struct {
	Articles  []Article
	Taken     map[string]int
	Shortfall int // quota left uncovered after surplus redistribution
}

// Balance blends per-source lists into one list.
//
// Each planned source first contributes min(quota, available) articles in its
// own order. Missing articles are then drawn from the surplus of sources in
// backfill priority order, earlier sources always preferred. The result is the
// concatenation of every source's share in plan order, so it depends only on
// the list contents keyed by source name, never on how they were produced.
func Balance(lists map[string][]Article, plan Plan) Balanced {
	taken := make(map[string]int, len(plan.Quotas))
	sum := 0
	for _, q := range plan.Quotas {
		n := max(0, min(q.Target, len(lists[q.Source])))
		taken[q.Source] = n
		sum += n
	}

	shortfall := plan.Total() - sum
	for _, src := range plan.BackfillOrder() {
		if shortfall <= 0 {
			break
		}
		n, planned := taken[src]
		if !planned {
			continue
		}
		extra := min(shortfall, len(lists[src])-n)
		if extra > 0 {
			taken[src] = n + extra
			shortfall -= extra
		}
	}

	out := make([]Article, 0, plan.Total())
	for _, q := range plan.Quotas {
		out = append(out, lists[q.Source][:taken[q.Source]]...)
	}
	return Balanced{Articles: out, Taken: taken, Shortfall: max(0, shortfall)}
}

// Merge is Balance without the bookkeeping.
func Merge(lists map[string][]Article, plan Plan) []Article {
	return Balance(lists, plan).Articles
}

// Backfill tops up filtered lists from the unfiltered originals until their
// combined size reaches ceiling. Sources are drained in the given priority
// order; articles already present (by URL) or rejected by eligible are skipped.
// It returns the new lists and how many articles were added.
func Backfill(filtered, all map[string][]Article, order []string, ceiling int, eligible func(Article) bool) (map[string][]Article, int) {
	out := make(map[string][]Article, len(filtered))
	total := 0
	for src, list := range filtered {
		out[src] = append([]Article(nil), list...)
		total += len(list)
	}

	added := 0
	for _, src := range order {
		if total >= ceiling {
			break
		}
		have := make(map[string]struct{}, len(out[src]))
		for _, a := range out[src] {
			have[a.URL] = struct{}{}
		}
		for _, a := range all[src] {
			if total >= ceiling {
				break
			}
			if _, dup := have[a.URL]; dup {
				continue
			}
			if eligible != nil && !eligible(a) {
				continue
			}
			out[src] = append(out[src], a)
			have[a.URL] = struct{}{}
			total++
			added++
		}
	}
	return out, added
}

// Count sums the lengths of all lists.
func Count(lists map[string][]Article) int {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	return n
}
