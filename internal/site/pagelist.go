package site

import (
	"iter"
	"sort"
)

// PageList is an ordered collection of summaries.
type PageList []Page

// OfType yields the summaries whose Type equals typ. Every call returns a
// fresh sequence, so templates may range over it repeatedly.
func (l PageList) OfType(typ string) iter.Seq[Page] {
	return func(yield func(Page) bool) {
		for _, p := range l {
			if p.Type == typ && !yield(p) {
				return
			}
		}
	}
}

// Len returns the number of summaries.
func (l PageList) Len() int { return len(l) }

// First returns at most n leading summaries.
func (l PageList) First(n int) PageList {
	if n < 0 {
		n = 0
	}
	if n > len(l) {
		n = len(l)
	}
	return l[:n]
}

// ByLink returns the summary with the given link.
func (l PageList) ByLink(link string) (Page, bool) {
	for _, p := range l {
		if p.Link == link {
			return p, true
		}
	}
	return Page{}, false
}

// SortPosts orders posts newest first; same-date posts with a higher Order
// come first and full ties keep their discovery order.
func SortPosts(posts []Page) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.Order > b.Order
	})
}
