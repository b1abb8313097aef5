package models

import "slices"

// BookmarkSet is an ordered, duplicate-free set of issue IDs.
// It is independent of any search result set.
type BookmarkSet []int64

// NewBookmarkSet builds a set from ids, dropping duplicates while keeping first-seen order.
func NewBookmarkSet(ids []int64) BookmarkSet {
	out := make(BookmarkSet, 0, len(ids))
	for _, id := range ids {
		if !out.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

// Contains reports whether id is bookmarked.
func (b BookmarkSet) Contains(id int64) bool {
	return slices.Contains(b, id)
}

// Toggle returns a new set with id removed if present, appended otherwise.
// The receiver is left unchanged.
func (b BookmarkSet) Toggle(id int64) BookmarkSet {
	if b.Contains(id) {
		out := make(BookmarkSet, 0, len(b))
		for _, v := range b {
			if v != id {
				out = append(out, v)
			}
		}
		return out
	}
	out := make(BookmarkSet, len(b), len(b)+1)
	copy(out, b)
	return append(out, id)
}
