package engine

import (
	"cmp"
	"fmt"
	"sort"
	"strings"

	"github.com/piwi3910/SpritePack/internal/model"
)

// Sort returns entries ordered by method. The input slice is never modified.
// SortCustom returns the entries in their given order. Sort panics on a
// method outside the SortMethod enum; callers holding user input should
// check it with SortMethod.Valid or AtlasConfig.Validate first.
func Sort(entries []model.ImageEntry, method model.SortMethod) []model.ImageEntry {
	out := make([]model.ImageEntry, len(entries))
	copy(out, entries)

	if method == model.SortCustom {
		return out
	}

	compare := comparator(method)
	sort.SliceStable(out, func(i, j int) bool {
		return compare(out[i], out[j]) < 0
	})
	return out
}

// comparator composes the primary key, the name tie-break and the direction.
func comparator(method model.SortMethod) func(a, b model.ImageEntry) int {
	var primary func(a, b model.ImageEntry) int
	switch method.Field() {
	case model.FieldName:
		primary = compareNames
	case model.FieldSize:
		primary = func(a, b model.ImageEntry) int { return cmp.Compare(a.ByteSize, b.ByteSize) }
	case model.FieldModified:
		primary = func(a, b model.ImageEntry) int { return a.ModifiedAt.Compare(b.ModifiedAt) }
	default:
		panic(fmt.Sprintf("engine: no comparator for sort method %v", method))
	}

	composed := primary
	if method.Field() != model.FieldName {
		composed = func(a, b model.ImageEntry) int {
			if c := primary(a, b); c != 0 {
				return c
			}
			return compareNames(a, b)
		}
	}

	if method.Descending() {
		return func(a, b model.ImageEntry) int { return -composed(a, b) }
	}
	return composed
}

// compareNames orders display names by Unicode code point. Byte order of
// UTF-8 matches code point order, and a proper prefix sorts first.
func compareNames(a, b model.ImageEntry) int {
	return strings.Compare(a.Name, b.Name)
}
