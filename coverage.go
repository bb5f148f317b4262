package alphamap

import "github.com/RoaringBitmap/roaring/v2"

// Coverage returns the set of code points covered by at least one range
// as a Roaring bitmap, built on demand. The bitmap carries membership
// only: index assignment always follows the ordered range walk, so
// overlapping ranges collapse to single members here while still
// occupying their full index spans in the map.
func (m *Map) Coverage() *roaring.Bitmap {
	b := roaring.New()
	for _, r := range m.ranges {
		if r.End < r.Begin {
			continue
		}
		b.AddRange(uint64(r.Begin), uint64(r.End)+1)
	}
	return b
}
