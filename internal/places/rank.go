package places

import (
	"sort"

	"github.com/pg56714/line-dine-mapper/internal/restaurant"
)

// Rank sorts results in place: descending review count, ties broken by
// descending rating. Missing ratings and counts are zero values and sort
// last. The sort is stable, so ranking an already-ranked list is a no-op.
func Rank(list []restaurant.Restaurant) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].RatingCount != list[j].RatingCount {
			return list[i].RatingCount > list[j].RatingCount
		}
		return list[i].Rating > list[j].Rating
	})
}
