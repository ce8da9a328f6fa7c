package places

import (
	"reflect"
	"testing"

	"github.com/pg56714/line-dine-mapper/internal/restaurant"
)

func names(list []restaurant.Restaurant) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.Name
	}
	return out
}

func TestRankOrdersByReviewCountThenRating(t *testing.T) {
	list := []restaurant.Restaurant{
		{Name: "few-reviews", Rating: 4.9, RatingCount: 10},
		{Name: "popular-low", Rating: 3.2, RatingCount: 900},
		{Name: "popular-high", Rating: 4.5, RatingCount: 900},
		{Name: "mid", Rating: 4.0, RatingCount: 120},
	}
	Rank(list)

	want := []string{"popular-high", "popular-low", "mid", "few-reviews"}
	if got := names(list); !reflect.DeepEqual(got, want) {
		t.Fatalf("ranked order = %v, want %v", got, want)
	}
}

func TestRankMissingValuesSortLast(t *testing.T) {
	list := []restaurant.Restaurant{
		{Name: "unrated"},
		{Name: "rated", Rating: 1.0, RatingCount: 1},
		{Name: "rating-only", Rating: 5.0},
	}
	Rank(list)

	want := []string{"rated", "rating-only", "unrated"}
	if got := names(list); !reflect.DeepEqual(got, want) {
		t.Fatalf("ranked order = %v, want %v", got, want)
	}
}

func TestRankIdempotent(t *testing.T) {
	list := []restaurant.Restaurant{
		{Name: "a", Rating: 4.5, RatingCount: 500},
		{Name: "b", Rating: 4.5, RatingCount: 500},
		{Name: "c", Rating: 4.0, RatingCount: 500},
		{Name: "d", Rating: 5.0, RatingCount: 10},
	}
	Rank(list)
	first := names(list)
	Rank(list)
	if got := names(list); !reflect.DeepEqual(got, first) {
		t.Fatalf("ranking not idempotent: %v then %v", first, got)
	}
	// Stable sort keeps equal elements in insertion order.
	if first[0] != "a" || first[1] != "b" {
		t.Fatalf("equal elements reordered: %v", first)
	}
}
