package usecase

import (
	"reflect"
	"testing"

	"filmorate/internal/data/entity"
)

func int64Ptr(v int64) *int64 { return &v }

func TestRankPopular(t *testing.T) {
	// already ordered by likes DESC, id ASC
	ranking := []entity.FilmRank{
		{FilmID: 4, Likes: 3, ReleaseYear: 2001, GenreIDs: []int64{2}},
		{FilmID: 1, Likes: 2, ReleaseYear: 1999, GenreIDs: []int64{1, 2}},
		{FilmID: 2, Likes: 2, ReleaseYear: 2001, GenreIDs: []int64{1}},
		{FilmID: 3, Likes: 0, ReleaseYear: 2001, GenreIDs: []int64{1}},
		{FilmID: 5, Likes: 0, ReleaseYear: 1999, GenreIDs: nil},
	}

	tests := []struct {
		name  string
		query PopularQuery
		want  []int64
	}{
		{name: "global with backfill", query: PopularQuery{Count: 10}, want: []int64{4, 1, 2, 3, 5}},
		{name: "count caps result", query: PopularQuery{Count: 2}, want: []int64{4, 1}},
		{name: "genre filter keeps global order", query: PopularQuery{Count: 10, GenreID: int64Ptr(1)}, want: []int64{1, 2}},
		{name: "year filter", query: PopularQuery{Count: 10, Year: int64Ptr(2001)}, want: []int64{4, 2}},
		{name: "genre and year", query: PopularQuery{Count: 10, GenreID: int64Ptr(2), Year: int64Ptr(1999)}, want: []int64{1}},
		{name: "filter without liked match", query: PopularQuery{Count: 10, GenreID: int64Ptr(6)}, want: []int64{}},
		{name: "filter never backfills", query: PopularQuery{Count: 10, Year: int64Ptr(1999)}, want: []int64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rankPopular(ranking, tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("rankPopular() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankPopularNonIncreasing(t *testing.T) {
	ranking := []entity.FilmRank{
		{FilmID: 1, Likes: 5}, {FilmID: 2, Likes: 5}, {FilmID: 3, Likes: 1}, {FilmID: 4, Likes: 0},
	}
	likes := map[int64]int64{1: 5, 2: 5, 3: 1, 4: 0}

	for count := 1; count <= 5; count++ {
		got := rankPopular(ranking, PopularQuery{Count: count})
		if len(got) > count {
			t.Fatalf("count %d: got %d items", count, len(got))
		}
		for i := 1; i < len(got); i++ {
			if likes[got[i]] > likes[got[i-1]] {
				t.Errorf("count %d: %v not ordered by likes", count, got)
			}
		}
	}
}

func TestPickPeer(t *testing.T) {
	tests := []struct {
		name     string
		user     int64
		overlaps []entity.Overlap
		wantPeer int64
		wantOK   bool
	}{
		{name: "no overlaps", user: 1, overlaps: nil, wantOK: false},
		{
			name:     "highest shared wins",
			user:     1,
			overlaps: []entity.Overlap{{UserID: 3, Shared: 1}, {UserID: 2, Shared: 2}},
			wantPeer: 2,
			wantOK:   true,
		},
		{
			name:     "tie goes to lowest id",
			user:     1,
			overlaps: []entity.Overlap{{UserID: 9, Shared: 2}, {UserID: 4, Shared: 2}},
			wantPeer: 4,
			wantOK:   true,
		},
		{
			name:     "self is never a peer",
			user:     1,
			overlaps: []entity.Overlap{{UserID: 1, Shared: 7}},
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			peer, ok := pickPeer(tt.user, tt.overlaps)
			if ok != tt.wantOK || (ok && peer != tt.wantPeer) {
				t.Errorf("pickPeer() = %d, %v; want %d, %v", peer, ok, tt.wantPeer, tt.wantOK)
			}
		})
	}
}
