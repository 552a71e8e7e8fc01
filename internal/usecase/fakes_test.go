package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/pkg/cache"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

// memStore is an in-memory stand-in for the Postgres schema shared by the
// fake repositories below.
type memStore struct {
	users     map[int64]*entity.User
	films     map[int64]*entity.Film
	genres    map[int64]*entity.Genre
	mpa       map[int64]*entity.MPA
	directors map[int64]*entity.Director
	likes     map[int64]map[int64]bool // film -> users
	friends   map[int64]map[int64]bool // user -> friends
	reviews   map[int64]*entity.Review
	feed      []*entity.FeedEvent

	nextID  int64
	feedErr error
}

func newMemStore() *memStore {
	s := &memStore{
		users:     map[int64]*entity.User{},
		films:     map[int64]*entity.Film{},
		genres:    map[int64]*entity.Genre{},
		mpa:       map[int64]*entity.MPA{},
		directors: map[int64]*entity.Director{},
		likes:     map[int64]map[int64]bool{},
		friends:   map[int64]map[int64]bool{},
		reviews:   map[int64]*entity.Review{},
	}
	for id, name := range []string{"Comedy", "Drama", "Animation", "Thriller", "Documentary", "Action"} {
		s.genres[int64(id+1)] = &entity.Genre{ID: int64(id + 1), Name: name}
	}
	for id, name := range []string{"G", "PG", "PG-13", "R", "NC-17"} {
		s.mpa[int64(id+1)] = &entity.MPA{ID: int64(id + 1), Name: name}
	}
	return s
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) repo() *repository.Repository {
	return &repository.Repository{
		User:     &fakeUsers{s},
		Friend:   &fakeFriends{s},
		Film:     &fakeFilms{s},
		Genre:    &fakeGenres{s},
		MPA:      &fakeMPA{s},
		Director: &fakeDirectors{s},
		Like:     &fakeLikes{s},
		Review:   &fakeReviews{s},
		Feed:     &fakeFeed{s},
	}
}

// addUser and addFilm seed rows directly.
func (s *memStore) addUser(login string) int64 {
	id := s.id()
	s.users[id] = &entity.User{ID: id, Email: login + "@example.com", Login: login, Name: login}
	return id
}

func (s *memStore) addFilm(name string, year int, genreIDs ...int64) int64 {
	id := s.id()
	film := &entity.Film{
		ID:          id,
		Name:        name,
		ReleaseDate: time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC),
		Duration:    100,
		MPA:         *s.mpa[1],
		Genres:      []entity.Genre{},
		Directors:   []entity.Director{},
	}
	for _, g := range genreIDs {
		film.Genres = append(film.Genres, *s.genres[g])
	}
	s.films[id] = film
	return id
}

func (s *memStore) like(filmID int64, userIDs ...int64) {
	for _, u := range userIDs {
		if s.likes[filmID] == nil {
			s.likes[filmID] = map[int64]bool{}
		}
		s.likes[filmID][u] = true
	}
}

func (s *memStore) likeCount(filmID int64) int64 {
	return int64(len(s.likes[filmID]))
}

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func copyFilm(f *entity.Film) *entity.Film {
	c := *f
	c.Genres = append([]entity.Genre{}, f.Genres...)
	c.Directors = append([]entity.Director{}, f.Directors...)
	return &c
}

type fakeUsers struct{ s *memStore }

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	u.ID = f.s.id()
	c := *u
	f.s.users[u.ID] = &c
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := f.s.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) FindAll(_ context.Context) ([]*entity.User, error) {
	out := []*entity.User{}
	for _, id := range sortedIDs(f.s.users) {
		out = append(out, f.s.users[id])
	}
	return out, nil
}

func (f *fakeUsers) Update(_ context.Context, u *entity.User) error {
	if _, ok := f.s.users[u.ID]; !ok {
		return utils.NotFound("user %d", u.ID)
	}
	c := *u
	f.s.users[u.ID] = &c
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	if _, ok := f.s.users[id]; !ok {
		return utils.NotFound("user %d", id)
	}
	delete(f.s.users, id)
	delete(f.s.friends, id)
	for _, friends := range f.s.friends {
		delete(friends, id)
	}
	for _, users := range f.s.likes {
		delete(users, id)
	}
	return nil
}

func (f *fakeUsers) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.s.users[id]
	return ok, nil
}

type fakeFriends struct{ s *memStore }

func (f *fakeFriends) Add(_ context.Context, userID, friendID int64) error {
	if f.s.friends[userID] == nil {
		f.s.friends[userID] = map[int64]bool{}
	}
	f.s.friends[userID][friendID] = true
	return nil
}

func (f *fakeFriends) Remove(_ context.Context, userID, friendID int64) error {
	delete(f.s.friends[userID], friendID)
	return nil
}

func (f *fakeFriends) FindFriends(_ context.Context, userID int64) ([]*entity.User, error) {
	out := []*entity.User{}
	for _, id := range sortedIDs(f.s.friends[userID]) {
		out = append(out, f.s.users[id])
	}
	return out, nil
}

func (f *fakeFriends) FindCommon(_ context.Context, userID, otherID int64) ([]*entity.User, error) {
	out := []*entity.User{}
	for _, id := range sortedIDs(f.s.friends[userID]) {
		if f.s.friends[otherID][id] {
			out = append(out, f.s.users[id])
		}
	}
	return out, nil
}

type fakeFilms struct{ s *memStore }

func (f *fakeFilms) attach(film *entity.Film) {
	for i, g := range film.Genres {
		film.Genres[i] = *f.s.genres[g.ID]
	}
	for i, d := range film.Directors {
		film.Directors[i] = *f.s.directors[d.ID]
	}
	sort.Slice(film.Directors, func(i, j int) bool { return film.Directors[i].ID < film.Directors[j].ID })
}

func (f *fakeFilms) Create(_ context.Context, film *entity.Film) error {
	film.ID = f.s.id()
	c := copyFilm(film)
	f.attach(c)
	f.s.films[film.ID] = c
	return nil
}

func (f *fakeFilms) FindByID(_ context.Context, id int64) (*entity.Film, error) {
	film, ok := f.s.films[id]
	if !ok {
		return nil, nil
	}
	return copyFilm(film), nil
}

func (f *fakeFilms) FindAll(_ context.Context) ([]*entity.Film, error) {
	return f.FindByIDs(context.Background(), sortedIDs(f.s.films))
}

func (f *fakeFilms) FindByIDs(_ context.Context, ids []int64) ([]*entity.Film, error) {
	out := []*entity.Film{}
	for _, id := range ids {
		if film, ok := f.s.films[id]; ok {
			out = append(out, copyFilm(film))
		}
	}
	return out, nil
}

func (f *fakeFilms) Update(_ context.Context, film *entity.Film) error {
	if _, ok := f.s.films[film.ID]; !ok {
		return utils.NotFound("film %d", film.ID)
	}
	c := copyFilm(film)
	f.attach(c)
	f.s.films[film.ID] = c
	return nil
}

func (f *fakeFilms) Delete(_ context.Context, id int64) error {
	if _, ok := f.s.films[id]; !ok {
		return utils.NotFound("film %d", id)
	}
	delete(f.s.films, id)
	delete(f.s.likes, id)
	for rid, r := range f.s.reviews {
		if r.FilmID == id {
			delete(f.s.reviews, rid)
		}
	}
	return nil
}

func (f *fakeFilms) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.s.films[id]
	return ok, nil
}

func (f *fakeFilms) FindByDirector(_ context.Context, directorID int64, sortBy string) ([]*entity.Film, error) {
	out := []*entity.Film{}
	for _, id := range sortedIDs(f.s.films) {
		for _, d := range f.s.films[id].Directors {
			if d.ID == directorID {
				out = append(out, copyFilm(f.s.films[id]))
			}
		}
	}

	switch sortBy {
	case repository.SortByYear:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ReleaseDate.Year() < out[j].ReleaseDate.Year()
		})
	case repository.SortByLikes:
		sort.SliceStable(out, func(i, j int) bool {
			return f.s.likeCount(out[i].ID) > f.s.likeCount(out[j].ID)
		})
	default:
		return nil, utils.BadRequest("unsupported sortBy %q", sortBy)
	}
	return out, nil
}

func (f *fakeFilms) Search(_ context.Context, query string, byTitle, byDirector bool) ([]*entity.Film, error) {
	q := strings.ToLower(query)
	ids := sortedIDs(f.s.films)

	out := []*entity.Film{}
	for i := len(ids) - 1; i >= 0; i-- {
		film := f.s.films[ids[i]]
		match := byTitle && strings.Contains(strings.ToLower(film.Name), q)
		for _, d := range film.Directors {
			if byDirector && strings.Contains(strings.ToLower(d.Name), q) {
				match = true
			}
		}
		if match {
			out = append(out, copyFilm(film))
		}
	}
	return out, nil
}

type fakeGenres struct{ s *memStore }

func (f *fakeGenres) FindAll(_ context.Context) ([]*entity.Genre, error) {
	out := []*entity.Genre{}
	for _, id := range sortedIDs(f.s.genres) {
		out = append(out, f.s.genres[id])
	}
	return out, nil
}

func (f *fakeGenres) FindByID(_ context.Context, id int64) (*entity.Genre, error) {
	return f.s.genres[id], nil
}

func (f *fakeGenres) FindMissing(_ context.Context, ids []int64) ([]int64, error) {
	missing := []int64{}
	for _, id := range ids {
		if _, ok := f.s.genres[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

type fakeMPA struct{ s *memStore }

func (f *fakeMPA) FindAll(_ context.Context) ([]*entity.MPA, error) {
	out := []*entity.MPA{}
	for _, id := range sortedIDs(f.s.mpa) {
		out = append(out, f.s.mpa[id])
	}
	return out, nil
}

func (f *fakeMPA) FindByID(_ context.Context, id int64) (*entity.MPA, error) {
	return f.s.mpa[id], nil
}

type fakeDirectors struct{ s *memStore }

func (f *fakeDirectors) Create(_ context.Context, d *entity.Director) error {
	d.ID = f.s.id()
	c := *d
	f.s.directors[d.ID] = &c
	return nil
}

func (f *fakeDirectors) FindByID(_ context.Context, id int64) (*entity.Director, error) {
	d, ok := f.s.directors[id]
	if !ok {
		return nil, nil
	}
	c := *d
	return &c, nil
}

func (f *fakeDirectors) FindAll(_ context.Context) ([]*entity.Director, error) {
	out := []*entity.Director{}
	for _, id := range sortedIDs(f.s.directors) {
		out = append(out, f.s.directors[id])
	}
	return out, nil
}

func (f *fakeDirectors) Update(_ context.Context, d *entity.Director) error {
	if _, ok := f.s.directors[d.ID]; !ok {
		return utils.NotFound("director %d", d.ID)
	}
	c := *d
	f.s.directors[d.ID] = &c
	return nil
}

func (f *fakeDirectors) Delete(_ context.Context, id int64) error {
	if _, ok := f.s.directors[id]; !ok {
		return utils.NotFound("director %d", id)
	}
	for _, film := range f.s.films {
		kept := film.Directors[:0]
		for _, d := range film.Directors {
			if d.ID != id {
				kept = append(kept, d)
			}
		}
		film.Directors = kept
	}
	delete(f.s.directors, id)
	return nil
}

func (f *fakeDirectors) FindMissing(_ context.Context, ids []int64) ([]int64, error) {
	missing := []int64{}
	for _, id := range ids {
		if _, ok := f.s.directors[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

type fakeLikes struct{ s *memStore }

func (f *fakeLikes) Add(_ context.Context, filmID, userID int64) error {
	f.s.like(filmID, userID)
	return nil
}

func (f *fakeLikes) Remove(_ context.Context, filmID, userID int64) error {
	delete(f.s.likes[filmID], userID)
	return nil
}

func (f *fakeLikes) likedBy(userID int64) map[int64]bool {
	films := map[int64]bool{}
	for filmID, users := range f.s.likes {
		if users[userID] {
			films[filmID] = true
		}
	}
	return films
}

func (f *fakeLikes) Overlaps(_ context.Context, userID int64) ([]entity.Overlap, error) {
	shared := map[int64]int64{}
	for filmID := range f.likedBy(userID) {
		for other := range f.s.likes[filmID] {
			if other != userID {
				shared[other]++
			}
		}
	}

	out := []entity.Overlap{}
	for _, id := range sortedIDs(shared) {
		out = append(out, entity.Overlap{UserID: id, Shared: shared[id]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Shared > out[j].Shared })
	return out, nil
}

func (f *fakeLikes) RecommendedFilmIDs(_ context.Context, userID, peerID int64) ([]int64, error) {
	mine := f.likedBy(userID)
	out := []int64{}
	for _, id := range sortedIDs(f.likedBy(peerID)) {
		if !mine[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeLikes) CommonFilmIDs(_ context.Context, userID, friendID int64) ([]int64, error) {
	other := f.likedBy(friendID)
	out := []int64{}
	for _, id := range sortedIDs(f.likedBy(userID)) {
		if other[id] {
			out = append(out, id)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return f.s.likeCount(out[i]) > f.s.likeCount(out[j]) })
	return out, nil
}

func (f *fakeLikes) Ranking(_ context.Context) ([]entity.FilmRank, error) {
	out := []entity.FilmRank{}
	for _, id := range sortedIDs(f.s.films) {
		film := f.s.films[id]
		out = append(out, entity.FilmRank{
			FilmID:      id,
			Likes:       f.s.likeCount(id),
			ReleaseYear: film.ReleaseDate.Year(),
			GenreIDs:    film.GenreIDs(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Likes > out[j].Likes })
	return out, nil
}

type fakeReviews struct{ s *memStore }

func (f *fakeReviews) Create(_ context.Context, r *entity.Review) error {
	r.ID = f.s.id()
	r.Useful = 0
	c := *r
	f.s.reviews[r.ID] = &c
	return nil
}

func (f *fakeReviews) FindByID(_ context.Context, id int64) (*entity.Review, error) {
	r, ok := f.s.reviews[id]
	if !ok {
		return nil, nil
	}
	c := *r
	return &c, nil
}

func (f *fakeReviews) List(_ context.Context, filmID *int64, limit int) ([]*entity.Review, error) {
	out := []*entity.Review{}
	for _, id := range sortedIDs(f.s.reviews) {
		r := f.s.reviews[id]
		if filmID == nil || r.FilmID == *filmID {
			c := *r
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Useful > out[j].Useful })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeReviews) Update(_ context.Context, r *entity.Review) error {
	stored, ok := f.s.reviews[r.ID]
	if !ok {
		return utils.NotFound("review %d", r.ID)
	}
	stored.Content = r.Content
	stored.IsPositive = r.IsPositive
	*r = *stored
	return nil
}

func (f *fakeReviews) Delete(_ context.Context, id int64) error {
	if _, ok := f.s.reviews[id]; !ok {
		return utils.NotFound("review %d", id)
	}
	delete(f.s.reviews, id)
	return nil
}

func (f *fakeReviews) AdjustUseful(_ context.Context, id int64, delta int) (int, error) {
	r, ok := f.s.reviews[id]
	if !ok {
		return 0, utils.NotFound("review %d", id)
	}
	r.Useful += delta
	return r.Useful, nil
}

type fakeFeed struct{ s *memStore }

func (f *fakeFeed) Create(_ context.Context, e *entity.FeedEvent) error {
	if f.s.feedErr != nil {
		return f.s.feedErr
	}
	e.EventID = int64(len(f.s.feed) + 1)
	c := *e
	f.s.feed = append(f.s.feed, &c)
	return nil
}

func (f *fakeFeed) FindByUserID(_ context.Context, userID int64) ([]*entity.FeedEvent, error) {
	out := []*entity.FeedEvent{}
	for _, e := range f.s.feed {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp < out[j].Timestamp
		}
		return out[i].EventID < out[j].EventID
	})
	return out, nil
}

// recordingCache is a map-backed PopularCache counting invalidations. Entries
// are keyed by version like the Redis cache.
type recordingCache struct {
	entries       map[string][]int64
	invalidations int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: map[string][]int64{}}
}

func (c *recordingCache) entry(v cache.Version, key cache.PopularKey) string {
	return fmt.Sprintf("v%d:%s", v, key)
}

func (c *recordingCache) Get(_ context.Context, key cache.PopularKey) ([]int64, cache.Version, bool) {
	v := cache.Version(c.invalidations)
	ids, ok := c.entries[c.entry(v, key)]
	return ids, v, ok
}

func (c *recordingCache) Set(_ context.Context, key cache.PopularKey, v cache.Version, ids []int64) {
	if v == cache.NoVersion {
		return
	}
	c.entries[c.entry(v, key)] = ids
}

func (c *recordingCache) Invalidate(context.Context) {
	c.invalidations++
}

func newTestService(s *memStore, c cache.PopularCache) *Service {
	return NewService(s.repo(), c, utils.NewValidator(utils.DefaultRules()), zap.NewNop())
}
