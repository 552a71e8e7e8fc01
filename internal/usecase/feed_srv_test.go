package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"filmorate/internal/data/entity"
	"filmorate/internal/dto/request"
	"filmorate/pkg/utils"
)

func TestFeedRecordsMutationsInOrder(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newTestService(store, nil)

	// every event lands in the same millisecond; event ids keep the order
	svc.Feed.(*feedService).now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }

	u := store.addUser("u")
	friend := store.addUser("friend")
	f := store.addFilm("f", 2000)

	if err := svc.Graph.AddLike(ctx, f, u); err != nil {
		t.Fatal(err)
	}
	if err := svc.Graph.AddFriend(ctx, u, friend); err != nil {
		t.Fatal(err)
	}
	review, err := svc.Review.Create(ctx, &request.CreateReviewRequest{
		Content: "good", IsPositive: boolPtr(true), UserID: u, FilmID: f,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Graph.RemoveLike(ctx, f, u); err != nil {
		t.Fatal(err)
	}

	events, err := svc.Feed.ByUser(ctx, u)
	if err != nil {
		t.Fatalf("ByUser() error = %v", err)
	}

	want := []struct {
		entityID  int64
		eventType entity.EventType
		operation entity.Operation
	}{
		{f, entity.EventLike, entity.OperationAdd},
		{friend, entity.EventFriend, entity.OperationAdd},
		{review.ReviewID, entity.EventReview, entity.OperationAdd},
		{f, entity.EventLike, entity.OperationRemove},
	}

	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, w := range want {
		e := events[i]
		if e.EntityID != w.entityID || e.EventType != string(w.eventType) || e.Operation != string(w.operation) {
			t.Errorf("event %d = %+v, want %+v", i, e, w)
		}
		if e.UserID != u {
			t.Errorf("event %d actor = %d, want %d", i, e.UserID, u)
		}
		if i > 0 && e.EventID <= events[i-1].EventID {
			t.Errorf("event %d id %d not after %d", i, e.EventID, events[i-1].EventID)
		}
	}

	friendEvents, _ := svc.Feed.ByUser(ctx, friend)
	if len(friendEvents) != 0 {
		t.Errorf("friend feed has %d events, want 0", len(friendEvents))
	}
}

func TestFeedUnknownUser(t *testing.T) {
	svc := newTestService(newMemStore(), nil)

	if _, err := svc.Feed.ByUser(context.Background(), 77); !errors.Is(err, utils.ErrNotFound) {
		t.Errorf("ByUser() error = %v, want not found", err)
	}
	if _, err := svc.Feed.Record(context.Background(), 1, 77, entity.EventLike, entity.OperationAdd); !errors.Is(err, utils.ErrNotFound) {
		t.Errorf("Record() error = %v, want not found", err)
	}
}

func TestFeedSurvivesFilmDeletion(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newTestService(store, nil)

	u := store.addUser("u")
	f := store.addFilm("f", 2000)

	if err := svc.Graph.AddLike(ctx, f, u); err != nil {
		t.Fatal(err)
	}
	if err := svc.Film.Delete(ctx, f); err != nil {
		t.Fatal(err)
	}

	events, err := svc.Feed.ByUser(ctx, u)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].EntityID != f {
		t.Errorf("feed = %+v, want one like event for film %d", events, f)
	}
}
