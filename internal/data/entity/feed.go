package entity

type EventType string

const (
	EventLike   EventType = "LIKE"
	EventReview EventType = "REVIEW"
	EventFriend EventType = "FRIEND"
)

type Operation string

const (
	OperationAdd    Operation = "ADD"
	OperationRemove Operation = "REMOVE"
	OperationUpdate Operation = "UPDATE"
)

// FeedEvent is an immutable audit row of a graph mutation.
type FeedEvent struct {
	EventID   int64     `db:"event_id"`
	EntityID  int64     `db:"entity_id"`
	UserID    int64     `db:"user_id"`
	Timestamp int64     `db:"event_timestamp"` // epoch millis
	EventType EventType `db:"event_type"`
	Operation Operation `db:"operation"`
}

// Overlap counts the films another user shares with the target user.
type Overlap struct {
	UserID int64 `db:"user_id"`
	Shared int64 `db:"shared"`
}
