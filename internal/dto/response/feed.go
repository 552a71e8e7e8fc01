package response

import "filmorate/internal/data/entity"

type FeedEventResponse struct {
	EventID   int64  `json:"eventId"`
	EntityID  int64  `json:"entityId"`
	UserID    int64  `json:"userId"`
	Timestamp int64  `json:"timestamp"`
	EventType string `json:"eventType"`
	Operation string `json:"operation"`
}

func FeedToResponse(events []*entity.FeedEvent) []FeedEventResponse {
	out := make([]FeedEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, FeedEventResponse{
			EventID:   e.EventID,
			EntityID:  e.EntityID,
			UserID:    e.UserID,
			Timestamp: e.Timestamp,
			EventType: string(e.EventType),
			Operation: string(e.Operation),
		})
	}
	return out
}
