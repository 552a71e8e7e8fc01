package adaptor

import (
	"net/http"

	"filmorate/internal/dto/request"
	"filmorate/internal/usecase"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

// UserHandler serves users, friendships, the activity feed and
// recommendations.
type UserHandler struct {
	users     usecase.UserService
	graph     usecase.GraphService
	feed      usecase.FeedService
	recommend usecase.RecommendService
	log       *zap.Logger
}

func NewUserHandler(service *usecase.Service, log *zap.Logger) *UserHandler {
	return &UserHandler{
		users:     service.User,
		graph:     service.Graph,
		feed:      service.Feed,
		recommend: service.Recommend,
		log:       log.With(zap.String("handler", "user")),
	}
}

// GetUsers handles GET /api/users
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.FindAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get users")
		return
	}
	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "get user")
		return
	}

	user, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get user")
		return
	}
	utils.ResponseSuccess(w, "User retrieved successfully", user)
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req request.UserRequest
	if err := decodeBody(r, &req); err != nil {
		handleServiceError(w, h.log, err, "create user")
		return
	}

	user, err := h.users.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create user")
		return
	}
	utils.ResponseCreated(w, "User created successfully", user)
}

// UpdateUser handles PUT /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "update user")
		return
	}

	var req request.UserRequest
	if err := decodeBody(r, &req); err != nil {
		handleServiceError(w, h.log, err, "update user")
		return
	}

	user, err := h.users.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update user")
		return
	}
	utils.ResponseSuccess(w, "User updated successfully", user)
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "delete user")
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete user")
		return
	}
	utils.ResponseSuccess(w, "User deleted successfully", nil)
}

func (h *UserHandler) friendIDs(r *http.Request) (userID, friendID int64, err error) {
	if userID, err = pathID(r, "id"); err != nil {
		return 0, 0, err
	}
	if friendID, err = pathID(r, "friendId"); err != nil {
		return 0, 0, err
	}
	return userID, friendID, nil
}

// AddFriend handles PUT /api/users/{id}/friends/{friendId}
func (h *UserHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	userID, friendID, err := h.friendIDs(r)
	if err == nil {
		err = h.graph.AddFriend(r.Context(), userID, friendID)
	}
	if err != nil {
		handleServiceError(w, h.log, err, "add friend")
		return
	}
	utils.ResponseSuccess(w, "Friend added successfully", nil)
}

// RemoveFriend handles DELETE /api/users/{id}/friends/{friendId}
func (h *UserHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID, friendID, err := h.friendIDs(r)
	if err == nil {
		err = h.graph.RemoveFriend(r.Context(), userID, friendID)
	}
	if err != nil {
		handleServiceError(w, h.log, err, "remove friend")
		return
	}
	utils.ResponseSuccess(w, "Friend removed successfully", nil)
}

// GetFriends handles GET /api/users/{id}/friends
func (h *UserHandler) GetFriends(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "get friends")
		return
	}

	friends, err := h.graph.Friends(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get friends")
		return
	}
	utils.ResponseSuccess(w, "Friends retrieved successfully", friends)
}

// GetCommonFriends handles GET /api/users/{id}/friends/common/{otherId}
func (h *UserHandler) GetCommonFriends(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "get common friends")
		return
	}
	otherID, err := pathID(r, "otherId")
	if err != nil {
		handleServiceError(w, h.log, err, "get common friends")
		return
	}

	friends, err := h.graph.CommonFriends(r.Context(), id, otherID)
	if err != nil {
		handleServiceError(w, h.log, err, "get common friends")
		return
	}
	utils.ResponseSuccess(w, "Common friends retrieved successfully", friends)
}

// GetFeed handles GET /api/users/{id}/feed
func (h *UserHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "get feed")
		return
	}

	events, err := h.feed.ByUser(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get feed")
		return
	}
	utils.ResponseSuccess(w, "Feed retrieved successfully", events)
}

// GetRecommendations handles GET /api/users/{id}/recommendations
func (h *UserHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "get recommendations")
		return
	}

	films, err := h.recommend.Recommendations(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get recommendations")
		return
	}
	utils.ResponseSuccess(w, "Recommendations retrieved successfully", films)
}
