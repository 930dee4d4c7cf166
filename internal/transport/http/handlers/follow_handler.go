package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/fosel/chirp/internal/service"
	"github.com/fosel/chirp/internal/transport/http/middleware"
)

type FollowHandler struct {
	followService *service.FollowService
	log           *zap.Logger
}

func NewFollowHandler(followService *service.FollowService, log *zap.Logger) *FollowHandler {
	return &FollowHandler{followService: followService, log: log}
}

func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	target := r.PathValue("email")

	user, err := h.followService.Follow(r.Context(), actor, target)
	if err != nil {
		h.writeFollowError(w, err, "following failed")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	target := r.PathValue("email")

	user, err := h.followService.Unfollow(r.Context(), actor, target)
	if err != nil {
		h.writeFollowError(w, err, "unfollowing failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"email": user.Email})
}

// RemoveFollower removes the edge pointing at the actor: the named user
// stops following them.
func (h *FollowHandler) RemoveFollower(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	follower := r.PathValue("email")

	if err := h.followService.RemoveFollower(r.Context(), actor, follower); err != nil {
		h.writeFollowError(w, err, "removing follower failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"email": follower})
}

func (h *FollowHandler) ListFollowers(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	users, err := h.followService.ListFollowers(r.Context(), actor)
	if err != nil {
		h.writeFollowError(w, err, "listing followers failed")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *FollowHandler) ListFollowings(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	users, err := h.followService.ListFollowings(r.Context(), actor)
	if err != nil {
		h.writeFollowError(w, err, "listing followings failed")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *FollowHandler) writeFollowError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, service.ErrUserNotFound) {
		writeError(w, http.StatusForbidden, "USER_NOT_FOUND", "User does not exist")
		return
	}
	h.log.Error(msg, zap.Error(err))
	writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
}
