package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fosel/chirp/internal/service"
	"github.com/fosel/chirp/internal/transport/http/middleware"
	"github.com/fosel/chirp/pkg/validator"
)

type PostHandler struct {
	postService    *service.PostService
	retweetService *service.RetweetService
	log            *zap.Logger
}

func NewPostHandler(postService *service.PostService, retweetService *service.RetweetService, log *zap.Logger) *PostHandler {
	return &PostHandler{postService: postService, retweetService: retweetService, log: log}
}

type postInput struct {
	Content string   `json:"content"`
	Images  []string `json:"images"`
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	var input postInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidatePost(input.Content); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	full, err := h.postService.CreatePost(r.Context(), actor, input.Content, input.Images)
	if err != nil {
		h.log.Error("creating post failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusCreated, full)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	full, err := h.postService.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeError(w, http.StatusNotFound, "POST_NOT_FOUND", "Post does not exist")
		} else {
			h.log.Error("loading post failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, full)
}

func (h *PostHandler) Edit(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	var input postInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidatePost(input.Content); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	full, err := h.postService.EditPost(r.Context(), actor, id, input.Content, input.Images)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			writeError(w, http.StatusNotFound, "POST_NOT_FOUND", "Post does not exist")
		case errors.Is(err, service.ErrNotPostAuthor):
			writeError(w, http.StatusForbidden, "NOT_POST_AUTHOR", "Only the author can edit a post")
		default:
			h.log.Error("editing post failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, full)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	// Only deletes the actor's own post; anything else matches nothing
	// and still reports success.
	if err := h.postService.DeletePost(r.Context(), actor, id); err != nil {
		h.log.Error("deleting post failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}

func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateComment(input.Content); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	comment, err := h.postService.AddComment(r.Context(), actor, id, input.Content)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeError(w, http.StatusForbidden, "POST_NOT_FOUND", "Post does not exist")
		} else {
			h.log.Error("adding comment failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, true)
}

func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, false)
}

func (h *PostHandler) toggleLike(w http.ResponseWriter, r *http.Request, add bool) {
	actor := middleware.GetActor(r.Context())

	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	var err error
	if add {
		err = h.postService.Like(r.Context(), actor, id)
	} else {
		err = h.postService.Unlike(r.Context(), actor, id)
	}
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeError(w, http.StatusForbidden, "POST_NOT_FOUND", "Post does not exist")
		} else {
			h.log.Error("toggling like failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"post_id": id.String(), "user_email": actor})
}

func (h *PostHandler) Retweet(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	full, err := h.retweetService.Retweet(r.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			writeError(w, http.StatusForbidden, "POST_NOT_FOUND", "Post does not exist")
		case errors.Is(err, service.ErrRetweetOwnPost):
			writeError(w, http.StatusForbidden, "RETWEET_OWN_POST", "Cannot retweet your own post that was retweeted")
		case errors.Is(err, service.ErrAlreadyRetweeted):
			writeError(w, http.StatusForbidden, "ALREADY_RETWEETED", "Already retweeted this post")
		default:
			h.log.Error("retweeting failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, full)
}

func (h *PostHandler) postID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid post id")
		return uuid.Nil, false
	}
	return id, true
}
