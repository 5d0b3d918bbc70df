package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi"

	"github.com/iftakhar005/talenthunt/internal/api"
	"github.com/iftakhar005/talenthunt/internal/entities"
	mm "github.com/iftakhar005/talenthunt/internal/middleware"
	"github.com/iftakhar005/talenthunt/internal/service"
	"github.com/iftakhar005/talenthunt/internal/storage"
)

func (s server) sendVerification(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /auth/send-verification Auth SendVerification
	//
	// Starts registration and sends verification code to the email.
	//
	// ---
	// consumes:
	// - application/json
	// produces:
	// - application/json
	// responses:
	//   '200':
	//     description: code is sent
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '409':
	//     description: email is already registered
	//     schema:
	//       "$ref": "#/definitions/Error"

	var req api.SendVerificationRequest
	if err := decodeRequest(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.s.SendVerification(r.Context(), &service.Registration{
		Name:       req.Name,
		Email:      req.Email,
		StudentID:  req.StudentID,
		Department: req.Department,
		Password:   req.Password,
	}); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			api.WriteError(w, http.StatusConflict, "email is already registered")
			return
		}
		api.WriteInternalErrorf(r.Context(), w, "failed to send verification: %s", err.Error())
		return
	}

	api.WriteOK(w, http.StatusOK, api.MessageResponse{Message: "Verification code sent"})
}

func (s server) resendCode(w http.ResponseWriter, r *http.Request) {
	var req api.ResendCodeRequest
	if err := decodeRequest(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.s.ResendCode(r.Context(), req.Email); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, "no pending verification for the email")
			return
		}
		api.WriteInternalErrorf(r.Context(), w, "failed to resend code: %s", err.Error())
		return
	}

	api.WriteOK(w, http.StatusOK, api.MessageResponse{Message: "Verification code sent"})
}

func (s server) verifyCode(w http.ResponseWriter, r *http.Request) {
	var req api.VerifyCodeRequest
	if err := decodeRequest(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, token, err := s.s.VerifyCode(r.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			api.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, storage.ErrAlreadyExists):
			api.WriteError(w, http.StatusConflict, "email is already registered")
		default:
			api.WriteInternalErrorf(r.Context(), w, "failed to verify code: %s", err.Error())
		}
		return
	}

	api.WriteOK(w, http.StatusOK, api.AuthResponse{Token: token, User: toAPIUser(u)})
}

func (s server) login(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /auth/login Auth Login
	//
	// Returns bearer token and profile of the user.
	//
	// ---
	// produces:
	// - application/json
	// responses:
	//   '200':
	//     description: token and user
	//   '401':
	//     description: invalid credentials
	//     schema:
	//       "$ref": "#/definitions/Error"

	var req api.LoginRequest
	if err := decodeRequest(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, token, err := s.s.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			api.WriteError(w, http.StatusUnauthorized, err.Error())
			return
		}
		api.WriteInternalErrorf(r.Context(), w, "failed to login: %s", err.Error())
		return
	}

	api.WriteOK(w, http.StatusOK, api.AuthResponse{Token: token, User: toAPIUser(u)})
}

func (s server) me(w http.ResponseWriter, r *http.Request) {
	u, _ := mm.UserFromContext(r.Context())

	api.WriteOK(w, http.StatusOK, toAPIUser(u))
}

func (s server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req api.ProfileUpdateRequest
	if err := decodeRequest(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, _ := mm.UserFromContext(r.Context())

	updated, err := s.s.UpdateProfile(r.Context(), u.ID, &storage.ProfileUpdate{
		Name:       req.Name,
		Department: req.Department,
		Bio:        req.Bio,
		Avatar:     req.Avatar,
	})
	if err != nil {
		api.WriteInternalErrorf(r.Context(), w, "failed to update profile: %s", err.Error())
		return
	}

	api.WriteOK(w, http.StatusOK, toAPIUser(updated))
}

func (s server) listContent(t entities.ContentType) http.HandlerFunc {
	// swagger:operation GET /{collection} Content ListContent
	//
	// Lists published videos, audios or blogs.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: collection
	//   in: path
	//   required: true
	//   type: string
	//   enum: [videos, audios, blogs]
	// - name: limit
	//   in: query
	//   required: false
	//   default: 20
	//   minimum: 1
	//   maximum: 100
	// - name: page
	//   in: query
	//   required: false
	//   default: 1
	// - name: sort
	//   in: query
	//   required: false
	//   default: newest
	//   type: string
	//   enum: [newest, popular, views, top]
	// - name: owner
	//   description: filters content by owner id
	//   in: query
	//   required: false
	// responses:
	//   '200':
	//     description: Content
	//     schema:
	//       "$ref": "#/definitions/ListContentResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	return func(w http.ResponseWriter, r *http.Request) {
		params, page, err := extractListParamsFromQuery(r.URL.Query(), t)
		if err != nil {
			api.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		params.Voter = r.Header.Get(identityHeader)

		c, err := s.s.ListContent(r.Context(), params)
		if err != nil {
			api.WriteInternalErrorf(r.Context(), w, "failed to list %s: %s", t.Collection(), err.Error())
			return
		}

		resp := api.ListContentResponse{
			Items: make([]api.Content, len(c)),
			Page:  page,
			Limit: int(params.Limit),
		}
		for i, v := range c {
			resp.Items[i] = toAPIContent(v)
		}

		api.WriteOK(w, http.StatusOK, resp)
	}
}

func (s server) getContent(t entities.ContentType) http.HandlerFunc {
	// swagger:operation GET /{collection}/{id} Content GetContent
	//
	// Returns content with comments. userVote is filled when x-user-id header is passed.
	//
	// ---
	// produces:
	// - application/json
	// responses:
	//   '200':
	//     description: Content
	//     schema:
	//       "$ref": "#/definitions/Content"
	//   '404':
	//     description: content not found
	//     schema:
	//       "$ref": "#/definitions/Error"

	return func(w http.ResponseWriter, r *http.Request) {
		c, err := s.s.GetContent(r.Context(), t, chi.URLParam(r, "id"), r.Header.Get(identityHeader))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				api.WriteError(w, http.StatusNotFound, string(t)+" not found")
				return
			}
			api.WriteInternalErrorf(r.Context(), w, "failed to get %s: %s", t, err.Error())
			return
		}

		api.WriteOK(w, http.StatusOK, toAPIContent(c))
	}
}

func (s server) countEngagement(t entities.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.s.CountEngagement(r.Context(), t, chi.URLParam(r, "id")); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				api.WriteError(w, http.StatusNotFound, string(t)+" not found")
				return
			}
			api.WriteInternalErrorf(r.Context(), w, "failed to count %s: %s", t.EngagementAction(), err.Error())
			return
		}

		api.WriteOK(w, http.StatusOK, api.MessageResponse{Message: t.CounterName() + " updated"})
	}
}

func (s server) vote(t entities.ContentType) http.HandlerFunc {
	// swagger:operation POST /{collection}/{id}/vote Engagement Vote
	//
	// Sets, switches or removes anonymous vote of the identity passed in x-user-id header.
	//
	// ---
	// consumes:
	// - application/json
	// produces:
	// - application/json
	// parameters:
	// - name: x-user-id
	//   in: header
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: fresh counters and vote of the identity
	//     schema:
	//       "$ref": "#/definitions/VoteResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: content not found
	//     schema:
	//       "$ref": "#/definitions/Error"

	return func(w http.ResponseWriter, r *http.Request) {
		voter := strings.TrimSpace(r.Header.Get(identityHeader))
		if voter == "" {
			api.WriteError(w, http.StatusBadRequest, identityHeader+" header is required")
			return
		}

		var req api.VoteRequest
		if err := decodeRequest(r, &req); err != nil {
			api.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		res, err := s.s.Vote(r.Context(), t, chi.URLParam(r, "id"), voter, entities.VoteType(req.VoteType))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				api.WriteError(w, http.StatusNotFound, string(t)+" not found")
				return
			}
			api.WriteInternalErrorf(r.Context(), w, "failed to vote: %s", err.Error())
			return
		}

		api.WriteOK(w, http.StatusOK, api.VoteResponse{
			Upvotes:   &res.Upvotes,
			Downvotes: &res.Downvotes,
			UserVote:  api.UserVote(res.UserVote),
		})
	}
}

func (s server) comment(t entities.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.CommentRequest
		if err := decodeRequest(r, &req); err != nil {
			api.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		u, _ := mm.UserFromContext(r.Context())

		c, err := s.s.Comment(r.Context(), t, chi.URLParam(r, "id"), u, req.Text, r.Header.Get(identityHeader))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEmptyComment):
				api.WriteError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, storage.ErrNotFound):
				api.WriteError(w, http.StatusNotFound, string(t)+" not found")
			default:
				api.WriteInternalErrorf(r.Context(), w, "failed to comment: %s", err.Error())
			}
			return
		}

		api.WriteOK(w, http.StatusOK, toAPIContent(c))
	}
}

func (s server) submit(w http.ResponseWriter, r *http.Request) {
	var req api.SubmissionRequest
	if err := decodeRequest(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	// validated by decodeRequest
	t, _ := entities.ParseContentType(req.Type)
	u, _ := mm.UserFromContext(r.Context())

	created, err := s.s.Submit(r.Context(), &entities.ContentRequest{
		Type:         t,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Body:         req.Body,
		MediaURL:     req.MediaURL,
		ThumbnailURL: req.ThumbnailURL,
		Category:     req.Category,
		Tags:         req.Tags,
		Submitter:    u.Ref(),
	})
	if err != nil {
		api.WriteInternalErrorf(r.Context(), w, "failed to submit: %s", err.Error())
		return
	}

	api.WriteOK(w, http.StatusCreated, toAPIRequest(created))
}

func (s server) listPending(w http.ResponseWriter, r *http.Request) {
	requests, err := s.s.ListPending(r.Context())
	if err != nil {
		api.WriteInternalErrorf(r.Context(), w, "failed to list pending requests: %s", err.Error())
		return
	}

	resp := api.PendingResponse{Requests: make([]api.ContentRequest, len(requests))}
	for i, v := range requests {
		resp.Requests[i] = toAPIRequest(v)
	}

	api.WriteOK(w, http.StatusOK, resp)
}

func (s server) approve(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /admin/{id}/approve Admin Approve
	//
	// Publishes pending request.
	//
	// ---
	// produces:
	// - application/json
	// responses:
	//   '200':
	//     description: created content
	//     schema:
	//       "$ref": "#/definitions/Content"
	//   '404':
	//     description: request not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '409':
	//     description: request is not pending
	//     schema:
	//       "$ref": "#/definitions/Error"

	u, _ := mm.UserFromContext(r.Context())

	c, err := s.s.Approve(r.Context(), chi.URLParam(r, "id"), u)
	if err != nil {
		writeModerationError(w, r, err)
		return
	}

	api.WriteOK(w, http.StatusOK, toAPIContent(c))
}

func (s server) reject(w http.ResponseWriter, r *http.Request) {
	var req api.RejectRequest
	if err := decodeRequest(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, _ := mm.UserFromContext(r.Context())

	rejected, err := s.s.Reject(r.Context(), chi.URLParam(r, "id"), req.Reason, u)
	if err != nil {
		writeModerationError(w, r, err)
		return
	}

	api.WriteOK(w, http.StatusOK, toAPIRequest(rejected))
}

func writeModerationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		api.WriteError(w, http.StatusNotFound, "request not found")
	case errors.Is(err, storage.ErrConflict):
		api.WriteError(w, http.StatusConflict, "request is already reviewed")
	default:
		api.WriteInternalErrorf(r.Context(), w, "failed to review request: %s", err.Error())
	}
}

func (s server) listNotifications(w http.ResponseWriter, r *http.Request) {
	limit, err := extractLimitFromQuery(r.URL.Query(), defaultNotificationLimit)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, _ := mm.UserFromContext(r.Context())

	n, err := s.s.ListNotifications(r.Context(), u.ID, limit)
	if err != nil {
		api.WriteInternalErrorf(r.Context(), w, "failed to list notifications: %s", err.Error())
		return
	}

	resp := api.NotificationsResponse{Notifications: make([]api.Notification, len(n))}
	for i, v := range n {
		resp.Notifications[i] = toAPINotification(v)
	}

	api.WriteOK(w, http.StatusOK, resp)
}

func (s server) unreadCount(w http.ResponseWriter, r *http.Request) {
	u, _ := mm.UserFromContext(r.Context())

	c, err := s.s.CountUnread(r.Context(), u.ID)
	if err != nil {
		api.WriteInternalErrorf(r.Context(), w, "failed to count unread notifications: %s", err.Error())
		return
	}

	api.WriteOK(w, http.StatusOK, api.UnreadCountResponse{Count: &c})
}

func (s server) markRead(w http.ResponseWriter, r *http.Request) {
	var req api.MarkReadRequest
	if err := decodeRequest(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, _ := mm.UserFromContext(r.Context())

	if err := s.s.MarkRead(r.Context(), u.ID, req.IDs...); err != nil {
		api.WriteInternalErrorf(r.Context(), w, "failed to mark notifications as read: %s", err.Error())
		return
	}

	api.WriteOK(w, http.StatusOK, api.MessageResponse{Message: "Notifications marked as read"})
}

func (s server) deleteNotification(w http.ResponseWriter, r *http.Request) {
	u, _ := mm.UserFromContext(r.Context())

	if err := s.s.DeleteNotification(r.Context(), u.ID, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, "notification not found")
			return
		}
		api.WriteInternalErrorf(r.Context(), w, "failed to delete notification: %s", err.Error())
		return
	}

	api.WriteOK(w, http.StatusOK, api.MessageResponse{Message: "Notification deleted"})
}

func (s server) leaderboard(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /leaderboard Content Leaderboard
	//
	// Ranks content by net score (upvotes minus downvotes).
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: type
	//   in: query
	//   required: false
	//   type: string
	//   enum: [all, video, audio, blog]
	// - name: limit
	//   in: query
	//   required: false
	//   default: 10
	//   minimum: 1
	//   maximum: 100
	// responses:
	//   '200':
	//     description: Leaderboard
	//     schema:
	//       "$ref": "#/definitions/LeaderboardResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"

	params, err := extractLeaderboardParamsFromQuery(r.URL.Query())
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	l, err := s.s.Leaderboard(r.Context(), params)
	if err != nil {
		api.WriteInternalErrorf(r.Context(), w, "failed to get leaderboard: %s", err.Error())
		return
	}

	resp := api.LeaderboardResponse{Entries: make([]api.LeaderboardEntry, len(l))}
	for i, v := range l {
		resp.Entries[i] = api.LeaderboardEntry{
			Rank:     v.Rank,
			NetScore: v.NetScore,
			Content:  toAPIContent(&v.Content),
		}
	}

	api.WriteOK(w, http.StatusOK, resp)
}
