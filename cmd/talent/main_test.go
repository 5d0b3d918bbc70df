package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iftakhar005/talenthunt/internal/api"
	"github.com/iftakhar005/talenthunt/internal/client"
	"github.com/iftakhar005/talenthunt/internal/entities"
	"github.com/iftakhar005/talenthunt/internal/session"
)

func setup(t *testing.T, r http.Handler) *bytes.Buffer {
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	prevOut, prevOpts := stdout, opts
	t.Cleanup(func() {
		stdout, opts = prevOut, prevOpts
	})

	stdout = &out
	opts.API = srv.URL + "/api"
	opts.Session = filepath.Join(t.TempDir(), "session.json")
	opts.CacheTTL = 0
	opts.Debug = false

	return &out
}

func openSession(t *testing.T) *session.Session {
	s, err := session.Open(session.NewFileStore(opts.Session))
	require.NoError(t, err)
	return s
}

func TestRegister_Validation(t *testing.T) {
	setup(t, chi.NewRouter())

	err := (&registerCommand{Name: "n", Email: "e@uni.edu", Password: "p", Confirm: "q"}).Execute(nil)
	assert.True(t, errors.Is(err, ErrPasswordMismatch))

	err = (&registerCommand{Email: "e@uni.edu", Password: "p", Confirm: "p"}).Execute(nil)
	assert.True(t, errors.Is(err, ErrMissingField))
}

func TestVote_TogglesOff(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/videos/{id}", func(w http.ResponseWriter, r *http.Request) {
		api.WriteOK(w, http.StatusOK, api.Content{
			ID:       chi.URLParam(r, "id"),
			Type:     string(entities.VideoType),
			Title:    "title",
			Upvotes:  1,
			UserVote: api.UserVote(entities.Upvote),
			Tags:     []string{},
			Comments: []api.Comment{},
		})
	})

	var identity string
	r.Post("/api/videos/{id}/vote", func(w http.ResponseWriter, r *http.Request) {
		var req api.VoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, string(entities.RemoveVote), req.VoteType)
		identity = r.Header.Get(client.IdentityHeader)

		zero := uint32(0)
		api.WriteOK(w, http.StatusOK, api.VoteResponse{Upvotes: &zero, Downvotes: &zero})
	})

	out := setup(t, r)

	c := voteCommand{}
	c.Args.Type, c.Args.ID = "videos", "c1"
	require.NoError(t, c.Execute(nil))

	assert.Contains(t, out.String(), "net 0")

	id, err := openSession(t).Identity()
	require.NoError(t, err)
	assert.Equal(t, id, identity)
}

func TestComment_LoginRequired(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/blogs/{id}", func(w http.ResponseWriter, r *http.Request) {
		api.WriteOK(w, http.StatusOK, api.Content{ID: "b1", Type: "blog", Title: "title"})
	})
	r.Post("/api/blogs/{id}/comment", func(w http.ResponseWriter, r *http.Request) {
		t.Error("comment must not be sent without token")
	})

	setup(t, r)

	c := commentCommand{}
	c.Args.Type, c.Args.ID, c.Args.Text = "blog", "b1", []string{"hello"}

	assert.True(t, errors.Is(c.Execute(nil), client.ErrLoginRequired))
}

func TestSubmit_ExpiredSessionKeepsDraft(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/submissions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		api.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
	})

	setup(t, r)
	require.NoError(t, openSession(t).Login("token", api.User{ID: "u1", Name: "Student"}))

	c := submitCommand{}
	c.Args.Type = "audio"
	c.Title = "song"
	c.MediaURL = "https://cdn/a.mp3"

	err := c.Execute(nil)
	assert.True(t, errors.Is(err, client.ErrSessionExpired))

	s := openSession(t)
	assert.False(t, s.IsLoggedIn())
	require.NotNil(t, s.Draft(entities.AudioType))
	assert.Equal(t, "song", s.Draft(entities.AudioType).Title)
}

func TestSubmit_FromDraft(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/submissions", func(w http.ResponseWriter, r *http.Request) {
		var req api.SubmissionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "blog", req.Type)
		assert.Equal(t, "draft title", req.Title)
		assert.Equal(t, "new body", req.Body)

		api.WriteOK(w, http.StatusCreated, api.ContentRequest{
			ID:     "r1",
			Type:   req.Type,
			Title:  req.Title,
			Status: string(entities.PendingStatus),
		})
	})

	out := setup(t, r)

	s := openSession(t)
	require.NoError(t, s.Login("token", api.User{ID: "u1"}))
	require.NoError(t, s.SaveDraft(entities.BlogType, api.SubmissionRequest{Title: "draft title", Body: "old body"}))

	c := submitCommand{FromDraft: true}
	c.Args.Type = "blog"
	c.Body = "new body"

	require.NoError(t, c.Execute(nil))
	assert.Contains(t, out.String(), "request r1 is pending")
	assert.Nil(t, openSession(t).Draft(entities.BlogType))
}

func TestLeaderboard(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "audio", r.URL.Query().Get("type"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))

		api.WriteOK(w, http.StatusOK, api.LeaderboardResponse{Entries: []api.LeaderboardEntry{
			{Rank: 1, NetScore: 5, Content: api.Content{ID: "a1", Type: "audio", Title: "top song", User: api.UserRef{Name: "Owner"}}},
		}})
	})

	out := setup(t, r)

	require.NoError(t, (&leaderboardCommand{Type: "audios", Limit: 3}).Execute(nil))
	assert.Contains(t, out.String(), "top song")
	assert.Contains(t, out.String(), "Owner")
}

func videoRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/videos/{id}", func(w http.ResponseWriter, r *http.Request) {
		api.WriteOK(w, http.StatusOK, api.Content{ID: chi.URLParam(r, "id"), Type: "video", Title: "demo day"})
	})
	return r
}

func TestPlay_WaitsForCount(t *testing.T) {
	var finished int32

	r := videoRouter()
	r.Post("/api/videos/{id}/view", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
		atomic.StoreInt32(&finished, 1)
		api.WriteOK(w, http.StatusOK, api.MessageResponse{Message: "views updated"})
	})

	out := setup(t, r)

	after := 10 * time.Millisecond
	c := playCommand{CountAfter: &after}
	c.Args.Type, c.Args.ID = "video", "v1"

	require.NoError(t, c.Execute(nil))
	assert.EqualValues(t, 1, atomic.LoadInt32(&finished))
	assert.Contains(t, out.String(), "view counted")
}

func TestPlay_CountFailed(t *testing.T) {
	r := videoRouter()
	r.Post("/api/videos/{id}/view", func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, http.StatusInternalServerError, "internal error")
	})

	out := setup(t, r)

	after := 10 * time.Millisecond
	c := playCommand{CountAfter: &after}
	c.Args.Type, c.Args.ID = "video", "v1"

	var e *client.Error
	require.True(t, errors.As(c.Execute(nil), &e))
	assert.Equal(t, http.StatusInternalServerError, e.Status)
	assert.NotContains(t, out.String(), "view counted")
}
