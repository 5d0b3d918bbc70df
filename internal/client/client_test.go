package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iftakhar005/talenthunt/internal/api"
	"github.com/iftakhar005/talenthunt/internal/cache/memory"
	"github.com/iftakhar005/talenthunt/internal/entities"
	"github.com/iftakhar005/talenthunt/internal/session"
)

var ctx = context.Background()

func newTestClient(t *testing.T, r http.Handler, opts ...Option) (*Client, *session.Session) {
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	s, err := session.Open(&session.MemoryStore{})
	require.NoError(t, err)

	return New(srv.URL+"/api", s, opts...), s
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_Login(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nadia@uiu.ac.bd", req.Email)
		assert.Equal(t, "secret", req.Password)

		writeJSON(w, http.StatusOK, api.AuthResponse{
			Token: "token",
			User:  api.User{ID: "u1", Name: "Nadia", Role: "student"},
		})
	})

	c, s := newTestClient(t, r)

	resp, err := c.Login(ctx, "nadia@uiu.ac.bd", "secret")
	require.NoError(t, err)
	require.Equal(t, "token", resp.Token)

	require.True(t, s.IsLoggedIn())
	require.Equal(t, "token", s.Token())
	require.Equal(t, "u1", s.User().ID)
}

func TestClient_Errors(t *testing.T) {
	tt := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{
			name:    "server_message",
			status:  http.StatusUnauthorized,
			body:    `{"error":"invalid credentials"}`,
			message: "invalid credentials",
		},
		{
			name:    "message_field",
			status:  http.StatusBadRequest,
			body:    `{"message":"email is taken"}`,
			message: "email is taken",
		},
		{
			name:    "fallback",
			status:  http.StatusInternalServerError,
			body:    `oops`,
			message: "Login failed",
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			c, s := newTestClient(t, r)

			_, err := c.Login(ctx, "a@b.c", "p")
			require.Error(t, err)

			var e *Error
			require.True(t, errors.As(err, &e))
			require.Equal(t, tc.status, e.Status)
			require.Equal(t, tc.message, e.Message)
			require.False(t, s.IsLoggedIn())
		})
	}
}

func TestClient_MalformedResponse(t *testing.T) {
	tt := []struct {
		name string
		body string
	}{
		{name: "not_json", body: `<html>`},
		{name: "missing_counters", body: `{"userVote":null}`},
		{name: "unknown_vote", body: `{"upvotes":1,"downvotes":0,"userVote":"sideways"}`},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Post("/api/videos/{id}/vote", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})

			c, _ := newTestClient(t, r)

			_, err := c.Vote(ctx, entities.VideoType, "v1", entities.Upvote)
			require.True(t, errors.Is(err, ErrMalformedResponse), err)
		})
	}
}

func TestClient_Vote_Headers(t *testing.T) {
	var identity string

	r := chi.NewRouter()
	r.Post("/api/audios/{id}/vote", func(w http.ResponseWriter, r *http.Request) {
		identity = r.Header.Get(IdentityHeader)
		assert.Equal(t, "a1", chi.URLParam(r, "id"))

		var req api.VoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "remove", req.VoteType)

		_, _ = w.Write([]byte(`{"upvotes":2,"downvotes":1,"userVote":null}`))
	})

	c, s := newTestClient(t, r)

	resp, err := c.Vote(ctx, entities.AudioType, "a1", entities.RemoveVote)
	require.NoError(t, err)
	require.EqualValues(t, 2, *resp.Upvotes)
	require.EqualValues(t, 1, *resp.Downvotes)
	require.Equal(t, api.UserVote(entities.NoVote), resp.UserVote)

	id, err := s.Identity()
	require.NoError(t, err)
	require.Equal(t, id, identity)
}

func TestClient_Vote_InvalidAction(t *testing.T) {
	var calls int32

	r := chi.NewRouter()
	r.Post("/api/videos/{id}/vote", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	c, _ := newTestClient(t, r)

	_, err := c.Vote(ctx, entities.VideoType, "v1", entities.NoVote)
	require.True(t, errors.Is(err, api.ErrInvalid))
	require.Zero(t, atomic.LoadInt32(&calls))
}

func TestClient_BearerRequired(t *testing.T) {
	var calls int32

	r := chi.NewRouter()
	r.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	c, _ := newTestClient(t, r)

	_, err := c.Comment(ctx, entities.BlogType, "b1", "hello")
	require.True(t, errors.Is(err, ErrLoginRequired))

	_, err = c.Notifications(ctx)
	require.True(t, errors.Is(err, ErrLoginRequired))

	_, err = c.Pending(ctx)
	require.True(t, errors.Is(err, ErrLoginRequired))

	require.Zero(t, atomic.LoadInt32(&calls))
}

func TestClient_Cache(t *testing.T) {
	var gets int32

	r := chi.NewRouter()
	r.Get("/api/videos/{id}", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&gets, 1)
		_, _ = w.Write([]byte(`{"id":"v1","type":"video","title":"t","upvotes":1,"downvotes":0,"userVote":null,"views":3}`))
	})
	r.Post("/api/videos/{id}/vote", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"upvotes":2,"downvotes":0,"userVote":"upvote"}`))
	})

	c, _ := newTestClient(t, r, WithCache(memory.NewStorage(), time.Minute))

	v, err := c.GetContent(ctx, entities.VideoType, "v1")
	require.NoError(t, err)
	require.EqualValues(t, 3, v.Engagement())

	_, err = c.GetContent(ctx, entities.VideoType, "v1")
	require.NoError(t, err)
	require.EqualValues(t, 1, atomic.LoadInt32(&gets))

	_, err = c.Vote(ctx, entities.VideoType, "v1", entities.Upvote)
	require.NoError(t, err)

	_, err = c.GetContent(ctx, entities.VideoType, "v1")
	require.NoError(t, err)
	require.EqualValues(t, 2, atomic.LoadInt32(&gets))
}

func TestClient_Cache_VoteInvalidatesLists(t *testing.T) {
	var lists, boards, audios int32

	r := chi.NewRouter()
	r.Get("/api/videos", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&lists, 1)
		_, _ = w.Write([]byte(`{"items":[],"page":1,"limit":5}`))
	})
	r.Get("/api/audios", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&audios, 1)
		_, _ = w.Write([]byte(`{"items":[],"page":1,"limit":5}`))
	})
	r.Get("/api/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&boards, 1)
		_, _ = w.Write([]byte(`{"entries":[]}`))
	})
	r.Post("/api/videos/{id}/vote", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"upvotes":1,"downvotes":0,"userVote":"upvote"}`))
	})

	c, _ := newTestClient(t, r, WithCache(memory.NewStorage(), time.Minute))

	load := func() {
		_, err := c.ListContent(ctx, entities.VideoType, ListParams{Limit: 5, Sort: "top"})
		require.NoError(t, err)
		_, err = c.ListContent(ctx, entities.AudioType, ListParams{Limit: 5})
		require.NoError(t, err)
		_, err = c.Leaderboard(ctx, "", 3)
		require.NoError(t, err)
	}

	load()
	load()
	require.EqualValues(t, 1, atomic.LoadInt32(&lists))
	require.EqualValues(t, 1, atomic.LoadInt32(&boards))

	_, err := c.Vote(ctx, entities.VideoType, "v1", entities.Upvote)
	require.NoError(t, err)

	load()
	require.EqualValues(t, 2, atomic.LoadInt32(&lists))
	require.EqualValues(t, 2, atomic.LoadInt32(&boards))
	require.EqualValues(t, 1, atomic.LoadInt32(&audios))
}

func TestClient_Submit_Expired(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/submissions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, api.Error{Error: "token expired"})
	})

	c, s := newTestClient(t, r)
	require.NoError(t, s.Login("stale", api.User{ID: "u1"}))

	_, err := c.Submit(ctx, api.SubmissionRequest{Type: "blog", Title: "t", Body: "b"})
	require.True(t, errors.Is(err, ErrSessionExpired))
	require.True(t, IsExpired(err))
	require.False(t, s.IsLoggedIn())
}

func TestClient_Comment_Variants(t *testing.T) {
	tt := []struct {
		name     string
		body     string
		content  bool
		comments int
	}{
		{
			name:     "full_content",
			body:     `{"id":"b1","type":"blog","title":"t","comments":[{"id":"c1","text":"hi"},{"id":"c2","text":"yo"}]}`,
			content:  true,
			comments: 2,
		},
		{
			name:     "comments_only",
			body:     `{"comments":[{"id":"c1","text":"hi"}]}`,
			comments: 1,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Post("/api/blogs/{id}/comment", func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
				assert.NotEmpty(t, r.Header.Get(IdentityHeader))

				var req api.CommentRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "hi", req.Text)

				_, _ = w.Write([]byte(tc.body))
			})

			c, s := newTestClient(t, r)
			require.NoError(t, s.Login("token", api.User{ID: "u1"}))

			resp, err := c.Comment(ctx, entities.BlogType, "b1", "  hi  ")
			require.NoError(t, err)
			require.Equal(t, tc.content, resp.Content != nil)
			require.Len(t, resp.Comments, tc.comments)
		})
	}
}

func TestClient_Dashboard(t *testing.T) {
	r := chi.NewRouter()
	for _, v := range entities.ContentTypes {
		v := v
		r.Get("/api/"+v.Collection(), func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "3", r.URL.Query().Get("limit"))
			assert.Equal(t, "newest", r.URL.Query().Get("sort"))

			writeJSON(w, http.StatusOK, api.ListContentResponse{
				Items: []api.Content{{ID: string(v) + "1", Type: string(v)}},
			})
		})
	}

	c, _ := newTestClient(t, r)

	res, err := c.Dashboard(ctx, ListParams{Limit: 3, Sort: "newest"})
	require.NoError(t, err)
	require.Len(t, res, 3)
	require.Equal(t, "audio1", res[entities.AudioType][0].ID)
}

func TestClient_Dashboard_Error(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/{collection}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "collection") == "blogs" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, api.ListContentResponse{})
	})

	c, _ := newTestClient(t, r)

	_, err := c.Dashboard(ctx, ListParams{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "blogs")
}

func TestClient_Notifications(t *testing.T) {
	var marked []string
	var deleted string

	r := chi.NewRouter()
	r.Get("/api/notifications/unread-count", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count":4}`))
	})
	r.Post("/api/notifications/mark-read", func(w http.ResponseWriter, r *http.Request) {
		var req api.MarkReadRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		marked = req.IDs
		w.WriteHeader(http.StatusNoContent)
	})
	r.Delete("/api/notifications/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted = chi.URLParam(r, "id")
		w.WriteHeader(http.StatusNoContent)
	})

	c, s := newTestClient(t, r)
	require.NoError(t, s.Login("token", api.User{ID: "u1"}))

	n, err := c.UnreadCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, n)

	require.NoError(t, c.MarkRead(ctx, "n1", "n2"))
	require.Equal(t, []string{"n1", "n2"}, marked)

	require.NoError(t, c.DeleteNotification(ctx, "n3"))
	require.Equal(t, "n3", deleted)
}
