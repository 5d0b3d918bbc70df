package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iftakhar005/talenthunt/internal/cache/memory"
	"github.com/iftakhar005/talenthunt/internal/entities"
	mm "github.com/iftakhar005/talenthunt/internal/middleware"
	"github.com/iftakhar005/talenthunt/internal/service"
	"github.com/iftakhar005/talenthunt/internal/service/mock"
	"github.com/iftakhar005/talenthunt/internal/storage"
)

var (
	student = &entities.User{ID: "u1", Name: "Student", Email: "s@uni.edu", Role: entities.StudentRole}
	admin   = &entities.User{ID: "a1", Name: "Admin", Email: "a@uni.edu", Role: entities.AdminRole}
)

func testVideo(timestamp time.Time) *entities.Content {
	return &entities.Content{
		ID:         "c1",
		Type:       entities.VideoType,
		Title:      "title",
		MediaURL:   "https://cdn/v.mp4",
		Owner:      entities.UserRef{ID: "u2", Name: "Owner"},
		Category:   "music",
		Engagement: 7,
		Upvotes:    3,
		Downvotes:  1,
		UserVote:   entities.Upvote,
		CreatedAt:  timestamp,
		UpdatedAt:  timestamp,
	}
}

func Test_listContent(t *testing.T) {
	timestamp := time.Unix(100, 0).UTC()

	r, err := http.NewRequest(http.MethodGet, "/videos?sort=top&page=2&limit=10&owner=u2", nil)
	require.NoError(t, err)
	r.Header.Set(identityHeader, "anon")

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mock.NewMockService(ctrl)

	s.EXPECT().ListContent(gomock.Any(), gomock.Any()).Do(func(_ context.Context, p *storage.ListContentParams) {
		assert.Equal(t, entities.VideoType, p.Type)
		assert.Equal(t, storage.UpvotesSortType, p.SortBy)
		assert.EqualValues(t, 10, p.Limit)
		assert.EqualValues(t, 10, p.Offset)
		assert.Equal(t, "u2", *p.Owner)
		assert.Equal(t, "anon", p.Voter)
	}).Return([]*entities.Content{testVideo(timestamp)}, nil)

	router := chi.NewRouter()
	srv := server{s: s}
	router.Get("/videos", srv.listContent(entities.VideoType))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `
{
   "items":[
      {
         "id":"c1",
         "type":"video",
         "title":"title",
         "mediaUrl":"https://cdn/v.mp4",
         "user":{"id":"u2","name":"Owner"},
         "category":"music",
         "tags":[],
         "views":7,
         "upvotes":3,
         "downvotes":1,
         "userVote":"upvote",
         "comments":[],
         "createdAt":"1970-01-01T00:01:40Z",
         "updatedAt":"1970-01-01T00:01:40Z"
      }
   ],
   "page":2,
   "limit":10
}
	`, w.Body.String())
}

func Test_listContent_InvalidQuery(t *testing.T) {
	tt := []struct {
		name  string
		query string
		body  string
	}{
		{name: "limit", query: "limit=1000", body: `{"error":"invalid request: limit should be in [1, 100]"}`},
		{name: "page", query: "page=0", body: `{"error":"invalid request: invalid page"}`},
		{name: "sort", query: "sort=random", body: `{"error":"invalid request: invalid sort"}`},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			router := chi.NewRouter()
			router.Get("/blogs", server{s: mock.NewMockService(ctrl)}.listContent(entities.BlogType))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/blogs?"+tc.query, nil))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

func Test_getContent(t *testing.T) {
	timestamp := time.Unix(3000, 0).UTC()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mock.NewMockService(ctrl)

	c := testVideo(timestamp)
	c.Type = entities.AudioType
	c.UserVote = entities.NoVote
	c.Tags = []string{"live"}
	c.Comments = []*entities.Comment{
		{ID: "cm1", ContentID: "c1", User: entities.UserRef{ID: "u1", Name: "Student"}, Text: "nice", CreatedAt: timestamp},
	}

	s.EXPECT().GetContent(gomock.Any(), entities.AudioType, "c1", "").Return(c, nil)
	s.EXPECT().GetContent(gomock.Any(), entities.AudioType, "c2", "").Return(nil, storage.ErrNotFound)

	router := chi.NewRouter()
	router.Get("/audios/{id}", server{s: s}.getContent(entities.AudioType))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/audios/c1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `
{
   "id":"c1",
   "type":"audio",
   "title":"title",
   "mediaUrl":"https://cdn/v.mp4",
   "user":{"id":"u2","name":"Owner"},
   "category":"music",
   "tags":["live"],
   "plays":7,
   "upvotes":3,
   "downvotes":1,
   "userVote":null,
   "comments":[
      {"id":"cm1","user":{"id":"u1","name":"Student"},"text":"nice","createdAt":"1970-01-01T00:50:00Z"}
   ],
   "createdAt":"1970-01-01T00:50:00Z",
   "updatedAt":"1970-01-01T00:50:00Z"
}
	`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/audios/c2", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"audio not found"}`, w.Body.String())
}

func Test_countEngagement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mock.NewMockService(ctrl)

	s.EXPECT().CountEngagement(gomock.Any(), entities.BlogType, "b1").Return(nil)

	router := chi.NewRouter()
	router.Post("/blogs/{id}/view", server{s: s}.countEngagement(entities.BlogType))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/blogs/b1/view", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"reads updated"}`, w.Body.String())
}

func Test_vote(t *testing.T) {
	tt := []struct {
		name   string
		voter  string
		body   string
		mock   func(s *mock.MockService)
		status int
		rbody  string
	}{
		{
			name:   "no_identity",
			body:   `{"voteType":"upvote"}`,
			status: http.StatusBadRequest,
			rbody:  `{"error":"x-user-id header is required"}`,
		},
		{
			name:   "invalid_type",
			voter:  "anon",
			body:   `{"voteType":"like"}`,
			status: http.StatusBadRequest,
			rbody:  `{"error":"invalid: voteType should be one of upvote, downvote, remove"}`,
		},
		{
			name:  "not_found",
			voter: "anon",
			body:  `{"voteType":"downvote"}`,
			mock: func(s *mock.MockService) {
				s.EXPECT().Vote(gomock.Any(), entities.VideoType, "c1", "anon", entities.Downvote).Return(nil, storage.ErrNotFound)
			},
			status: http.StatusNotFound,
			rbody:  `{"error":"video not found"}`,
		},
		{
			name:  "removed",
			voter: "anon",
			body:  `{"voteType":"remove"}`,
			mock: func(s *mock.MockService) {
				s.EXPECT().Vote(gomock.Any(), entities.VideoType, "c1", "anon", entities.RemoveVote).Return(&entities.VoteResult{
					Upvotes:   0,
					Downvotes: 2,
				}, nil)
			},
			status: http.StatusOK,
			rbody:  `{"upvotes":0,"downvotes":2,"userVote":null}`,
		},
		{
			name:  "upvote",
			voter: "anon",
			body:  `{"voteType":"upvote"}`,
			mock: func(s *mock.MockService) {
				s.EXPECT().Vote(gomock.Any(), entities.VideoType, "c1", "anon", entities.Upvote).Return(&entities.VoteResult{
					Upvotes:   1,
					Downvotes: 2,
					UserVote:  entities.Upvote,
				}, nil)
			},
			status: http.StatusOK,
			rbody:  `{"upvotes":1,"downvotes":2,"userVote":"upvote"}`,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			s := mock.NewMockService(ctrl)
			if tc.mock != nil {
				tc.mock(s)
			}

			router := chi.NewRouter()
			router.Post("/videos/{id}/vote", server{s: s}.vote(entities.VideoType))

			r := httptest.NewRequest(http.MethodPost, "/videos/c1/vote", strings.NewReader(tc.body))
			if tc.voter != "" {
				r.Header.Set(identityHeader, tc.voter)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.rbody, w.Body.String())
		})
	}
}

func Test_comment(t *testing.T) {
	timestamp := time.Unix(100, 0).UTC()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mock.NewMockService(ctrl)

	c := testVideo(timestamp)
	c.Comments = []*entities.Comment{
		{ID: "cm1", User: student.Ref(), Text: "great", CreatedAt: timestamp},
	}

	s.EXPECT().Comment(gomock.Any(), entities.VideoType, "c1", student, "great", "anon").Return(c, nil)

	router := chi.NewRouter()
	router.Post("/videos/{id}/comment", server{s: s}.comment(entities.VideoType))

	r := httptest.NewRequest(http.MethodPost, "/videos/c1/comment", strings.NewReader(`{"text":"great"}`))
	r.Header.Set(identityHeader, "anon")
	r = r.WithContext(mm.WithUser(r.Context(), student))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"comments":[{"id":"cm1","user":{"id":"u1","name":"Student"},"text":"great","createdAt":"1970-01-01T00:01:40Z"}]`)

	r = httptest.NewRequest(http.MethodPost, "/videos/c1/comment", strings.NewReader(`{"text":"  "}`))
	r = r.WithContext(mm.WithUser(r.Context(), student))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid: text is required"}`, w.Body.String())
}

func Test_submit(t *testing.T) {
	timestamp := time.Unix(100, 0).UTC()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mock.NewMockService(ctrl)

	s.EXPECT().Submit(gomock.Any(), &entities.ContentRequest{
		Type:      entities.BlogType,
		Title:     "title",
		Body:      "body",
		Tags:      []string{"go"},
		Submitter: student.Ref(),
	}).DoAndReturn(func(_ context.Context, r *entities.ContentRequest) (*entities.ContentRequest, error) {
		out := *r
		out.ID = "r1"
		out.Status = entities.PendingStatus
		out.CreatedAt = timestamp
		return &out, nil
	})

	router := chi.NewRouter()
	router.Post("/submissions", server{s: s}.submit)

	r := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(`{"type":"blogs","title":" title ","body":"body","tags":["go"]}`))
	r = r.WithContext(mm.WithUser(r.Context(), student))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `
{
   "id":"r1",
   "type":"blog",
   "title":"title",
   "body":"body",
   "tags":["go"],
   "user":{"id":"u1","name":"Student"},
   "status":"pending",
   "createdAt":"1970-01-01T00:01:40Z"
}
	`, w.Body.String())

	r = httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(`{"type":"video","title":"title"}`))
	r = r.WithContext(mm.WithUser(r.Context(), student))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid: media url is required"}`, w.Body.String())
}

func Test_moderation(t *testing.T) {
	timestamp := time.Unix(100, 0).UTC()

	tt := []struct {
		name   string
		path   string
		body   string
		mock   func(s *mock.MockService)
		status int
		rbody  string
	}{
		{
			name: "approve_not_found",
			path: "/admin/r1/approve",
			mock: func(s *mock.MockService) {
				s.EXPECT().Approve(gomock.Any(), "r1", admin).Return(nil, storage.ErrNotFound)
			},
			status: http.StatusNotFound,
			rbody:  `{"error":"request not found"}`,
		},
		{
			name: "approve_conflict",
			path: "/admin/r1/approve",
			mock: func(s *mock.MockService) {
				s.EXPECT().Approve(gomock.Any(), "r1", admin).Return(nil, storage.ErrConflict)
			},
			status: http.StatusConflict,
			rbody:  `{"error":"request is already reviewed"}`,
		},
		{
			name:   "reject_without_reason",
			path:   "/admin/r1/reject",
			body:   `{"reason":""}`,
			status: http.StatusBadRequest,
			rbody:  `{"error":"invalid: reason is required"}`,
		},
		{
			name: "reject",
			path: "/admin/r1/reject",
			body: `{"reason":"off-topic"}`,
			mock: func(s *mock.MockService) {
				s.EXPECT().Reject(gomock.Any(), "r1", "off-topic", admin).Return(&entities.ContentRequest{
					ID:           "r1",
					Type:         entities.VideoType,
					Title:        "title",
					Submitter:    student.Ref(),
					Status:       entities.RejectedStatus,
					RejectReason: "off-topic",
					ReviewedBy:   admin.ID,
					CreatedAt:    timestamp,
					ReviewedAt:   &timestamp,
				}, nil)
			},
			status: http.StatusOK,
			rbody: `{
				"id":"r1",
				"type":"video",
				"title":"title",
				"tags":[],
				"user":{"id":"u1","name":"Student"},
				"status":"rejected",
				"rejectReason":"off-topic",
				"createdAt":"1970-01-01T00:01:40Z",
				"reviewedAt":"1970-01-01T00:01:40Z"
			}`,
		},
		{
			name: "internal",
			path: "/admin/r1/approve",
			mock: func(s *mock.MockService) {
				s.EXPECT().Approve(gomock.Any(), "r1", admin).Return(nil, context.DeadlineExceeded)
			},
			status: http.StatusInternalServerError,
			rbody:  `{"error":"internal error"}`,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			s := mock.NewMockService(ctrl)
			if tc.mock != nil {
				tc.mock(s)
			}

			srv := server{s: s}
			router := chi.NewRouter()
			router.Post("/admin/{id}/approve", srv.approve)
			router.Post("/admin/{id}/reject", srv.reject)

			r := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
			r = r.WithContext(mm.WithUser(r.Context(), admin))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.rbody, w.Body.String())
		})
	}
}

func Test_notifications(t *testing.T) {
	timestamp := time.Unix(100, 0).UTC()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mock.NewMockService(ctrl)

	s.EXPECT().ListNotifications(gomock.Any(), "u1", uint16(5)).Return([]*entities.Notification{
		{
			ID:          "n1",
			Recipient:   "u1",
			Type:        entities.CommentNotification,
			Title:       "New comment",
			Message:     "Admin commented on your video",
			ContentType: entities.VideoType,
			ContentID:   "c1",
			CreatedAt:   timestamp,
		},
	}, nil)
	s.EXPECT().CountUnread(gomock.Any(), "u1").Return(1, nil)
	s.EXPECT().MarkRead(gomock.Any(), "u1", "n1", "n2").Return(nil)
	s.EXPECT().DeleteNotification(gomock.Any(), "u1", "n3").Return(storage.ErrNotFound)

	srv := server{s: s}
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(mm.WithUser(r.Context(), student)))
		})
	})
	router.Get("/notifications", srv.listNotifications)
	router.Get("/notifications/unread-count", srv.unreadCount)
	router.Post("/notifications/mark-read", srv.markRead)
	router.Delete("/notifications/{id}", srv.deleteNotification)

	tt := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		rbody  string
	}{
		{
			name:   "list",
			method: http.MethodGet,
			path:   "/notifications?limit=5",
			status: http.StatusOK,
			rbody: `{"notifications":[{
				"id":"n1",
				"type":"comment",
				"title":"New comment",
				"message":"Admin commented on your video",
				"contentType":"video",
				"contentId":"c1",
				"read":false,
				"createdAt":"1970-01-01T00:01:40Z"
			}]}`,
		},
		{
			name:   "unread",
			method: http.MethodGet,
			path:   "/notifications/unread-count",
			status: http.StatusOK,
			rbody:  `{"count":1}`,
		},
		{
			name:   "mark_read",
			method: http.MethodPost,
			path:   "/notifications/mark-read",
			body:   `{"ids":["n1","n2"]}`,
			status: http.StatusOK,
			rbody:  `{"message":"Notifications marked as read"}`,
		},
		{
			name:   "delete_missing",
			method: http.MethodDelete,
			path:   "/notifications/n3",
			status: http.StatusNotFound,
			rbody:  `{"error":"notification not found"}`,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body)))

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.rbody, w.Body.String())
		})
	}
}

func Test_auth(t *testing.T) {
	timestamp := time.Unix(100, 0).UTC()
	u := *student
	u.CreatedAt = timestamp

	tt := []struct {
		name   string
		path   string
		body   string
		mock   func(s *mock.MockService)
		status int
		rbody  string
	}{
		{
			name:   "send_invalid_email",
			path:   "/auth/send-verification",
			body:   `{"name":"n","email":"nope","password":"p"}`,
			status: http.StatusBadRequest,
			rbody:  `{"error":"invalid: malformed email"}`,
		},
		{
			name: "send_exists",
			path: "/auth/send-verification",
			body: `{"name":"n","email":"s@uni.edu","password":"p"}`,
			mock: func(s *mock.MockService) {
				s.EXPECT().SendVerification(gomock.Any(), &service.Registration{
					Name:     "n",
					Email:    "s@uni.edu",
					Password: "p",
				}).Return(storage.ErrAlreadyExists)
			},
			status: http.StatusConflict,
			rbody:  `{"error":"email is already registered"}`,
		},
		{
			name: "send",
			path: "/auth/send-verification",
			body: `{"name":"n","email":"s@uni.edu","password":"p","studentId":"42"}`,
			mock: func(s *mock.MockService) {
				s.EXPECT().SendVerification(gomock.Any(), gomock.Any()).Return(nil)
			},
			status: http.StatusOK,
			rbody:  `{"message":"Verification code sent"}`,
		},
		{
			name: "resend_missing",
			path: "/auth/resend-code",
			body: `{"email":"s@uni.edu"}`,
			mock: func(s *mock.MockService) {
				s.EXPECT().ResendCode(gomock.Any(), "s@uni.edu").Return(storage.ErrNotFound)
			},
			status: http.StatusNotFound,
			rbody:  `{"error":"no pending verification for the email"}`,
		},
		{
			name: "verify_invalid",
			path: "/auth/verify-code",
			body: `{"email":"s@uni.edu","code":"000000"}`,
			mock: func(s *mock.MockService) {
				s.EXPECT().VerifyCode(gomock.Any(), "s@uni.edu", "000000").Return(nil, "", service.ErrInvalidCode)
			},
			status: http.StatusBadRequest,
			rbody:  `{"error":"invalid or expired verification code"}`,
		},
		{
			name: "verify",
			path: "/auth/verify-code",
			body: `{"email":"s@uni.edu","code":"123456"}`,
			mock: func(s *mock.MockService) {
				s.EXPECT().VerifyCode(gomock.Any(), "s@uni.edu", "123456").Return(&u, "token", nil)
			},
			status: http.StatusOK,
			rbody: `{"token":"token","user":{
				"id":"u1",
				"name":"Student",
				"email":"s@uni.edu",
				"role":"student",
				"createdAt":"1970-01-01T00:01:40Z"
			}}`,
		},
		{
			name: "login_invalid",
			path: "/auth/login",
			body: `{"email":"s@uni.edu","password":"wrong"}`,
			mock: func(s *mock.MockService) {
				s.EXPECT().Login(gomock.Any(), "s@uni.edu", "wrong").Return(nil, "", service.ErrInvalidCredentials)
			},
			status: http.StatusUnauthorized,
			rbody:  `{"error":"invalid email or password"}`,
		},
		{
			name:   "malformed_json",
			path:   "/auth/login",
			body:   `{`,
			status: http.StatusBadRequest,
			rbody:  `{"error":"invalid request: unexpected EOF"}`,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			s := mock.NewMockService(ctrl)
			if tc.mock != nil {
				tc.mock(s)
			}

			srv := server{s: s}
			router := chi.NewRouter()
			router.Post("/auth/send-verification", srv.sendVerification)
			router.Post("/auth/resend-code", srv.resendCode)
			router.Post("/auth/verify-code", srv.verifyCode)
			router.Post("/auth/login", srv.login)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body)))

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.rbody, w.Body.String())
		})
	}
}

func Test_updateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mock.NewMockService(ctrl)

	s.EXPECT().UpdateProfile(gomock.Any(), "u1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, p *storage.ProfileUpdate) (*entities.User, error) {
			assert.Nil(t, p.Name)
			require.NotNil(t, p.Bio)
			u := *student
			u.Bio = *p.Bio
			return &u, nil
		})

	router := chi.NewRouter()
	router.Put("/auth/profile", server{s: s}.updateProfile)

	r := httptest.NewRequest(http.MethodPut, "/auth/profile", strings.NewReader(`{"bio":"hello"}`))
	r = r.WithContext(mm.WithUser(r.Context(), student))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"id":"u1",
		"name":"Student",
		"email":"s@uni.edu",
		"bio":"hello",
		"role":"student",
		"createdAt":"0001-01-01T00:00:00Z"
	}`, w.Body.String())
}

func Test_leaderboard(t *testing.T) {
	timestamp := time.Unix(100, 0).UTC()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mock.NewMockService(ctrl)

	c := testVideo(timestamp)
	c.UserVote = entities.NoVote

	s.EXPECT().Leaderboard(gomock.Any(), gomock.Any()).Do(func(_ context.Context, p *storage.LeaderboardParams) {
		require.NotNil(t, p.Type)
		assert.Equal(t, entities.VideoType, *p.Type)
		assert.EqualValues(t, 3, p.Limit)
	}).Return([]*entities.LeaderboardEntry{
		{Rank: 1, Content: *c, NetScore: 2},
	}, nil)

	router := chi.NewRouter()
	router.Get("/leaderboard", server{s: s}.leaderboard)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaderboard?type=videos&limit=3", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `{"entries":[{"rank":1,"netScore":2,"content":{"id":"c1","type":"video"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaderboard?type=podcast", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid request: unknown content type \"podcast\""}`, w.Body.String())
}

func TestSetupRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	s := mock.NewMockService(ctrl)

	s.EXPECT().Authenticate(gomock.Any(), "student").Return(student, nil).AnyTimes()
	s.EXPECT().Leaderboard(gomock.Any(), gomock.Any()).Return([]*entities.LeaderboardEntry{}, nil).Times(1)

	router := chi.NewRouter()
	SetupRouter(s, memory.NewStorage(), router, time.Second)

	tt := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{name: "me_unauthorized", method: http.MethodGet, path: "/api/auth/me", status: http.StatusUnauthorized},
		{name: "admin_forbidden", method: http.MethodGet, path: "/api/admin/pending", token: "student", status: http.StatusForbidden},
		{name: "me", method: http.MethodGet, path: "/api/auth/me", token: "student", status: http.StatusOK},
		{name: "leaderboard", method: http.MethodGet, path: "/api/leaderboard", status: http.StatusOK},
		{name: "leaderboard_cached", method: http.MethodGet, path: "/api/leaderboard", status: http.StatusOK},
		{name: "unknown", method: http.MethodGet, path: "/api/podcasts", status: http.StatusNotFound},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				r.Header.Set("Authorization", "Bearer "+tc.token)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			assert.Equal(t, tc.status, w.Code)
		})
	}
}
