// Package server Talent Hunt
//
// The Talent Hunt API lets students publish videos, audio and blogs which the public browses, votes and comments on.
//
//     Schemes: http, https
//     BasePath: /api
//     Version: 1.0.0
//
//     Produces:
//     - application/json
//     Consumes:
//     - application/json
//
// swagger:meta
package server

import (
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	"github.com/iftakhar005/talenthunt/internal/cache"
	"github.com/iftakhar005/talenthunt/internal/entities"
	mm "github.com/iftakhar005/talenthunt/internal/middleware"
	"github.com/iftakhar005/talenthunt/internal/service"
)

//go:generate swagger generate spec -t swagger -m -c . -o ../../static/swagger.json

const maxBodySize = 1 << 20

const leaderboardTTL = time.Minute

// identityHeader carries anonymous session identity used for votes.
const identityHeader = "x-user-id"

type server struct {
	s service.Service
}

// SetupRouter setups handlers to chi router.
func SetupRouter(s service.Service, c cache.Storage, r chi.Router, timeout time.Duration) {
	r.Use(
		middleware.RequestID,
		mm.Logger,
		middleware.StripSlashes,
		cors.AllowAll().Handler,
		middleware.Recoverer,
		middleware.Timeout(timeout),
		mm.BodyLimiter(maxBodySize),
	)

	srv := server{
		s: s,
	}

	auth := mm.Auth(s)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/send-verification", srv.sendVerification)
			r.Post("/verify-code", srv.verifyCode)
			r.Post("/resend-code", srv.resendCode)
			r.Post("/login", srv.login)
			r.With(auth).Get("/me", srv.me)
			r.With(auth).Put("/profile", srv.updateProfile)
		})

		for _, t := range entities.ContentTypes {
			t := t
			r.Route("/"+t.Collection(), func(r chi.Router) {
				r.Get("/", srv.listContent(t))
				r.Get("/{id}", srv.getContent(t))
				r.Post("/{id}/"+t.EngagementAction(), srv.countEngagement(t))
				r.Post("/{id}/vote", srv.vote(t))
				r.With(auth).Post("/{id}/comment", srv.comment(t))
			})
		}

		r.With(auth).Post("/submissions", srv.submit)

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth, mm.AdminOnly)
			r.Get("/pending", srv.listPending)
			r.Post("/{id}/approve", srv.approve)
			r.Post("/{id}/reject", srv.reject)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(auth)
			r.Get("/", srv.listNotifications)
			r.Get("/unread-count", srv.unreadCount)
			r.Post("/mark-read", srv.markRead)
			r.Delete("/{id}", srv.deleteNotification)
		})

		r.Get("/leaderboard", mm.Cached(c, leaderboardTTL, srv.leaderboard))
	})
}
