// Package service contains interface for service business-logic.
package service

import (
	"context"
	"errors"

	"github.com/iftakhar005/talenthunt/internal/entities"
	"github.com/iftakhar005/talenthunt/internal/storage"
)

//go:generate mockgen -destination=./mock/service.go -package=mock -source=service.go

var (
	// ErrInvalidCredentials is returned when email or password doesn't match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidCode is returned when verification code is wrong or expired.
	ErrInvalidCode = errors.New("invalid or expired verification code")
	// ErrInvalidToken is returned when bearer token can not be verified.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrEmptyComment ...
	ErrEmptyComment = errors.New("comment text is empty")
)

// Registration contains data of a user waiting for e-mail verification.
type Registration struct {
	Name       string
	Email      string
	StudentID  string
	Department string
	Password   string
}

// Service ...
type Service interface {
	SendVerification(ctx context.Context, r *Registration) error
	ResendCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (*entities.User, string, error)
	Login(ctx context.Context, email, password string) (*entities.User, string, error)
	Authenticate(ctx context.Context, token string) (*entities.User, error)
	UpdateProfile(ctx context.Context, userID string, p *storage.ProfileUpdate) (*entities.User, error)
	PurgeExpiredVerifications(ctx context.Context) (int64, error)

	ListContent(ctx context.Context, p *storage.ListContentParams) ([]*entities.Content, error)
	GetContent(ctx context.Context, t entities.ContentType, id, voter string) (*entities.Content, error)
	CountEngagement(ctx context.Context, t entities.ContentType, id string) error
	Vote(ctx context.Context, t entities.ContentType, id, voter string, action entities.VoteType) (*entities.VoteResult, error)
	Comment(ctx context.Context, t entities.ContentType, id string, author *entities.User, text, voter string) (*entities.Content, error)

	Submit(ctx context.Context, r *entities.ContentRequest) (*entities.ContentRequest, error)
	ListPending(ctx context.Context) ([]*entities.ContentRequest, error)
	Approve(ctx context.Context, id string, admin *entities.User) (*entities.Content, error)
	Reject(ctx context.Context, id, reason string, admin *entities.User) (*entities.ContentRequest, error)

	ListNotifications(ctx context.Context, recipient string, limit uint16) ([]*entities.Notification, error)
	CountUnread(ctx context.Context, recipient string) (int, error)
	MarkRead(ctx context.Context, recipient string, ids ...string) error
	DeleteNotification(ctx context.Context, recipient, id string) error

	Leaderboard(ctx context.Context, p *storage.LeaderboardParams) ([]*entities.LeaderboardEntry, error)
}
