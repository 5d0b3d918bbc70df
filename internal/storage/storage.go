// Package storage contains a storage interface.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/iftakhar005/talenthunt/internal/entities"
)

//go:generate mockgen -destination=./mock/storage.go -package=mock -source=storage.go

var (
	// ErrNotFound ...
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists ...
	ErrAlreadyExists = errors.New("already exists")
	// ErrConflict is returned when entity is not in a state which allows the change.
	ErrConflict = errors.New("conflict")
)

// Storage provides methods for interacting with database.
type Storage interface {
	InTx(ctx context.Context, f func(s Storage) error) error

	CreateUser(ctx context.Context, u *entities.User) error
	GetUser(ctx context.Context, id string) (*entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdateProfile(ctx context.Context, id string, p *ProfileUpdate) (*entities.User, error)

	SetVerification(ctx context.Context, v *entities.Verification) error
	GetVerification(ctx context.Context, email string) (*entities.Verification, error)
	DeleteVerification(ctx context.Context, email string) error
	DeleteExpiredVerifications(ctx context.Context, before time.Time) (int64, error)

	ListContent(ctx context.Context, p *ListContentParams) ([]*entities.Content, error)
	GetContent(ctx context.Context, t entities.ContentType, id string, voter string) (*entities.Content, error)
	CreateContent(ctx context.Context, c *entities.Content) error
	IncrementEngagement(ctx context.Context, t entities.ContentType, id string) error

	SetVote(ctx context.Context, contentID, voter string, v entities.VoteType, timestamp time.Time) error
	GetVotes(ctx context.Context, contentID, voter string) (*entities.VoteResult, error)

	CreateComment(ctx context.Context, c *entities.Comment) error
	ListComments(ctx context.Context, contentID string) ([]*entities.Comment, error)

	CreateRequest(ctx context.Context, r *entities.ContentRequest) error
	GetRequest(ctx context.Context, id string) (*entities.ContentRequest, error)
	ListRequests(ctx context.Context, status entities.RequestStatus) ([]*entities.ContentRequest, error)
	ResolveRequest(ctx context.Context, p *ResolveRequestParams) error

	CreateNotification(ctx context.Context, n *entities.Notification) error
	ListNotifications(ctx context.Context, recipient string, limit uint16) ([]*entities.Notification, error)
	CountUnread(ctx context.Context, recipient string) (int, error)
	MarkRead(ctx context.Context, recipient string, ids ...string) error
	DeleteNotification(ctx context.Context, recipient, id string) error

	Leaderboard(ctx context.Context, p *LeaderboardParams) ([]*entities.LeaderboardEntry, error)
}

// SortType ...
type SortType string

const (
	// NewestSortType ...
	NewestSortType SortType = "newest"
	// PopularSortType orders by net score.
	PopularSortType SortType = "popular"
	// EngagementSortType orders by views, plays or reads.
	EngagementSortType SortType = "views"
	// UpvotesSortType ...
	UpvotesSortType SortType = "top"
)

// ListContentParams ...
type ListContentParams struct {
	Type   entities.ContentType
	SortBy SortType
	Limit  uint16
	Offset uint32
	Owner  *string
	Voter  string
}

// ProfileUpdate contains fields to be changed, nil fields are left untouched.
type ProfileUpdate struct {
	Name       *string
	Department *string
	Bio        *string
	Avatar     *string
}

// ResolveRequestParams moves pending request to approved or rejected state.
type ResolveRequestParams struct {
	ID         string
	Status     entities.RequestStatus
	Reason     string
	ContentID  string
	ReviewedBy string
	ReviewedAt time.Time
}

// LeaderboardParams ...
type LeaderboardParams struct {
	Type  *entities.ContentType
	Limit uint16
}
