// Package engagement contains client-side engagement components: anonymous vote toggle,
// comment append and count-once view/play guard.
package engagement

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/iftakhar005/talenthunt/internal/api"
	"github.com/iftakhar005/talenthunt/internal/entities"
)

//go:generate mockgen -destination=./mock/engagement.go -package=mock -source=engagement.go

var log = logrus.WithField("layer", "engagement")

var (
	// ErrInvalidDirection is returned when vote direction is neither upvote nor downvote.
	ErrInvalidDirection = errors.New("vote direction should be upvote or downvote")
	// ErrEmptyComment is returned without sending a request when comment text is blank.
	ErrEmptyComment = errors.New("comment text is empty")
)

// VoteClient sends resolved vote actions.
type VoteClient interface {
	Vote(ctx context.Context, t entities.ContentType, id string, action entities.VoteType) (*api.VoteResponse, error)
}

// CommentClient appends comments.
type CommentClient interface {
	Comment(ctx context.Context, t entities.ContentType, id, text string) (*api.CommentResponse, error)
}

// Counter increments engagement counter of content.
type Counter interface {
	CountEngagement(ctx context.Context, t entities.ContentType, id string) error
}

// Authenticator tells whether a bearer credential is available.
type Authenticator interface {
	IsLoggedIn() bool
}
