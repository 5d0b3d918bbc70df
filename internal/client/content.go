package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/iftakhar005/talenthunt/internal/api"
	"github.com/iftakhar005/talenthunt/internal/entities"
)

// ListParams ...
type ListParams struct {
	Limit int
	Page  int
	Sort  string
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	return q
}

func contentPath(t entities.ContentType, id string) string {
	return fmt.Sprintf("/%s/%s", t.Collection(), url.PathEscape(id))
}

// ListContent returns a page of published content of the type.
func (c *Client) ListContent(ctx context.Context, t entities.ContentType, p ListParams) (*api.ListContentResponse, error) {
	var out api.ListContentResponse
	if err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/" + t.Collection(),
		query:    p.query(),
		fallback: fmt.Sprintf("Failed to load %s", t.Collection()),
		cached:   true,
	}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Dashboard fetches first page of every content type concurrently.
func (c *Client) Dashboard(ctx context.Context, p ListParams) (map[entities.ContentType][]api.Content, error) {
	res := make([]*api.ListContentResponse, len(entities.ContentTypes))

	gr, ctx := errgroup.WithContext(ctx)
	for i := range entities.ContentTypes {
		i := i
		gr.Go(func() error {
			v, err := c.ListContent(ctx, entities.ContentTypes[i], p)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", entities.ContentTypes[i].Collection(), err)
			}
			res[i] = v
			return nil
		})
	}

	if err := gr.Wait(); err != nil {
		return nil, err
	}

	out := make(map[entities.ContentType][]api.Content, len(res))
	for i, v := range res {
		out[entities.ContentTypes[i]] = v.Items
	}

	return out, nil
}

// GetContent returns a single item with the caller's vote.
func (c *Client) GetContent(ctx context.Context, t entities.ContentType, id string) (*api.Content, error) {
	var out api.Content
	if err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     contentPath(t, id),
		auth:     identityAuth,
		fallback: fmt.Sprintf("Failed to load %s", t),
		cached:   true,
	}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// CountEngagement increments view or play counter of the item.
func (c *Client) CountEngagement(ctx context.Context, t entities.ContentType, id string) error {
	p := contentPath(t, id)

	if err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     p + "/" + t.EngagementAction(),
		fallback: fmt.Sprintf("Failed to count %s", t.EngagementAction()),
	}, nil); err != nil {
		return err
	}

	c.invalidate(ctx, t)

	return nil
}

// Vote sends resolved vote action, action should be upvote, downvote or remove.
func (c *Client) Vote(ctx context.Context, t entities.ContentType, id string, action entities.VoteType) (*api.VoteResponse, error) {
	p := contentPath(t, id)

	var out api.VoteResponse
	if err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     p + "/vote",
		body:     api.VoteRequest{VoteType: string(action)},
		auth:     identityAuth,
		fallback: "Failed to vote",
	}, &out); err != nil {
		return nil, err
	}

	c.invalidate(ctx, t)

	return &out, nil
}

// Comment appends a comment on behalf of the logged in user. The voting identity is sent
// too, so the returned item carries the vote of the viewer.
func (c *Client) Comment(ctx context.Context, t entities.ContentType, id, text string) (*api.CommentResponse, error) {
	p := contentPath(t, id)

	var out api.CommentResponse
	if err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     p + "/comment",
		body:     api.CommentRequest{Text: strings.TrimSpace(text)},
		auth:     bearerAuth | identityAuth,
		fallback: "Failed to post comment",
	}, &out); err != nil {
		return nil, err
	}

	c.invalidate(ctx, t)

	return &out, nil
}

// Submit sends content for moderation. Rejected token is cleared from the session.
func (c *Client) Submit(ctx context.Context, r api.SubmissionRequest) (*api.ContentRequest, error) {
	var out api.ContentRequest
	if err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/submissions",
		body:     r,
		auth:     bearerAuth,
		fallback: "Failed to submit content",
	}, &out); err != nil {
		if IsUnauthorized(err) {
			if lerr := c.sess.Logout(); lerr != nil {
				log.WithError(lerr).Error("failed to clear expired session")
			}
			return nil, fmt.Errorf("%w: %s", ErrSessionExpired, err.Error())
		}
		return nil, err
	}

	return &out, nil
}

// Leaderboard returns content ranked by net score, empty type means all types.
func (c *Client) Leaderboard(ctx context.Context, t entities.ContentType, limit int) (*api.LeaderboardResponse, error) {
	q := url.Values{}
	if t != "" {
		q.Set("type", string(t))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out api.LeaderboardResponse
	if err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/leaderboard",
		query:    q,
		fallback: "Failed to load leaderboard",
		cached:   true,
	}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// IsExpired reports whether the error means that user has to log in again.
func IsExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired) || errors.Is(err, ErrLoginRequired)
}
