package engagement

import (
	"context"
	"strings"
	"sync"

	"github.com/iftakhar005/talenthunt/internal/api"
	"github.com/iftakhar005/talenthunt/internal/client"
	"github.com/iftakhar005/talenthunt/internal/entities"
)

// Commenter holds local copy of a content item and appends comments to it through the server.
// The copy is replaced by the server reply, comments are never inserted locally.
type Commenter struct {
	c    CommentClient
	auth Authenticator

	mu   sync.RWMutex
	item api.Content
}

// NewCommenter ...
func NewCommenter(c CommentClient, auth Authenticator, item api.Content) *Commenter {
	return &Commenter{
		c:    c,
		auth: auth,
		item: item,
	}
}

// Item returns local copy of the content.
func (c *Commenter) Item() api.Content {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.item
}

// Post sends the comment and replaces local copy with the reply.
// Blank text and missing credentials fail without a request.
func (c *Commenter) Post(ctx context.Context, text string) (api.Content, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return c.Item(), ErrEmptyComment
	}

	if !c.auth.IsLoggedIn() {
		return c.Item(), client.ErrLoginRequired
	}

	current := c.Item()

	t, err := entities.ParseContentType(current.Type)
	if err != nil {
		return current, err
	}

	resp, err := c.c.Comment(ctx, t, current.ID, text)
	if err != nil {
		return current, err
	}

	c.mu.Lock()
	if resp.Content != nil {
		c.item = *resp.Content
	} else {
		c.item.Comments = resp.Comments
	}
	item := c.item
	c.mu.Unlock()

	return item, nil
}
