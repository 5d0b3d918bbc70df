package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/iftakhar005/talenthunt/internal/api"
)

// Notifications returns inbox of the logged in user, newest first.
func (c *Client) Notifications(ctx context.Context) (*api.NotificationsResponse, error) {
	var out api.NotificationsResponse
	if err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/notifications",
		auth:     bearerAuth,
		fallback: "Failed to load notifications",
	}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// UnreadCount ...
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out api.UnreadCountResponse
	if err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/notifications/unread-count",
		auth:     bearerAuth,
		fallback: "Failed to load unread count",
	}, &out); err != nil {
		return 0, err
	}

	return *out.Count, nil
}

// MarkRead marks notifications as read, no ids means all of them.
func (c *Client) MarkRead(ctx context.Context, ids ...string) error {
	return c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/notifications/mark-read",
		body:     api.MarkReadRequest{IDs: ids},
		auth:     bearerAuth,
		fallback: "Failed to mark notifications as read",
	}, nil)
}

// DeleteNotification ...
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.do(ctx, request{
		method:   http.MethodDelete,
		path:     "/notifications/" + url.PathEscape(id),
		auth:     bearerAuth,
		fallback: "Failed to delete notification",
	}, nil)
}
