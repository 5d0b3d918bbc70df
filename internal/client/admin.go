package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/iftakhar005/talenthunt/internal/api"
)

const pendingPath = "/admin/pending"

// Pending returns moderation queue.
func (c *Client) Pending(ctx context.Context) (*api.PendingResponse, error) {
	var out api.PendingResponse
	if err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     pendingPath,
		auth:     bearerAuth,
		fallback: "Failed to load pending submissions",
	}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Approve publishes the request and returns created content.
func (c *Client) Approve(ctx context.Context, id string) (*api.Content, error) {
	var out api.Content
	if err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     fmt.Sprintf("/admin/%s/approve", url.PathEscape(id)),
		auth:     bearerAuth,
		fallback: "Failed to approve submission",
	}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Reject marks the request rejected with the reason.
func (c *Client) Reject(ctx context.Context, id, reason string) (*api.ContentRequest, error) {
	var out api.ContentRequest
	if err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     fmt.Sprintf("/admin/%s/reject", url.PathEscape(id)),
		body:     api.RejectRequest{Reason: reason},
		auth:     bearerAuth,
		fallback: "Failed to reject submission",
	}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
