// Package client is typed data-access client of the talent hunt REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iftakhar005/talenthunt/internal/api"
	"github.com/iftakhar005/talenthunt/internal/cache"
	"github.com/iftakhar005/talenthunt/internal/entities"
	"github.com/iftakhar005/talenthunt/internal/session"
)

var log = logrus.WithField("layer", "client")

const maxResponseSize = 10 << 20

// IdentityHeader carries anonymous voting identity.
const IdentityHeader = "x-user-id"

var (
	// ErrMalformedResponse is returned when response body can not be decoded or fails validation.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrLoginRequired is returned without sending a request when a bearer token is needed but absent.
	ErrLoginRequired = errors.New("login required")
	// ErrSessionExpired is returned when the backend rejected the stored token and it was cleared.
	ErrSessionExpired = errors.New("session expired, please log in again")
)

// Error is non-2xx response of the backend.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// IsUnauthorized reports whether err is 401 response.
func IsUnauthorized(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is 404 response.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == http.StatusNotFound
}

// authMode is a set of credentials required by a request, zero means none.
type authMode int

const (
	bearerAuth authMode = 1 << iota
	identityAuth
)

type request struct {
	method   string
	path     string
	query    url.Values
	body     interface{}
	auth     authMode
	fallback string
	cached   bool
}

// Client is safe for concurrent use.
type Client struct {
	baseURL  string
	http     *http.Client
	sess     *session.Session
	cache    cache.Storage
	cacheTTL time.Duration
}

// Option ...
type Option func(c *Client)

// WithHTTPClient replaces default http client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithTimeout sets timeout of every request, zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithCache enables caching of GET responses keyed by resource path.
func WithCache(s cache.Storage, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = s
		c.cacheTTL = ttl
	}
}

// New creates new instance of Client. baseURL should include api prefix, e.g. http://localhost:5000/api.
func New(baseURL string, s *session.Session, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		sess:    s,
	}

	for _, o := range opts {
		o(c)
	}

	return c
}

// Session returns session the client acts on behalf of.
func (c *Client) Session() *session.Session {
	return c.sess
}

func cacheKey(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// invalidate drops cached item, list pages of its collection and the leaderboard,
// since all of them carry the item counters.
func (c *Client) invalidate(ctx context.Context, t entities.ContentType) {
	if c.cache != nil {
		c.cache.DeletePrefix(ctx, "/"+t.Collection(), "/leaderboard")
	}
}

func (c *Client) do(ctx context.Context, r request, out api.Validator) error {
	if v, ok := r.body.(api.Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	key := cacheKey(r.path, r.query)
	useCache := r.cached && c.cache != nil && r.method == http.MethodGet

	if useCache {
		if b := c.cache.Get(ctx, key); b != nil {
			return decode(b, out)
		}
	}

	req, err := c.newRequest(ctx, r)
	if err != nil {
		return err
	}

	l := log.WithField("method", r.method).WithField("path", r.path)

	resp, err := c.http.Do(req)
	if err != nil {
		l.WithError(err).Debug("request failed")
		return fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	b, err := ioutil.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	l.WithField("status", resp.StatusCode).Debug("request done")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp.StatusCode, b, r.fallback)
	}

	if err := decode(b, out); err != nil {
		return err
	}

	if useCache {
		c.cache.Set(ctx, key, b, c.cacheTTL)
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, r request) (*http.Request, error) {
	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token := c.sess.Token()
	if r.auth&bearerAuth != 0 && token == "" {
		return nil, ErrLoginRequired
	}
	// bearer is attached when present so the backend can personalize public reads
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if r.auth&identityAuth != 0 {
		id, err := c.sess.Identity()
		if err != nil {
			return nil, fmt.Errorf("failed to get session identity: %w", err)
		}
		req.Header.Set(IdentityHeader, id)
	}

	return req, nil
}

func newError(status int, b []byte, fallback string) error {
	var body api.Error
	msg := fallback
	if err := json.Unmarshal(b, &body); err == nil && body.Text() != "" {
		msg = body.Text()
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	return &Error{
		Status:  status,
		Message: msg,
	}
}

func decode(b []byte, out api.Validator) error {
	if out == nil {
		return nil
	}

	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedResponse, err.Error())
	}

	if err := out.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedResponse, err.Error())
	}

	return nil
}
