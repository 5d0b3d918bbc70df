package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iftakhar005/talenthunt/internal/api"
)

// SendVerification starts registration, backend sends a code to the e-mail.
func (c *Client) SendVerification(ctx context.Context, r api.SendVerificationRequest) (*api.MessageResponse, error) {
	var out api.MessageResponse
	if err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/auth/send-verification",
		body:     r,
		fallback: "Failed to send verification code",
	}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// VerifyCode finishes registration and logs the user in.
func (c *Client) VerifyCode(ctx context.Context, email, code string) (*api.AuthResponse, error) {
	var out api.AuthResponse
	if err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/auth/verify-code",
		body:     api.VerifyCodeRequest{Email: email, Code: code},
		fallback: "Verification failed",
	}, &out); err != nil {
		return nil, err
	}

	if err := c.sess.Login(out.Token, out.User); err != nil {
		return nil, fmt.Errorf("failed to store credentials: %w", err)
	}

	return &out, nil
}

// ResendCode ...
func (c *Client) ResendCode(ctx context.Context, email string) (*api.MessageResponse, error) {
	var out api.MessageResponse
	if err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/auth/resend-code",
		body:     api.ResendCodeRequest{Email: email},
		fallback: "Failed to resend code",
	}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Login authenticates the user and stores token and profile in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	var out api.AuthResponse
	if err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/auth/login",
		body:     api.LoginRequest{Email: email, Password: password},
		fallback: "Login failed",
	}, &out); err != nil {
		return nil, err
	}

	if err := c.sess.Login(out.Token, out.User); err != nil {
		return nil, fmt.Errorf("failed to store credentials: %w", err)
	}

	return &out, nil
}

// Logout forgets credentials locally, the backend keeps no session state.
func (c *Client) Logout() error {
	return c.sess.Logout()
}

// Me returns profile of the logged in user and refreshes the cached one.
func (c *Client) Me(ctx context.Context) (*api.User, error) {
	var out api.User
	if err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/auth/me",
		auth:     bearerAuth,
		fallback: "Failed to load profile",
	}, &out); err != nil {
		return nil, err
	}

	if err := c.sess.SetUser(out); err != nil {
		return nil, fmt.Errorf("failed to store profile: %w", err)
	}

	return &out, nil
}

// UpdateProfile ...
func (c *Client) UpdateProfile(ctx context.Context, r api.ProfileUpdateRequest) (*api.User, error) {
	var out api.User
	if err := c.do(ctx, request{
		method:   http.MethodPut,
		path:     "/auth/profile",
		body:     r,
		auth:     bearerAuth,
		fallback: "Failed to update profile",
	}, &out); err != nil {
		return nil, err
	}

	if err := c.sess.SetUser(out); err != nil {
		return nil, fmt.Errorf("failed to store profile: %w", err)
	}

	return &out, nil
}
