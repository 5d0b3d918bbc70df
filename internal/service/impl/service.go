// Package impl is implementation of service interface.
package impl

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/iftakhar005/talenthunt/internal/entities"
	"github.com/iftakhar005/talenthunt/internal/service"
	"github.com/iftakhar005/talenthunt/internal/storage"
)

var log = logrus.WithField("layer", "service").WithField("package", "impl")

// Config ...
type Config struct {
	JWTSecret  []byte
	TokenTTL   time.Duration
	CodeTTL    time.Duration
	BcryptCost int
}

// srv implements service.Service.
type srv struct {
	s storage.Storage
	c Config

	now     func() time.Time
	newID   func() string
	newCode func() (string, error)
}

// New creates new instance of service.
func New(s storage.Storage, c Config) service.Service {
	if c.BcryptCost == 0 {
		c.BcryptCost = bcrypt.DefaultCost
	}

	return &srv{
		s:       s,
		c:       c,
		now:     time.Now,
		newID:   uuid.NewString,
		newCode: generateCode,
	}
}

func (s *srv) SendVerification(ctx context.Context, r *service.Registration) error {
	email := normalizeEmail(r.Email)

	if _, err := s.s.GetUserByEmail(ctx, email); err == nil {
		return fmt.Errorf("user %s: %w", email, storage.ErrAlreadyExists)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to get user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), s.c.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := s.newCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	now := s.now()
	v := &entities.Verification{
		Email:        email,
		Name:         strings.TrimSpace(r.Name),
		StudentID:    strings.TrimSpace(r.StudentID),
		Department:   strings.TrimSpace(r.Department),
		PasswordHash: string(hash),
		Code:         code,
		ExpiresAt:    now.Add(s.c.CodeTTL),
		CreatedAt:    now,
	}

	if err := s.s.SetVerification(ctx, v); err != nil {
		return fmt.Errorf("failed to save verification: %w", err)
	}

	deliver(v)

	return nil
}

func (s *srv) ResendCode(ctx context.Context, email string) error {
	v, err := s.s.GetVerification(ctx, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("failed to get verification: %w", err)
	}

	if v.Code, err = s.newCode(); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	v.ExpiresAt = s.now().Add(s.c.CodeTTL)

	if err := s.s.SetVerification(ctx, v); err != nil {
		return fmt.Errorf("failed to save verification: %w", err)
	}

	deliver(v)

	return nil
}

func (s *srv) VerifyCode(ctx context.Context, email, code string) (*entities.User, string, error) {
	v, err := s.s.GetVerification(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", service.ErrInvalidCode
		}
		return nil, "", fmt.Errorf("failed to get verification: %w", err)
	}

	if v.Code != strings.TrimSpace(code) || !s.now().Before(v.ExpiresAt) {
		return nil, "", service.ErrInvalidCode
	}

	u := &entities.User{
		ID:           s.newID(),
		Name:         v.Name,
		Email:        v.Email,
		StudentID:    v.StudentID,
		Department:   v.Department,
		Role:         entities.StudentRole,
		PasswordHash: v.PasswordHash,
		CreatedAt:    s.now(),
	}

	if err := s.s.InTx(ctx, func(tx storage.Storage) error {
		if err := tx.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		if err := tx.DeleteVerification(ctx, v.Email); err != nil {
			return fmt.Errorf("failed to delete verification: %w", err)
		}

		return nil
	}); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

func (s *srv) Login(ctx context.Context, email, password string) (*entities.User, string, error) {
	u, err := s.s.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", service.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", service.ErrInvalidCredentials
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

func (s *srv) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	t, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return s.c.JWTSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !t.Valid {
		return nil, service.ErrInvalidToken
	}

	sub, err := t.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil, service.ErrInvalidToken
	}

	u, err := s.s.GetUser(ctx, sub)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, service.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (s *srv) UpdateProfile(ctx context.Context, userID string, p *storage.ProfileUpdate) (*entities.User, error) {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		p.Name = &name
	}

	u, err := s.s.UpdateProfile(ctx, userID, p)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return u, nil
}

func (s *srv) PurgeExpiredVerifications(ctx context.Context) (int64, error) {
	n, err := s.s.DeleteExpiredVerifications(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired verifications: %w", err)
	}

	return n, nil
}

func (s *srv) ListContent(ctx context.Context, p *storage.ListContentParams) ([]*entities.Content, error) {
	c, err := s.s.ListContent(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	return c, nil
}

func (s *srv) GetContent(ctx context.Context, t entities.ContentType, id, voter string) (*entities.Content, error) {
	c, err := s.s.GetContent(ctx, t, id, voter)
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %w", err)
	}

	if c.Comments, err = s.s.ListComments(ctx, c.ID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return c, nil
}

func (s *srv) CountEngagement(ctx context.Context, t entities.ContentType, id string) error {
	if err := s.s.IncrementEngagement(ctx, t, id); err != nil {
		return fmt.Errorf("failed to increment %s: %w", t.CounterName(), err)
	}

	return nil
}

func (s *srv) Vote(ctx context.Context, t entities.ContentType, id, voter string,
	action entities.VoteType) (*entities.VoteResult, error) {
	v := action
	if action == entities.RemoveVote {
		v = entities.NoVote
	} else if !action.Valid() {
		return nil, fmt.Errorf("unknown vote action %q", action)
	}

	var res *entities.VoteResult

	if err := s.s.InTx(ctx, func(tx storage.Storage) error {
		if _, err := tx.GetContent(ctx, t, id, voter); err != nil {
			return fmt.Errorf("failed to get content: %w", err)
		}

		if err := tx.SetVote(ctx, id, voter, v, s.now()); err != nil {
			return fmt.Errorf("failed to set vote: %w", err)
		}

		var err error
		if res, err = tx.GetVotes(ctx, id, voter); err != nil {
			return fmt.Errorf("failed to get votes: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return res, nil
}

func (s *srv) Comment(ctx context.Context, t entities.ContentType, id string, author *entities.User,
	text, voter string) (*entities.Content, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, service.ErrEmptyComment
	}

	if err := s.s.InTx(ctx, func(tx storage.Storage) error {
		c, err := tx.GetContent(ctx, t, id, voter)
		if err != nil {
			return fmt.Errorf("failed to get content: %w", err)
		}

		now := s.now()

		if err := tx.CreateComment(ctx, &entities.Comment{
			ID:        s.newID(),
			ContentID: c.ID,
			User:      author.Ref(),
			Text:      text,
			CreatedAt: now,
		}); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}

		if c.Owner.ID == author.ID {
			return nil
		}

		if err := tx.CreateNotification(ctx, &entities.Notification{
			ID:          s.newID(),
			Recipient:   c.Owner.ID,
			Type:        entities.CommentNotification,
			Title:       "New comment",
			Message:     fmt.Sprintf("%s commented on %q", author.Name, c.Title),
			ContentType: c.Type,
			ContentID:   c.ID,
			CreatedAt:   now,
		}); err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return s.GetContent(ctx, t, id, voter)
}

func (s *srv) Submit(ctx context.Context, r *entities.ContentRequest) (*entities.ContentRequest, error) {
	r.ID = s.newID()
	r.Status = entities.PendingStatus
	r.CreatedAt = s.now()

	if err := s.s.CreateRequest(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return r, nil
}

func (s *srv) ListPending(ctx context.Context) ([]*entities.ContentRequest, error) {
	r, err := s.s.ListRequests(ctx, entities.PendingStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	return r, nil
}

func (s *srv) Approve(ctx context.Context, id string, admin *entities.User) (*entities.Content, error) {
	var c *entities.Content

	if err := s.s.InTx(ctx, func(tx storage.Storage) error {
		r, err := pendingRequest(ctx, tx, id)
		if err != nil {
			return err
		}

		now := s.now()
		c = &entities.Content{
			ID:           s.newID(),
			Type:         r.Type,
			Title:        r.Title,
			Description:  r.Description,
			Body:         r.Body,
			MediaURL:     r.MediaURL,
			ThumbnailURL: r.ThumbnailURL,
			Owner:        r.Submitter,
			Category:     r.Category,
			Tags:         r.Tags,
			Comments:     []*entities.Comment{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := tx.CreateContent(ctx, c); err != nil {
			return fmt.Errorf("failed to create content: %w", err)
		}

		if err := tx.ResolveRequest(ctx, &storage.ResolveRequestParams{
			ID:         r.ID,
			Status:     entities.ApprovedStatus,
			ContentID:  c.ID,
			ReviewedBy: admin.ID,
			ReviewedAt: now,
		}); err != nil {
			return fmt.Errorf("failed to resolve request: %w", err)
		}

		if err := tx.CreateNotification(ctx, &entities.Notification{
			ID:          s.newID(),
			Recipient:   r.Submitter.ID,
			Type:        entities.ApprovalNotification,
			Title:       "Submission approved",
			Message:     fmt.Sprintf("Your %s %q is now published", r.Type, r.Title),
			ContentType: c.Type,
			ContentID:   c.ID,
			CreatedAt:   now,
		}); err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	log.WithField("request", id).WithField("content", c.ID).WithField("admin", admin.ID).Info("request approved")

	return c, nil
}

func (s *srv) Reject(ctx context.Context, id, reason string, admin *entities.User) (*entities.ContentRequest, error) {
	var r *entities.ContentRequest

	if err := s.s.InTx(ctx, func(tx storage.Storage) error {
		var err error
		if r, err = pendingRequest(ctx, tx, id); err != nil {
			return err
		}

		now := s.now()

		if err := tx.ResolveRequest(ctx, &storage.ResolveRequestParams{
			ID:         r.ID,
			Status:     entities.RejectedStatus,
			Reason:     strings.TrimSpace(reason),
			ReviewedBy: admin.ID,
			ReviewedAt: now,
		}); err != nil {
			return fmt.Errorf("failed to resolve request: %w", err)
		}

		if err := tx.CreateNotification(ctx, &entities.Notification{
			ID:        s.newID(),
			Recipient: r.Submitter.ID,
			Type:      entities.RejectionNotification,
			Title:     "Submission rejected",
			Message:   fmt.Sprintf("Your %s %q was rejected: %s", r.Type, r.Title, strings.TrimSpace(reason)),
			CreatedAt: now,
		}); err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}

		r.Status = entities.RejectedStatus
		r.RejectReason = strings.TrimSpace(reason)
		r.ReviewedBy = admin.ID
		r.ReviewedAt = &now

		return nil
	}); err != nil {
		return nil, err
	}

	log.WithField("request", id).WithField("admin", admin.ID).Info("request rejected")

	return r, nil
}

func (s *srv) ListNotifications(ctx context.Context, recipient string, limit uint16) ([]*entities.Notification, error) {
	n, err := s.s.ListNotifications(ctx, recipient, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return n, nil
}

func (s *srv) CountUnread(ctx context.Context, recipient string) (int, error) {
	c, err := s.s.CountUnread(ctx, recipient)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return c, nil
}

func (s *srv) MarkRead(ctx context.Context, recipient string, ids ...string) error {
	if err := s.s.MarkRead(ctx, recipient, ids...); err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}

	return nil
}

func (s *srv) DeleteNotification(ctx context.Context, recipient, id string) error {
	if err := s.s.DeleteNotification(ctx, recipient, id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	return nil
}

func (s *srv) Leaderboard(ctx context.Context, p *storage.LeaderboardParams) ([]*entities.LeaderboardEntry, error) {
	l, err := s.s.Leaderboard(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	return l, nil
}

func (s *srv) issueToken(u *entities.User) (string, error) {
	now := s.now()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.ID,
		"role": string(u.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.c.TokenTTL).Unix(),
	}).SignedString(s.c.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}

func pendingRequest(ctx context.Context, s storage.Storage, id string) (*entities.ContentRequest, error) {
	r, err := s.GetRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	if r.Status != entities.PendingStatus {
		return nil, fmt.Errorf("request is already %s: %w", r.Status, storage.ErrConflict)
	}

	return r, nil
}

// deliver stands in for e-mail delivery.
func deliver(v *entities.Verification) {
	log.WithField("email", v.Email).
		WithField("code", v.Code).
		WithField("expires_at", v.ExpiresAt).
		Info("verification code issued")
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
