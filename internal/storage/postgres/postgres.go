// Package postgres is implementation of storage interface.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/iftakhar005/talenthunt/internal/entities"
	"github.com/iftakhar005/talenthunt/internal/storage"
)

var log = logrus.WithField("layer", "storage").WithField("package", "postgres")
var errBeginCalledWithinTx = errors.New("can not run InTx in tx")

const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
)

type pg struct {
	ext sqlx.ExtContext
}

type userDTO struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	StudentID    string    `db:"student_id"`
	Department   string    `db:"department"`
	Bio          string    `db:"bio"`
	Avatar       string    `db:"avatar"`
	Role         string    `db:"role"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

type verificationDTO struct {
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	StudentID    string    `db:"student_id"`
	Department   string    `db:"department"`
	PasswordHash string    `db:"password_hash"`
	Code         string    `db:"code"`
	ExpiresAt    time.Time `db:"expires_at"`
	CreatedAt    time.Time `db:"created_at"`
}

type contentDTO struct {
	ID           string         `db:"id"`
	Type         string         `db:"type"`
	Title        string         `db:"title"`
	Description  string         `db:"description"`
	Body         string         `db:"body"`
	MediaURL     string         `db:"media_url"`
	ThumbnailURL string         `db:"thumbnail_url"`
	Owner        string         `db:"owner"`
	OwnerName    string         `db:"owner_name"`
	Category     string         `db:"category"`
	Tags         pq.StringArray `db:"tags"`
	Engagement   uint64         `db:"engagement"`
	Upvotes      uint32         `db:"upvotes"`
	Downvotes    uint32         `db:"downvotes"`
	UserVote     string         `db:"user_vote"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type commentDTO struct {
	ID        string    `db:"id"`
	ContentID string    `db:"content_id"`
	UserID    string    `db:"user_id"`
	UserName  string    `db:"user_name"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
}

type requestDTO struct {
	ID            string         `db:"id"`
	Type          string         `db:"type"`
	Title         string         `db:"title"`
	Description   string         `db:"description"`
	Body          string         `db:"body"`
	MediaURL      string         `db:"media_url"`
	ThumbnailURL  string         `db:"thumbnail_url"`
	Category      string         `db:"category"`
	Tags          pq.StringArray `db:"tags"`
	Submitter     string         `db:"submitter"`
	SubmitterName string         `db:"submitter_name"`
	Status        string         `db:"status"`
	RejectReason  string         `db:"reject_reason"`
	ContentID     string         `db:"content_id"`
	ReviewedBy    string         `db:"reviewed_by"`
	CreatedAt     time.Time      `db:"created_at"`
	ReviewedAt    *time.Time     `db:"reviewed_at"`
}

type notificationDTO struct {
	ID          string    `db:"id"`
	Recipient   string    `db:"recipient"`
	Type        string    `db:"type"`
	Title       string    `db:"title"`
	Message     string    `db:"message"`
	ContentType string    `db:"content_type"`
	ContentID   string    `db:"content_id"`
	Read        bool      `db:"read"`
	CreatedAt   time.Time `db:"created_at"`
}

// contentSelect expects voter identity as $1.
const contentSelect = `
	SELECT c.id, c.type, c.title, c.description, c.body, c.media_url, c.thumbnail_url,
		c.owner, u.name AS owner_name, c.category, c.tags, c.engagement,
		COALESCE(v.upvotes, 0) AS upvotes, COALESCE(v.downvotes, 0) AS downvotes,
		COALESCE(my.direction, '') AS user_vote,
		c.created_at, c.updated_at
	FROM content c
	JOIN users u ON u.id = c.owner
	LEFT JOIN (
		SELECT content_id,
			COUNT(*) FILTER (WHERE direction = 'upvote') AS upvotes,
			COUNT(*) FILTER (WHERE direction = 'downvote') AS downvotes
		FROM vote GROUP BY content_id
	) v ON v.content_id = c.id
	LEFT JOIN vote my ON my.content_id = c.id AND my.voter = $1
`

const netScoreExpr = `COALESCE(v.upvotes, 0) - COALESCE(v.downvotes, 0)`

var sortOrder = map[storage.SortType]string{ // nolint:gochecknoglobals
	storage.NewestSortType:     `c.created_at DESC, c.id`,
	storage.PopularSortType:    netScoreExpr + ` DESC, c.created_at DESC, c.id`,
	storage.EngagementSortType: `c.engagement DESC, c.created_at DESC, c.id`,
	storage.UpvotesSortType:    `COALESCE(v.upvotes, 0) DESC, c.created_at DESC, c.id`,
}

const requestSelect = `
	SELECT r.id, r.type, r.title, r.description, r.body, r.media_url, r.thumbnail_url, r.category, r.tags,
		r.submitter, u.name AS submitter_name, r.status, r.reject_reason, r.content_id, r.reviewed_by,
		r.created_at, r.reviewed_at
	FROM content_request r
	JOIN users u ON u.id = r.submitter
`

// New creates new instance of pg.
func New(db *sql.DB) storage.Storage {
	return pg{
		ext: sqlx.NewDb(db, "postgres"),
	}
}

func (s pg) InTx(ctx context.Context, f func(s storage.Storage) error) error {
	db, ok := s.ext.(*sqlx.DB)
	if !ok {
		return errBeginCalledWithinTx
	}

	tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to create tx: %w", err)
	}

	if err := f(pg{ext: tx}); err != nil {
		if err := tx.Rollback(); err != nil {
			log.WithError(err).Error("failed to rollback tx")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}

	return nil
}

func (s pg) CreateUser(ctx context.Context, u *entities.User) error {
	if _, err := sqlx.NamedExecContext(ctx, s.ext, `
			INSERT INTO users(id, name, email, student_id, department, bio, avatar, role, password_hash, created_at)
			VALUES(:id, :name, :email, :student_id, :department, :bio, :avatar, :role, :password_hash, :created_at)
		`, toUserDTO(u),
	); err != nil {
		if isPqError(err, uniqueViolation) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) GetUser(ctx context.Context, id string) (*entities.User, error) {
	return s.getUser(ctx, `SELECT * FROM users WHERE id = $1`, id)
}

func (s pg) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return s.getUser(ctx, `SELECT * FROM users WHERE lower(email) = lower($1)`, email)
}

func (s pg) getUser(ctx context.Context, query string, args ...interface{}) (*entities.User, error) {
	var u userDTO

	if err := sqlx.GetContext(ctx, s.ext, &u, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return u.toEntity(), nil
}

func (s pg) UpdateProfile(ctx context.Context, id string, p *storage.ProfileUpdate) (*entities.User, error) {
	var u userDTO

	if err := sqlx.GetContext(ctx, s.ext, &u, `
			UPDATE users SET
				name = COALESCE($2, name),
				department = COALESCE($3, department),
				bio = COALESCE($4, bio),
				avatar = COALESCE($5, avatar)
			WHERE id = $1
			RETURNING *
		`, id, p.Name, p.Department, p.Bio, p.Avatar,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to exec: %w", err)
	}

	return u.toEntity(), nil
}

func (s pg) SetVerification(ctx context.Context, v *entities.Verification) error {
	if _, err := sqlx.NamedExecContext(ctx, s.ext, `
			INSERT INTO verification(email, name, student_id, department, password_hash, code, expires_at, created_at)
			VALUES(:email, :name, :student_id, :department, :password_hash, :code, :expires_at, :created_at)
			ON CONFLICT(email) DO UPDATE SET
				name=excluded.name, student_id=excluded.student_id, department=excluded.department,
				password_hash=excluded.password_hash, code=excluded.code, expires_at=excluded.expires_at
		`, verificationDTO{
			Email:        v.Email,
			Name:         v.Name,
			StudentID:    v.StudentID,
			Department:   v.Department,
			PasswordHash: v.PasswordHash,
			Code:         v.Code,
			ExpiresAt:    v.ExpiresAt.UTC(),
			CreatedAt:    v.CreatedAt.UTC(),
		},
	); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) GetVerification(ctx context.Context, email string) (*entities.Verification, error) {
	var v verificationDTO

	if err := sqlx.GetContext(ctx, s.ext, &v, `SELECT * FROM verification WHERE email = $1`, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return &entities.Verification{
		Email:        v.Email,
		Name:         v.Name,
		StudentID:    v.StudentID,
		Department:   v.Department,
		PasswordHash: v.PasswordHash,
		Code:         v.Code,
		ExpiresAt:    v.ExpiresAt,
		CreatedAt:    v.CreatedAt,
	}, nil
}

func (s pg) DeleteVerification(ctx context.Context, email string) error {
	if _, err := s.ext.ExecContext(ctx, `DELETE FROM verification WHERE email = $1`, email); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) DeleteExpiredVerifications(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.ext.ExecContext(ctx, `DELETE FROM verification WHERE expires_at < $1`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to exec: %w", err)
	}

	c, _ := res.RowsAffected()
	return c, nil
}

func (s pg) ListContent(ctx context.Context, p *storage.ListContentParams) ([]*entities.Content, error) {
	order, ok := sortOrder[p.SortBy]
	if !ok {
		order = sortOrder[storage.NewestSortType]
	}

	var owner string
	if p.Owner != nil {
		owner = *p.Owner
	}

	var c []*contentDTO

	if err := sqlx.SelectContext(ctx, s.ext, &c, fmt.Sprintf(`%s
			WHERE c.type = $2 AND ($3::text = '' OR c.owner = $3)
			ORDER BY %s
			LIMIT $4 OFFSET $5
		`, contentSelect, order),
		p.Voter, string(p.Type), owner, p.Limit, p.Offset,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Content, len(c))
	for i, v := range c {
		out[i] = v.toEntity()
	}

	return out, nil
}

func (s pg) GetContent(ctx context.Context, t entities.ContentType, id string, voter string) (*entities.Content, error) {
	var c contentDTO

	if err := sqlx.GetContext(ctx, s.ext, &c, contentSelect+` WHERE c.type = $2 AND c.id = $3`,
		voter, string(t), id,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return c.toEntity(), nil
}

func (s pg) CreateContent(ctx context.Context, c *entities.Content) error {
	if _, err := sqlx.NamedExecContext(ctx, s.ext, `
			INSERT INTO content(id, type, title, description, body, media_url, thumbnail_url, owner, category, tags, created_at, updated_at)
			VALUES(:id, :type, :title, :description, :body, :media_url, :thumbnail_url, :owner, :category, :tags, :created_at, :updated_at)
		`, contentDTO{
			ID:           c.ID,
			Type:         string(c.Type),
			Title:        c.Title,
			Description:  c.Description,
			Body:         c.Body,
			MediaURL:     c.MediaURL,
			ThumbnailURL: c.ThumbnailURL,
			Owner:        c.Owner.ID,
			Category:     c.Category,
			Tags:         pq.StringArray(nonNil(c.Tags)),
			CreatedAt:    c.CreatedAt.UTC(),
			UpdatedAt:    c.UpdatedAt.UTC(),
		},
	); err != nil {
		if isPqError(err, foreignKeyViolation) {
			return storage.ErrNotFound
		}
		if isPqError(err, uniqueViolation) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) IncrementEngagement(ctx context.Context, t entities.ContentType, id string) error {
	res, err := s.ext.ExecContext(ctx,
		`UPDATE content SET engagement = engagement + 1 WHERE type = $1 AND id = $2`,
		string(t), id,
	)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s pg) SetVote(ctx context.Context, contentID, voter string, v entities.VoteType, timestamp time.Time) error {
	if !v.Valid() {
		if _, err := s.ext.ExecContext(ctx,
			`DELETE FROM vote WHERE content_id = $1 AND voter = $2`, contentID, voter,
		); err != nil {
			return fmt.Errorf("failed to exec: %w", err)
		}
		return nil
	}

	if _, err := s.ext.ExecContext(ctx, `
			INSERT INTO vote(content_id, voter, direction, voted_at)
				VALUES($1, $2, $3, $4)
			ON CONFLICT(content_id, voter) DO UPDATE SET
				direction=excluded.direction, voted_at=excluded.voted_at`,
		contentID, voter, string(v), timestamp.UTC(),
	); err != nil {
		if isPqError(err, foreignKeyViolation) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) GetVotes(ctx context.Context, contentID, voter string) (*entities.VoteResult, error) {
	var r struct {
		Upvotes   uint32 `db:"upvotes"`
		Downvotes uint32 `db:"downvotes"`
		UserVote  string `db:"user_vote"`
	}

	if err := sqlx.GetContext(ctx, s.ext, &r, `
			SELECT
				COUNT(*) FILTER (WHERE direction = 'upvote') AS upvotes,
				COUNT(*) FILTER (WHERE direction = 'downvote') AS downvotes,
				COALESCE(MAX(direction) FILTER (WHERE voter = $2), '') AS user_vote
			FROM vote WHERE content_id = $1
		`, contentID, voter,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return &entities.VoteResult{
		Upvotes:   r.Upvotes,
		Downvotes: r.Downvotes,
		UserVote:  entities.VoteType(r.UserVote),
	}, nil
}

func (s pg) CreateComment(ctx context.Context, c *entities.Comment) error {
	if _, err := s.ext.ExecContext(ctx, `
			INSERT INTO comment(id, content_id, user_id, text, created_at) VALUES($1, $2, $3, $4, $5)
		`, c.ID, c.ContentID, c.User.ID, c.Text, c.CreatedAt.UTC(),
	); err != nil {
		if isPqError(err, foreignKeyViolation) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) ListComments(ctx context.Context, contentID string) ([]*entities.Comment, error) {
	var c []*commentDTO

	if err := sqlx.SelectContext(ctx, s.ext, &c, `
			SELECT cm.id, cm.content_id, cm.user_id, u.name AS user_name, cm.text, cm.created_at
			FROM comment cm
			JOIN users u ON u.id = cm.user_id
			WHERE cm.content_id = $1
			ORDER BY cm.created_at, cm.id
		`, contentID,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Comment, len(c))
	for i, v := range c {
		out[i] = &entities.Comment{
			ID:        v.ID,
			ContentID: v.ContentID,
			User:      entities.UserRef{ID: v.UserID, Name: v.UserName},
			Text:      v.Text,
			CreatedAt: v.CreatedAt,
		}
	}

	return out, nil
}

func (s pg) CreateRequest(ctx context.Context, r *entities.ContentRequest) error {
	status := r.Status
	if status == "" {
		status = entities.PendingStatus
	}

	if _, err := sqlx.NamedExecContext(ctx, s.ext, `
			INSERT INTO content_request(id, type, title, description, body, media_url, thumbnail_url, category, tags,
				submitter, status, created_at)
			VALUES(:id, :type, :title, :description, :body, :media_url, :thumbnail_url, :category, :tags,
				:submitter, :status, :created_at)
		`, requestDTO{
			ID:           r.ID,
			Type:         string(r.Type),
			Title:        r.Title,
			Description:  r.Description,
			Body:         r.Body,
			MediaURL:     r.MediaURL,
			ThumbnailURL: r.ThumbnailURL,
			Category:     r.Category,
			Tags:         pq.StringArray(nonNil(r.Tags)),
			Submitter:    r.Submitter.ID,
			Status:       string(status),
			CreatedAt:    r.CreatedAt.UTC(),
		},
	); err != nil {
		if isPqError(err, foreignKeyViolation) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) GetRequest(ctx context.Context, id string) (*entities.ContentRequest, error) {
	var r requestDTO

	if err := sqlx.GetContext(ctx, s.ext, &r, requestSelect+` WHERE r.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return r.toEntity(), nil
}

func (s pg) ListRequests(ctx context.Context, status entities.RequestStatus) ([]*entities.ContentRequest, error) {
	var r []*requestDTO

	if err := sqlx.SelectContext(ctx, s.ext, &r,
		requestSelect+` WHERE r.status = $1 ORDER BY r.created_at, r.id`, string(status),
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.ContentRequest, len(r))
	for i, v := range r {
		out[i] = v.toEntity()
	}

	return out, nil
}

func (s pg) ResolveRequest(ctx context.Context, p *storage.ResolveRequestParams) error {
	res, err := s.ext.ExecContext(ctx, `
			UPDATE content_request SET
				status = $2, reject_reason = $3, content_id = $4, reviewed_by = $5, reviewed_at = $6
			WHERE id = $1 AND status = 'pending'
		`, p.ID, string(p.Status), p.Reason, p.ContentID, p.ReviewedBy, p.ReviewedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	if c, _ := res.RowsAffected(); c > 0 {
		return nil
	}

	var exists bool
	if err := sqlx.GetContext(ctx, s.ext, &exists,
		`SELECT EXISTS(SELECT 1 FROM content_request WHERE id = $1)`, p.ID,
	); err != nil {
		return fmt.Errorf("failed to query: %w", err)
	}

	if !exists {
		return storage.ErrNotFound
	}

	return storage.ErrConflict
}

func (s pg) CreateNotification(ctx context.Context, n *entities.Notification) error {
	if _, err := sqlx.NamedExecContext(ctx, s.ext, `
			INSERT INTO notification(id, recipient, type, title, message, content_type, content_id, read, created_at)
			VALUES(:id, :recipient, :type, :title, :message, :content_type, :content_id, :read, :created_at)
		`, notificationDTO{
			ID:          n.ID,
			Recipient:   n.Recipient,
			Type:        string(n.Type),
			Title:       n.Title,
			Message:     n.Message,
			ContentType: string(n.ContentType),
			ContentID:   n.ContentID,
			Read:        n.Read,
			CreatedAt:   n.CreatedAt.UTC(),
		},
	); err != nil {
		if isPqError(err, foreignKeyViolation) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) ListNotifications(ctx context.Context, recipient string, limit uint16) ([]*entities.Notification, error) {
	var n []*notificationDTO

	if err := sqlx.SelectContext(ctx, s.ext, &n, `
			SELECT * FROM notification WHERE recipient = $1
			ORDER BY created_at DESC, id
			LIMIT $2
		`, recipient, limit,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Notification, len(n))
	for i, v := range n {
		out[i] = &entities.Notification{
			ID:          v.ID,
			Recipient:   v.Recipient,
			Type:        entities.NotificationType(v.Type),
			Title:       v.Title,
			Message:     v.Message,
			ContentType: entities.ContentType(v.ContentType),
			ContentID:   v.ContentID,
			Read:        v.Read,
			CreatedAt:   v.CreatedAt,
		}
	}

	return out, nil
}

func (s pg) CountUnread(ctx context.Context, recipient string) (int, error) {
	var c int

	if err := sqlx.GetContext(ctx, s.ext, &c,
		`SELECT COUNT(*) FROM notification WHERE recipient = $1 AND NOT read`, recipient,
	); err != nil {
		return 0, fmt.Errorf("failed to query: %w", err)
	}

	return c, nil
}

func (s pg) MarkRead(ctx context.Context, recipient string, ids ...string) error {
	var err error

	if len(ids) == 0 {
		_, err = s.ext.ExecContext(ctx,
			`UPDATE notification SET read = TRUE WHERE recipient = $1 AND NOT read`, recipient,
		)
	} else {
		_, err = s.ext.ExecContext(ctx,
			`UPDATE notification SET read = TRUE WHERE recipient = $1 AND id = ANY($2)`,
			recipient, pq.Array(stringsUnique(ids)),
		)
	}

	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) DeleteNotification(ctx context.Context, recipient, id string) error {
	res, err := s.ext.ExecContext(ctx,
		`DELETE FROM notification WHERE recipient = $1 AND id = $2`, recipient, id,
	)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s pg) Leaderboard(ctx context.Context, p *storage.LeaderboardParams) ([]*entities.LeaderboardEntry, error) {
	var t string
	if p.Type != nil {
		t = string(*p.Type)
	}

	var c []*contentDTO

	if err := sqlx.SelectContext(ctx, s.ext, &c, fmt.Sprintf(`%s
			WHERE ($2::text = '' OR c.type = $2)
			ORDER BY %s
			LIMIT $3
		`, contentSelect, sortOrder[storage.PopularSortType]),
		"", t, p.Limit,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.LeaderboardEntry, len(c))
	for i, v := range c {
		e := v.toEntity()
		out[i] = &entities.LeaderboardEntry{
			Rank:     i + 1,
			Content:  *e,
			NetScore: e.NetScore(),
		}
	}

	return out, nil
}

func toUserDTO(u *entities.User) userDTO {
	return userDTO{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		StudentID:    u.StudentID,
		Department:   u.Department,
		Bio:          u.Bio,
		Avatar:       u.Avatar,
		Role:         string(u.Role),
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt.UTC(),
	}
}

func (u userDTO) toEntity() *entities.User {
	return &entities.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		StudentID:    u.StudentID,
		Department:   u.Department,
		Bio:          u.Bio,
		Avatar:       u.Avatar,
		Role:         entities.Role(u.Role),
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (c contentDTO) toEntity() *entities.Content {
	return &entities.Content{
		ID:           c.ID,
		Type:         entities.ContentType(c.Type),
		Title:        c.Title,
		Description:  c.Description,
		Body:         c.Body,
		MediaURL:     c.MediaURL,
		ThumbnailURL: c.ThumbnailURL,
		Owner:        entities.UserRef{ID: c.Owner, Name: c.OwnerName},
		Category:     c.Category,
		Tags:         []string(c.Tags),
		Engagement:   c.Engagement,
		Upvotes:      c.Upvotes,
		Downvotes:    c.Downvotes,
		UserVote:     entities.VoteType(c.UserVote),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (r requestDTO) toEntity() *entities.ContentRequest {
	return &entities.ContentRequest{
		ID:           r.ID,
		Type:         entities.ContentType(r.Type),
		Title:        r.Title,
		Description:  r.Description,
		Body:         r.Body,
		MediaURL:     r.MediaURL,
		ThumbnailURL: r.ThumbnailURL,
		Category:     r.Category,
		Tags:         []string(r.Tags),
		Submitter:    entities.UserRef{ID: r.Submitter, Name: r.SubmitterName},
		Status:       entities.RequestStatus(r.Status),
		RejectReason: r.RejectReason,
		ContentID:    r.ContentID,
		ReviewedBy:   r.ReviewedBy,
		CreatedAt:    r.CreatedAt,
		ReviewedAt:   r.ReviewedAt,
	}
}

func isPqError(err error, code pq.ErrorCode) bool {
	var e *pq.Error
	return errors.As(err, &e) && e.Code == code
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func stringsUnique(s []string) []string {
	m := make(map[string]struct{}, len(s))
	out := make([]string, 0, len(s))

	for _, v := range s {
		if _, ok := m[v]; !ok {
			m[v] = struct{}{}
			out = append(out, v)
		}
	}

	return out
}
