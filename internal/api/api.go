// Package api contains wire types of the talent hunt REST API and helpers to write them.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iftakhar005/talenthunt/internal/entities"
)

// ErrInvalid is returned by Validate methods.
var ErrInvalid = errors.New("invalid")

// Validator is implemented by every payload which can be checked after decoding.
type Validator interface {
	Validate() error
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Error ...
// swagger:model
type Error struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Text returns the most specific message of the error body.
func (e Error) Text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// MessageResponse ...
type MessageResponse struct {
	Message string `json:"message"`
}

// Validate ...
func (MessageResponse) Validate() error { return nil }

// UserVote is nullable vote direction; it is encoded as null when there is no vote.
type UserVote entities.VoteType

// MarshalJSON ...
func (v UserVote) MarshalJSON() ([]byte, error) {
	if v == UserVote(entities.NoVote) {
		return []byte("null"), nil
	}
	return json.Marshal(string(v))
}

// UnmarshalJSON ...
func (v *UserVote) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = UserVote(entities.NoVote)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	switch t := entities.VoteType(s); t {
	case entities.NoVote, entities.Upvote, entities.Downvote:
		*v = UserVote(t)
		return nil
	default:
		return invalidf("unknown userVote %q", s)
	}
}

// UserRef ...
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User ...
// swagger:model
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	StudentID  string    `json:"studentId,omitempty"`
	Department string    `json:"department,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	Avatar     string    `json:"avatar,omitempty"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Validate ...
func (u User) Validate() error {
	if u.ID == "" {
		return invalidf("user id is empty")
	}
	return nil
}

// IsAdmin ...
func (u User) IsAdmin() bool {
	return u.Role == string(entities.AdminRole)
}

// SendVerificationRequest starts a registration.
type SendVerificationRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	StudentID  string `json:"studentId"`
	Department string `json:"department"`
	Password   string `json:"password"`
}

// Validate ...
func (r SendVerificationRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return invalidf("name, email and password are required")
	}
	if !strings.Contains(r.Email, "@") {
		return invalidf("malformed email")
	}
	return nil
}

// VerifyCodeRequest ...
type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Validate ...
func (r VerifyCodeRequest) Validate() error {
	if r.Email == "" || r.Code == "" {
		return invalidf("email and code are required")
	}
	return nil
}

// ResendCodeRequest ...
type ResendCodeRequest struct {
	Email string `json:"email"`
}

// Validate ...
func (r ResendCodeRequest) Validate() error {
	if r.Email == "" {
		return invalidf("email is required")
	}
	return nil
}

// LoginRequest ...
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate ...
func (r LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return invalidf("email and password are required")
	}
	return nil
}

// AuthResponse is returned by login and successful code verification.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Validate ...
func (r AuthResponse) Validate() error {
	if r.Token == "" {
		return invalidf("token is empty")
	}
	return r.User.Validate()
}

// ProfileUpdateRequest contains fields to be changed, nil fields are left untouched.
type ProfileUpdateRequest struct {
	Name       *string `json:"name,omitempty"`
	Department *string `json:"department,omitempty"`
	Bio        *string `json:"bio,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
}

// Validate ...
func (r ProfileUpdateRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return invalidf("name can not be empty")
	}
	return nil
}

// Comment ...
type Comment struct {
	ID        string    `json:"id"`
	User      UserRef   `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Content is a published video, audio or blog.
// Only the counter matching the content type is set.
// swagger:model
type Content struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Body         string    `json:"body,omitempty"`
	MediaURL     string    `json:"mediaUrl,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	User         UserRef   `json:"user"`
	Category     string    `json:"category,omitempty"`
	Tags         []string  `json:"tags"`
	Views        *uint64   `json:"views,omitempty"`
	Plays        *uint64   `json:"plays,omitempty"`
	Reads        *uint64   `json:"reads,omitempty"`
	Upvotes      uint32    `json:"upvotes"`
	Downvotes    uint32    `json:"downvotes"`
	UserVote     UserVote  `json:"userVote"`
	Comments     []Comment `json:"comments"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Validate ...
func (c Content) Validate() error {
	if c.ID == "" {
		return invalidf("content id is empty")
	}
	if _, err := entities.ParseContentType(c.Type); err != nil {
		return invalidf("%s", err.Error())
	}
	return nil
}

// Engagement returns the type specific counter.
func (c Content) Engagement() uint64 {
	for _, v := range []*uint64{c.Views, c.Plays, c.Reads} {
		if v != nil {
			return *v
		}
	}
	return 0
}

// SetEngagement sets the counter matching the content type.
func (c *Content) SetEngagement(t entities.ContentType, v uint64) {
	switch t {
	case entities.AudioType:
		c.Plays = &v
	case entities.BlogType:
		c.Reads = &v
	default:
		c.Views = &v
	}
}

// NetScore ...
func (c Content) NetScore() int64 {
	return int64(c.Upvotes) - int64(c.Downvotes)
}

// ListContentResponse ...
// swagger:model
type ListContentResponse struct {
	Items []Content `json:"items"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

// Validate ...
func (r ListContentResponse) Validate() error {
	for i, v := range r.Items {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// VoteRequest ...
type VoteRequest struct {
	VoteType string `json:"voteType"`
}

// Validate ...
func (r VoteRequest) Validate() error {
	switch entities.VoteType(r.VoteType) {
	case entities.Upvote, entities.Downvote, entities.RemoveVote:
		return nil
	default:
		return invalidf("voteType should be one of upvote, downvote, remove")
	}
}

// VoteResponse is the authoritative tally after a vote.
type VoteResponse struct {
	Upvotes   *uint32  `json:"upvotes"`
	Downvotes *uint32  `json:"downvotes"`
	UserVote  UserVote `json:"userVote"`
}

// Validate ...
func (r VoteResponse) Validate() error {
	if r.Upvotes == nil || r.Downvotes == nil {
		return invalidf("vote counters are missing")
	}
	return nil
}

// CommentRequest ...
type CommentRequest struct {
	Text string `json:"text"`
}

// Validate ...
func (r CommentRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return invalidf("text is required")
	}
	return nil
}

// CommentResponse is either the whole updated content or its comment list alone.
type CommentResponse struct {
	Content  *Content
	Comments []Comment
}

// UnmarshalJSON ...
func (r *CommentResponse) UnmarshalJSON(b []byte) error {
	var c Content
	if err := json.Unmarshal(b, &c); err != nil {
		return err
	}

	if c.ID != "" {
		r.Content = &c
		r.Comments = c.Comments
		return nil
	}

	r.Content = nil
	r.Comments = c.Comments
	return nil
}

// Validate ...
func (r CommentResponse) Validate() error {
	if r.Content != nil {
		return r.Content.Validate()
	}
	if r.Comments == nil {
		return invalidf("neither content nor comments in response")
	}
	return nil
}

// SubmissionRequest creates a content request awaiting moderation.
type SubmissionRequest struct {
	Type         string   `json:"type"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Body         string   `json:"body,omitempty"`
	MediaURL     string   `json:"mediaUrl,omitempty"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
	Category     string   `json:"category,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// Validate ...
func (r SubmissionRequest) Validate() error {
	t, err := entities.ParseContentType(r.Type)
	if err != nil {
		return invalidf("%s", err.Error())
	}

	if strings.TrimSpace(r.Title) == "" {
		return invalidf("title is required")
	}

	if t == entities.BlogType && strings.TrimSpace(r.Body) == "" {
		return invalidf("blog body is required")
	}

	if t != entities.BlogType && r.MediaURL == "" {
		return invalidf("media url is required")
	}

	return nil
}

// ContentRequest ...
// swagger:model
type ContentRequest struct {
	ID           string     `json:"id"`
	Type         string     `json:"type"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Body         string     `json:"body,omitempty"`
	MediaURL     string     `json:"mediaUrl,omitempty"`
	ThumbnailURL string     `json:"thumbnailUrl,omitempty"`
	Category     string     `json:"category,omitempty"`
	Tags         []string   `json:"tags"`
	User         UserRef    `json:"user"`
	Status       string     `json:"status"`
	RejectReason string     `json:"rejectReason,omitempty"`
	ContentID    string     `json:"contentId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
}

// Validate ...
func (r ContentRequest) Validate() error {
	if r.ID == "" {
		return invalidf("request id is empty")
	}

	switch entities.RequestStatus(r.Status) {
	case entities.PendingStatus, entities.ApprovedStatus, entities.RejectedStatus:
		return nil
	default:
		return invalidf("unknown status %q", r.Status)
	}
}

// PendingResponse ...
type PendingResponse struct {
	Requests []ContentRequest `json:"requests"`
}

// Validate ...
func (r PendingResponse) Validate() error {
	for i, v := range r.Requests {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("request %d: %w", i, err)
		}
	}
	return nil
}

// RejectRequest ...
type RejectRequest struct {
	Reason string `json:"reason"`
}

// Validate ...
func (r RejectRequest) Validate() error {
	if strings.TrimSpace(r.Reason) == "" {
		return invalidf("reason is required")
	}
	return nil
}

// Notification ...
type Notification struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	ContentType string    `json:"contentType,omitempty"`
	ContentID   string    `json:"contentId,omitempty"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NotificationsResponse ...
type NotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

// Validate ...
func (r NotificationsResponse) Validate() error {
	for i, v := range r.Notifications {
		if v.ID == "" {
			return invalidf("notification %d has empty id", i)
		}
	}
	return nil
}

// UnreadCountResponse ...
type UnreadCountResponse struct {
	Count *int `json:"count"`
}

// Validate ...
func (r UnreadCountResponse) Validate() error {
	if r.Count == nil || *r.Count < 0 {
		return invalidf("count is missing")
	}
	return nil
}

// MarkReadRequest marks listed notifications as read, empty list means all.
type MarkReadRequest struct {
	IDs []string `json:"ids,omitempty"`
}

// LeaderboardEntry ...
type LeaderboardEntry struct {
	Rank     int     `json:"rank"`
	NetScore int64   `json:"netScore"`
	Content  Content `json:"content"`
}

// LeaderboardResponse ...
// swagger:model
type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// Validate ...
func (r LeaderboardResponse) Validate() error {
	for i, v := range r.Entries {
		if err := v.Content.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}
