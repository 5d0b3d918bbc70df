// Package entities contains main entities of service.
package entities

import (
	"fmt"
	"time"
)

// ContentType ...
type ContentType string

const (
	// VideoType ...
	VideoType ContentType = "video"
	// AudioType ...
	AudioType ContentType = "audio"
	// BlogType ...
	BlogType ContentType = "blog"
)

// ContentTypes lists every known content type in display order.
var ContentTypes = []ContentType{VideoType, AudioType, BlogType} // nolint:gochecknoglobals

// ParseContentType accepts both singular ("video") and collection ("videos") forms.
func ParseContentType(s string) (ContentType, error) {
	for _, v := range ContentTypes {
		if s == string(v) || s == v.Collection() {
			return v, nil
		}
	}

	return "", fmt.Errorf("unknown content type %q", s)
}

// Collection returns REST collection name of the type.
func (t ContentType) Collection() string {
	return string(t) + "s"
}

// EngagementAction returns the path segment used to count one consumption of the content.
func (t ContentType) EngagementAction() string {
	if t == AudioType {
		return "play"
	}
	return "view"
}

// CounterName returns the name of engagement counter.
func (t ContentType) CounterName() string {
	switch t {
	case AudioType:
		return "plays"
	case BlogType:
		return "reads"
	default:
		return "views"
	}
}

// VoteType is a direction of a vote.
type VoteType string

const (
	// NoVote means that identity has no vote on content.
	NoVote VoteType = ""
	// Upvote ...
	Upvote VoteType = "upvote"
	// Downvote ...
	Downvote VoteType = "downvote"
	// RemoveVote is a request-only action which cancels existing vote.
	RemoveVote VoteType = "remove"
)

// Valid ...
func (v VoteType) Valid() bool {
	return v == Upvote || v == Downvote
}

// UserRef ...
type UserRef struct {
	ID   string
	Name string
}

// Content is a published video, audio or blog entry.
type Content struct {
	ID           string
	Type         ContentType
	Title        string
	Description  string
	Body         string
	MediaURL     string
	ThumbnailURL string
	Owner        UserRef
	Category     string
	Tags         []string
	Engagement   uint64
	Upvotes      uint32
	Downvotes    uint32
	UserVote     VoteType
	Comments     []*Comment
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NetScore ...
func (c Content) NetScore() int64 {
	return int64(c.Upvotes) - int64(c.Downvotes)
}

// Comment ...
type Comment struct {
	ID        string
	ContentID string
	User      UserRef
	Text      string
	CreatedAt time.Time
}

// VoteResult is an authoritative vote tally for a voter.
type VoteResult struct {
	Upvotes   uint32
	Downvotes uint32
	UserVote  VoteType
}

// RequestStatus ...
type RequestStatus string

const (
	// PendingStatus ...
	PendingStatus RequestStatus = "pending"
	// ApprovedStatus ...
	ApprovedStatus RequestStatus = "approved"
	// RejectedStatus ...
	RejectedStatus RequestStatus = "rejected"
)

// ContentRequest is a submission awaiting moderation.
type ContentRequest struct {
	ID           string
	Type         ContentType
	Title        string
	Description  string
	Body         string
	MediaURL     string
	ThumbnailURL string
	Category     string
	Tags         []string
	Submitter    UserRef
	Status       RequestStatus
	RejectReason string
	ContentID    string
	ReviewedBy   string
	CreatedAt    time.Time
	ReviewedAt   *time.Time
}

// NotificationType ...
type NotificationType string

const (
	// CommentNotification ...
	CommentNotification NotificationType = "comment"
	// ApprovalNotification ...
	ApprovalNotification NotificationType = "approval"
	// RejectionNotification ...
	RejectionNotification NotificationType = "rejection"
	// FollowNotification ...
	FollowNotification NotificationType = "follow"
	// SystemNotification ...
	SystemNotification NotificationType = "system"
)

// Notification ...
type Notification struct {
	ID          string
	Recipient   string
	Type        NotificationType
	Title       string
	Message     string
	ContentType ContentType
	ContentID   string
	Read        bool
	CreatedAt   time.Time
}

// Role ...
type Role string

const (
	// StudentRole ...
	StudentRole Role = "student"
	// AdminRole ...
	AdminRole Role = "admin"
)

// User ...
type User struct {
	ID           string
	Name         string
	Email        string
	StudentID    string
	Department   string
	Bio          string
	Avatar       string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}

// Ref ...
func (u User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name}
}

// Verification is a pending registration waiting for e-mail code confirmation.
type Verification struct {
	Email        string
	Name         string
	StudentID    string
	Department   string
	PasswordHash string
	Code         string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

// LeaderboardEntry ...
type LeaderboardEntry struct {
	Rank     int
	Content  Content
	NetScore int64
}
