package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/iftakhar005/talenthunt/internal/api"
	"github.com/iftakhar005/talenthunt/internal/entities"
	"github.com/iftakhar005/talenthunt/internal/storage"
)

const (
	maxLimit                 = 100
	defaultLimit             = 20
	defaultLeaderboardLimit  = 10
	defaultNotificationLimit = 50
)

var errInvalidRequest = errors.New("invalid request")

func decodeRequest(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %s", errInvalidRequest, err.Error())
	}

	if v, ok := v.(api.Validator); ok {
		return v.Validate()
	}

	return nil
}

func extractLimitFromQuery(q url.Values, def int) (uint16, error) {
	s := q.Get("limit")
	if s == "" {
		return uint16(def), nil
	}

	limit, err := strconv.Atoi(s)
	if err != nil || limit < 1 || limit > maxLimit {
		return 0, fmt.Errorf("%w: limit should be in [1, %d]", errInvalidRequest, maxLimit)
	}

	return uint16(limit), nil
}

func extractListParamsFromQuery(q url.Values, t entities.ContentType) (*storage.ListContentParams, int, error) {
	limit, err := extractLimitFromQuery(q, defaultLimit)
	if err != nil {
		return nil, 0, err
	}

	page := 1
	if s := q.Get("page"); s != "" {
		if page, err = strconv.Atoi(s); err != nil || page < 1 {
			return nil, 0, fmt.Errorf("%w: invalid page", errInvalidRequest)
		}
	}

	p := storage.ListContentParams{
		Type:   t,
		SortBy: storage.NewestSortType,
		Limit:  limit,
		Offset: uint32(page-1) * uint32(limit),
	}

	if s := q.Get("sort"); s != "" {
		switch sort := storage.SortType(s); sort {
		case storage.NewestSortType, storage.PopularSortType, storage.EngagementSortType, storage.UpvotesSortType:
			p.SortBy = sort
		default:
			return nil, 0, fmt.Errorf("%w: invalid sort", errInvalidRequest)
		}
	}

	if owner := q.Get("owner"); owner != "" {
		p.Owner = &owner
	}

	return &p, page, nil
}

func extractLeaderboardParamsFromQuery(q url.Values) (*storage.LeaderboardParams, error) {
	limit, err := extractLimitFromQuery(q, defaultLeaderboardLimit)
	if err != nil {
		return nil, err
	}

	p := storage.LeaderboardParams{Limit: limit}

	if s := q.Get("type"); s != "" && s != "all" {
		t, err := entities.ParseContentType(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errInvalidRequest, err.Error())
		}
		p.Type = &t
	}

	return &p, nil
}

func toAPIUser(u *entities.User) api.User {
	return api.User{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		StudentID:  u.StudentID,
		Department: u.Department,
		Bio:        u.Bio,
		Avatar:     u.Avatar,
		Role:       string(u.Role),
		CreatedAt:  u.CreatedAt,
	}
}

func toAPIUserRef(u entities.UserRef) api.UserRef {
	return api.UserRef{ID: u.ID, Name: u.Name}
}

func toAPIContent(c *entities.Content) api.Content {
	out := api.Content{
		ID:           c.ID,
		Type:         string(c.Type),
		Title:        c.Title,
		Description:  c.Description,
		Body:         c.Body,
		MediaURL:     c.MediaURL,
		ThumbnailURL: c.ThumbnailURL,
		User:         toAPIUserRef(c.Owner),
		Category:     c.Category,
		Tags:         c.Tags,
		Upvotes:      c.Upvotes,
		Downvotes:    c.Downvotes,
		UserVote:     api.UserVote(c.UserVote),
		Comments:     make([]api.Comment, len(c.Comments)),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}

	if out.Tags == nil {
		out.Tags = []string{}
	}

	out.SetEngagement(c.Type, c.Engagement)

	for i, v := range c.Comments {
		out.Comments[i] = api.Comment{
			ID:        v.ID,
			User:      toAPIUserRef(v.User),
			Text:      v.Text,
			CreatedAt: v.CreatedAt,
		}
	}

	return out
}

func toAPIRequest(r *entities.ContentRequest) api.ContentRequest {
	out := api.ContentRequest{
		ID:           r.ID,
		Type:         string(r.Type),
		Title:        r.Title,
		Description:  r.Description,
		Body:         r.Body,
		MediaURL:     r.MediaURL,
		ThumbnailURL: r.ThumbnailURL,
		Category:     r.Category,
		Tags:         r.Tags,
		User:         toAPIUserRef(r.Submitter),
		Status:       string(r.Status),
		RejectReason: r.RejectReason,
		ContentID:    r.ContentID,
		CreatedAt:    r.CreatedAt,
		ReviewedAt:   r.ReviewedAt,
	}

	if out.Tags == nil {
		out.Tags = []string{}
	}

	return out
}

func toAPINotification(n *entities.Notification) api.Notification {
	return api.Notification{
		ID:          n.ID,
		Type:        string(n.Type),
		Title:       n.Title,
		Message:     n.Message,
		ContentType: string(n.ContentType),
		ContentID:   n.ContentID,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}
