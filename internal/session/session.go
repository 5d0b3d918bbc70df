// Package session contains the client-side session: auth token, cached profile,
// anonymous voting identity and submission drafts.
package session

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iftakhar005/talenthunt/internal/api"
	"github.com/iftakhar005/talenthunt/internal/entities"
)

var log = logrus.WithField("layer", "session")

const identityAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
const identitySuffixLen = 9

// data is serialized form of session, keys match the ones the web front-end kept in local storage.
type data struct {
	Token         string                 `json:"token,omitempty"`
	IsLoggedIn    bool                   `json:"isLoggedIn"`
	User          *api.User              `json:"user,omitempty"`
	SessionUserID string                 `json:"sessionUserId,omitempty"`
	AudioDraft    *api.SubmissionRequest `json:"audioDraft,omitempty"`
	BlogDraft     *api.SubmissionRequest `json:"blogDraft,omitempty"`
	VideoDraft    *api.SubmissionRequest `json:"videoDraft,omitempty"`
}

// Session is shared by every data-access call. It is safe for concurrent use and is
// always read at call time, so all holders observe the latest login state.
type Session struct {
	mu    sync.RWMutex
	store Store
	d     data
	now   func() time.Time
}

// Open loads session from the store.
func Open(s Store) (*Session, error) {
	b, err := s.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	out := Session{
		store: s,
		now:   time.Now,
	}

	if len(b) > 0 {
		if err := json.Unmarshal(b, &out.d); err != nil {
			log.WithError(err).Warn("session is corrupted, starting a new one")
			out.d = data{}
		}
	}

	return &out, nil
}

// NewIdentity generates an anonymous voting identity: "user-<unix millis>-<9 base36 chars>".
func NewIdentity(now time.Time) string {
	var sb strings.Builder
	sb.WriteString("user-")
	sb.WriteString(strconv.FormatInt(now.UnixNano()/int64(time.Millisecond), 10))
	sb.WriteByte('-')

	for i := 0; i < identitySuffixLen; i++ {
		sb.WriteByte(identityAlphabet[rand.Intn(len(identityAlphabet))])
	}

	return sb.String()
}

// Token returns bearer token or empty string when user is not logged in.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.d.IsLoggedIn {
		return ""
	}
	return s.d.Token
}

// IsLoggedIn ...
func (s *Session) IsLoggedIn() bool {
	return s.Token() != ""
}

// User returns cached profile of the logged in user.
func (s *Session) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.d.User == nil {
		return nil
	}
	u := *s.d.User
	return &u
}

// Login stores credentials returned by the backend.
func (s *Session) Login(token string, u api.User) error {
	return s.update(func(d *data) {
		d.Token = token
		d.IsLoggedIn = true
		d.User = &u
	})
}

// SetUser refreshes cached profile.
func (s *Session) SetUser(u api.User) error {
	return s.update(func(d *data) {
		d.User = &u
	})
}

// Logout forgets credentials; voting identity and drafts are kept.
func (s *Session) Logout() error {
	return s.update(func(d *data) {
		d.Token = ""
		d.IsLoggedIn = false
		d.User = nil
	})
}

// Identity returns anonymous voting identity creating and persisting it on first use.
func (s *Session) Identity() (string, error) {
	s.mu.RLock()
	id := s.d.SessionUserID
	s.mu.RUnlock()

	if id != "" {
		return id, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.d.SessionUserID != "" {
		return s.d.SessionUserID, nil
	}

	s.d.SessionUserID = NewIdentity(s.now())
	if err := s.save(); err != nil {
		s.d.SessionUserID = ""
		return "", err
	}

	log.WithField("identity", s.d.SessionUserID).Debug("created session identity")

	return s.d.SessionUserID, nil
}

func (d *data) draftSlot(t entities.ContentType) **api.SubmissionRequest {
	switch t {
	case entities.AudioType:
		return &d.AudioDraft
	case entities.BlogType:
		return &d.BlogDraft
	default:
		return &d.VideoDraft
	}
}

// Draft returns saved draft of the content type or nil.
func (s *Session) Draft(t entities.ContentType) *api.SubmissionRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d := *s.d.draftSlot(t)
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// SaveDraft ...
func (s *Session) SaveDraft(t entities.ContentType, v api.SubmissionRequest) error {
	v.Type = string(t)

	return s.update(func(d *data) {
		*d.draftSlot(t) = &v
	})
}

// ClearDraft ...
func (s *Session) ClearDraft(t entities.ContentType) error {
	return s.update(func(d *data) {
		*d.draftSlot(t) = nil
	})
}

// update applies f and persists the result, in-memory state is rolled back when saving fails.
func (s *Session) update(f func(d *data)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.d
	f(&s.d)

	if err := s.save(); err != nil {
		s.d = prev
		return err
	}

	return nil
}

// save must be called under write lock.
func (s *Session) save() error {
	b, err := json.Marshal(s.d)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.store.Save(b); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}
