package engagement

import (
	"context"
	"sync"

	"github.com/iftakhar005/talenthunt/internal/api"
	"github.com/iftakhar005/talenthunt/internal/entities"
)

// VoteState is what is displayed for a content item.
type VoteState struct {
	Upvotes   uint32
	Downvotes uint32
	UserVote  entities.VoteType
}

// NetScore ...
func (s VoteState) NetScore() int64 {
	return int64(s.Upvotes) - int64(s.Downvotes)
}

// StateOf extracts vote state from fetched content.
func StateOf(c api.Content) VoteState {
	return VoteState{
		Upvotes:   c.Upvotes,
		Downvotes: c.Downvotes,
		UserVote:  entities.VoteType(c.UserVote),
	}
}

// ResolveAction returns the action to be sent: repeating the current direction cancels the vote.
func ResolveAction(current, direction entities.VoteType) entities.VoteType {
	if current == direction {
		return entities.RemoveVote
	}
	return direction
}

// Voter holds vote state of one content item. State is replaced only by server replies;
// overlapping casts are not serialized and the last reply to arrive wins.
type Voter struct {
	c  VoteClient
	t  entities.ContentType
	id string

	mu    sync.RWMutex
	state VoteState
}

// NewVoter ...
func NewVoter(c VoteClient, t entities.ContentType, id string, initial VoteState) *Voter {
	return &Voter{
		c:     c,
		t:     t,
		id:    id,
		state: initial,
	}
}

// State ...
func (v *Voter) State() VoteState {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.state
}

// Cast votes in the direction. On failure the error is logged, state is left unchanged and the error is returned.
func (v *Voter) Cast(ctx context.Context, direction entities.VoteType) (VoteState, error) {
	if !direction.Valid() {
		return v.State(), ErrInvalidDirection
	}

	action := ResolveAction(v.State().UserVote, direction)

	resp, err := v.c.Vote(ctx, v.t, v.id, action)
	if err != nil {
		log.WithError(err).
			WithField("content", v.id).
			WithField("action", action).
			Error("failed to vote")
		return v.State(), err
	}

	next := VoteState{
		Upvotes:   *resp.Upvotes,
		Downvotes: *resp.Downvotes,
		UserVote:  entities.VoteType(resp.UserVote),
	}

	v.mu.Lock()
	v.state = next
	v.mu.Unlock()

	return next, nil
}
