// Package health contains health check handler.
package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iftakhar005/talenthunt/internal/api"
)

const pingTimeout = 5 * time.Second

// nolint:gochecknoglobals
var (
	version = "dev"
	commit  = "unknown"
)

// Pinger checks availability of a dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc ...
type PingerFunc func(ctx context.Context) error

// Ping ...
func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type subjectPinger struct {
	subject string
	p       Pinger
}

// SubjectPinger wraps pinger's errors with subject name.
func SubjectPinger(subject string, p Pinger) Pinger {
	return subjectPinger{subject: subject, p: p}
}

func (s subjectPinger) Ping(ctx context.Context) error {
	if err := s.p.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", s.subject, err)
	}
	return nil
}

// VersionResponse ...
// swagger:model
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// GetVersion returns version and commit set on build.
func GetVersion() VersionResponse {
	return VersionResponse{Version: version, Commit: commit}
}

// Handler pings every pinger concurrently.
// It responds 200 with version when all of them are available and 503 otherwise.
func Handler(pingers ...Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		gr, ctx := errgroup.WithContext(ctx)
		for _, p := range pingers {
			p := p
			gr.Go(func() error {
				return p.Ping(ctx)
			})
		}

		if err := gr.Wait(); err != nil {
			logrus.WithError(err).Error("health check failed")
			api.WriteError(w, http.StatusServiceUnavailable, err.Error())
			return
		}

		api.WriteOK(w, http.StatusOK, GetVersion())
	}
}
