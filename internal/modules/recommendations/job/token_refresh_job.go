// Package job holds the scheduled jobs of the recommendations module.
package job

import (
	"context"
	"time"

	"github.com/gaborage/go-bricks/scheduler"
)

// refreshTimeout bounds a single token refresh.
const refreshTimeout = 10 * time.Second

// TokenInvalidator drops a cached token.
type TokenInvalidator interface {
	Invalidate()
}

// TokenRefresher re-applies the current token to the sidecar client.
type TokenRefresher interface {
	RefreshToken(ctx context.Context) error
}

// TokenRefreshJob re-reads the sidecar API token so rotated secrets reach
// the client without a restart.
type TokenRefreshJob struct {
	Tokens    TokenInvalidator
	Refresher TokenRefresher
}

// Execute implements scheduler.Job
func (j *TokenRefreshJob) Execute(ctx scheduler.JobContext) error {
	logger := ctx.Logger()

	if err := j.refresh(context.Background()); err != nil {
		logger.Warn().
			Err(err).
			Str("jobID", ctx.JobID()).
			Msg("Sidecar token refresh failed")
		return err
	}

	logger.Debug().
		Str("jobID", ctx.JobID()).
		Msg("Sidecar token refreshed")
	return nil
}

func (j *TokenRefreshJob) refresh(parent context.Context) error {
	ctx, cancel := context.WithTimeout(parent, refreshTimeout)
	defer cancel()

	j.Tokens.Invalidate()
	return j.Refresher.RefreshToken(ctx)
}
