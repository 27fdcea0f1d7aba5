package service

import (
	"time"

	"cs2-tracker/internal/config"
	"cs2-tracker/internal/constants"
)

// CallTimeout bounds one upstream call including every retry attempt.
type CallTimeout time.Duration

// NewCallTimeout gives each of the UPSTREAM_MAX_RETRIES+1 attempts the full
// UPSTREAM_TIMEOUT, plus the backoff between them.
func NewCallTimeout(cfg *config.Config) CallTimeout {
	timeout := cfg.UpstreamTimeout
	if timeout <= 0 {
		timeout = constants.ExternalAPITimeout
	}
	retries := time.Duration(max(cfg.UpstreamMaxRetries, 0))
	return CallTimeout((retries+1)*timeout + retries*constants.RetryBackoff)
}
