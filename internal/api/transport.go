package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cs2-tracker/internal/constants"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

var (
	// ErrNotFound is returned for a 404 from either upstream.
	ErrNotFound = errors.New("API error: 404")

	ErrMalformedPayload = errors.New("malformed payload")
)

type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: %d", e.Code)
}

// transport performs GETs for one upstream. Every attempt is bounded by
// timeout; failed attempts are retried at most maxRetries times, and only
// when a repeat could succeed.
type transport struct {
	name       string
	client     *fasthttp.Client
	timeout    time.Duration
	maxRetries uint64
	limiter    *rate.Limiter
	authorize  func(req *fasthttp.Request)
	logger     zerolog.Logger
}

func newTransport(name string, timeout time.Duration, maxRetries int, rps float64, logger zerolog.Logger) *transport {
	if timeout <= 0 {
		timeout = constants.ExternalAPITimeout
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
	}
	return &transport{
		name: name,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		timeout:    timeout,
		maxRetries: uint64(max(0, maxRetries)),
		limiter:    limiter,
		logger:     logger.With().Str("upstream", name).Logger(),
	}
}

func doRequest[T any](ctx context.Context, t *transport, url string) (*T, error) {
	var result *T
	attempt := 0
	backoff := retry.WithMaxRetries(t.maxRetries, retry.NewConstant(constants.RetryBackoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		res, err := doOnce[T](ctx, t, url)
		if err == nil {
			result = res
			return nil
		}
		if retryable(err) && uint64(attempt) <= t.maxRetries {
			t.logger.Warn().Err(err).Int("attempt", attempt).Msg("upstream request failed, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func doOnce[T any](ctx context.Context, t *transport, url string) (*T, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if t.authorize != nil {
		t.authorize(req)
	}

	deadline := time.Now().Add(t.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := t.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, err
	}

	switch code := resp.StatusCode(); {
	case code == fasthttp.StatusNotFound:
		return nil, ErrNotFound
	case code < 200 || code >= 300:
		return nil, &StatusError{Code: code}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return &result, nil
}

// retryable reports whether err is worth another attempt: network failures,
// rate limiting and server errors.
func retryable(err error) bool {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrMalformedPayload) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == fasthttp.StatusTooManyRequests || se.Code >= 500
	}
	return true
}
