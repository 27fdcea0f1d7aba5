package cache

import (
	"context"
	"fmt"
	"slices"
	"time"

	"cs2-tracker/internal/domain"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// RankingFetcher loads one leaderboard page from upstream.
type RankingFetcher interface {
	FetchRegionRanking(ctx context.Context, region domain.Region, limit, offset int) ([]domain.RankedListEntry, error)
}

type pageKey struct {
	region domain.Region
	limit  int
	offset int
}

func (k pageKey) String() string {
	return fmt.Sprintf("%s:%d:%d", k.region, k.limit, k.offset)
}

// Rankings keeps recently served leaderboard pages. Concurrent misses for the
// same page share one upstream request. Failed pages are never stored.
type Rankings struct {
	fetcher RankingFetcher
	pages   *expirable.LRU[pageKey, []domain.RankedListEntry]
	group   singleflight.Group
	timeout time.Duration
	logger  zerolog.Logger
}

// NewRankings builds a cache of size pages kept for ttl. timeout bounds a
// shared upstream fetch.
func NewRankings(fetcher RankingFetcher, size int, ttl, timeout time.Duration, logger zerolog.Logger) *Rankings {
	return &Rankings{
		fetcher: fetcher,
		timeout: timeout,
		pages:   expirable.NewLRU[pageKey, []domain.RankedListEntry](size, nil, ttl),
		logger:  logger,
	}
}

// FetchRegionRanking serves a page from the cache or fetches it. The shared
// fetch is detached from any single caller, so one caller giving up does not
// fail the others waiting on the same page.
func (r *Rankings) FetchRegionRanking(ctx context.Context, region domain.Region, limit, offset int) ([]domain.RankedListEntry, error) {
	key := pageKey{region: region, limit: limit, offset: offset}
	if page, ok := r.pages.Get(key); ok {
		r.logger.Debug().Stringer("page", key).Msg("ranking cache hit")
		return slices.Clone(page), nil
	}

	ch := r.group.DoChan(key.String(), func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()

		page, err := r.fetcher.FetchRegionRanking(fetchCtx, region, limit, offset)
		if err != nil {
			return page, err
		}
		r.pages.Add(key, page)
		return page, nil
	})

	select {
	case <-ctx.Done():
		return []domain.RankedListEntry{}, &domain.RankingUnavailableError{Region: region, Err: ctx.Err()}
	case res := <-ch:
		if res.Shared {
			r.logger.Debug().Stringer("page", key).Msg("ranking request shared")
		}
		page, _ := res.Val.([]domain.RankedListEntry)
		if page == nil {
			return []domain.RankedListEntry{}, res.Err
		}
		return slices.Clone(page), res.Err
	}
}

// Purge drops every cached page.
func (r *Rankings) Purge() {
	r.pages.Purge()
}

func (r *Rankings) Len() int {
	return r.pages.Len()
}
