package holiday

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/holiday"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/metrics"
	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheKey struct {
	year    int
	country string
}

type HolidayServiceImpl struct {
	provider holiday.Provider
	country  string
	cache    *lru.Cache[cacheKey, holiday.Set]

	// fetchMu keeps concurrent misses for the same year from all hitting the provider.
	fetchMu sync.Mutex
}

func NewHolidayService(provider holiday.Provider, country string, cacheSize int) (*HolidayServiceImpl, error) {
	if cacheSize <= 0 {
		cacheSize = 8
	}
	cache, err := lru.New[cacheKey, holiday.Set](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create holiday cache: %w", err)
	}
	return &HolidayServiceImpl{
		provider: provider,
		country:  strings.ToUpper(country),
		cache:    cache,
	}, nil
}

// ForYear implements holiday.HolidayService. Failures are not cached, so the
// next call retries.
func (s *HolidayServiceImpl) ForYear(ctx context.Context, year int) holiday.Set {
	set, err := s.lookup(ctx, year)
	if err != nil {
		slog.Warn("Holiday lookup failed, continuing without holidays",
			"year", year,
			"country", s.country,
			"error", err)
		return holiday.Set{}
	}
	return set
}

// Warm implements holiday.HolidayService.
func (s *HolidayServiceImpl) Warm(ctx context.Context, years ...int) error {
	var errs []error
	for _, year := range years {
		if _, err := s.lookup(ctx, year); err != nil {
			errs = append(errs, fmt.Errorf("year %d: %w", year, err))
		}
	}
	return errors.Join(errs...)
}

func (s *HolidayServiceImpl) lookup(ctx context.Context, year int) (holiday.Set, error) {
	if year < 1 {
		return nil, holiday.ErrInvalidYear
	}
	key := cacheKey{year: year, country: s.country}
	if set, ok := s.cache.Get(key); ok {
		metrics.HolidayLookups.WithLabelValues("hit").Inc()
		return set, nil
	}

	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	// another caller may have filled the entry while we waited
	if set, ok := s.cache.Get(key); ok {
		metrics.HolidayLookups.WithLabelValues("hit").Inc()
		return set, nil
	}

	holidays, err := s.provider.PublicHolidays(ctx, year, s.country)
	if err != nil {
		metrics.HolidayLookups.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.HolidayLookups.WithLabelValues("miss").Inc()

	set := holiday.NewSet(holidays)
	s.cache.Add(key, set)
	return set, nil
}

var _ holiday.HolidayService = (*HolidayServiceImpl)(nil)
