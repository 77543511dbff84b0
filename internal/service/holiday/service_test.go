package holiday

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	mu    sync.Mutex
	calls map[int]int
	fail  map[int]error
}

func newStubProvider() *stubProvider {
	return &stubProvider{calls: make(map[int]int), fail: make(map[int]error)}
}

func (p *stubProvider) PublicHolidays(ctx context.Context, year int, country string) ([]holiday.Holiday, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[year]++
	if err := p.fail[year]; err != nil {
		return nil, err
	}
	return []holiday.Holiday{{Date: "2024-12-25", Name: "Navidad", CountryCode: country}}, nil
}

func TestHolidayService_CachesPerYear(t *testing.T) {
	provider := newStubProvider()
	svc, err := NewHolidayService(provider, "co", 4)
	require.NoError(t, err)
	ctx := context.Background()

	first := svc.ForYear(ctx, 2024)
	second := svc.ForYear(ctx, 2024)

	name, ok := first.Name("2024-12-25")
	assert.True(t, ok)
	assert.Equal(t, "Navidad", name)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls[2024])
}

func TestHolidayService_FailureYieldsEmptyAndIsNotCached(t *testing.T) {
	provider := newStubProvider()
	provider.fail[2025] = holiday.ErrProviderUnavailable
	svc, err := NewHolidayService(provider, "CO", 4)
	require.NoError(t, err)
	ctx := context.Background()

	assert.Empty(t, svc.ForYear(ctx, 2025))
	assert.Empty(t, svc.ForYear(ctx, 2025))
	assert.Equal(t, 2, provider.calls[2025])

	delete(provider.fail, 2025)
	assert.NotEmpty(t, svc.ForYear(ctx, 2025))
}

func TestHolidayService_Warm(t *testing.T) {
	provider := newStubProvider()
	boom := errors.New("boom")
	provider.fail[2026] = boom
	svc, err := NewHolidayService(provider, "CO", 4)
	require.NoError(t, err)
	ctx := context.Background()

	err = svc.Warm(ctx, 2025, 2026)
	assert.ErrorIs(t, err, boom)

	svc.ForYear(ctx, 2025)
	assert.Equal(t, 1, provider.calls[2025])
}

func TestHolidayService_InvalidYear(t *testing.T) {
	svc, err := NewHolidayService(newStubProvider(), "CO", 0)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Warm(context.Background(), 0), holiday.ErrInvalidYear)
}
