package holiday

import "context"

// Provider fetches the public holidays of one country and year from an
// external source.
type Provider interface {
	PublicHolidays(ctx context.Context, year int, countryCode string) ([]Holiday, error)
}

type HolidayService interface {
	// ForYear returns the holidays of the configured country. Lookup failures
	// are logged and yield an empty set.
	ForYear(ctx context.Context, year int) Set
	// Warm fetches and caches the given years, reporting the first failure.
	Warm(ctx context.Context, years ...int) error
}
