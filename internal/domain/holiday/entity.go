package holiday

// Holiday is a public holiday on a single date.
type Holiday struct {
	Date        string `json:"date"`
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
}

// Set maps "YYYY-MM-DD" dates to holiday names.
type Set map[string]string

func NewSet(holidays []Holiday) Set {
	set := make(Set, len(holidays))
	for _, h := range holidays {
		set[h.Date] = h.Name
	}
	return set
}

// Name returns the holiday name for date, if any.
func (s Set) Name(date string) (string, bool) {
	name, ok := s[date]
	return name, ok
}
