package statistics

// SortOrder toggles the direction of a ranking.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// DayStatus classifies a calendar day for one worker.
type DayStatus string

const (
	StatusHoliday DayStatus = "holiday"
	StatusWeekend DayStatus = "weekend"
	StatusNormal  DayStatus = "normal"
	StatusNovelty DayStatus = "novelty"
	StatusEmpty   DayStatus = "empty"
	StatusAbsence DayStatus = "absence"
)

const (
	// BucketMinutes is the width of a range bucket.
	BucketMinutes = 15
	// TopRanges is how many buckets a histogram keeps.
	TopRanges = 5
	// TopRanking is how many workers a ranking keeps.
	TopRanking = 10
	// NoPeak labels the peak bucket of an empty histogram.
	NoPeak = "N/A"
)
