package punch

// RawPunch is a single clock-in/out event as exported by the time clock.
// Only Worker, Date and Time take part in attendance inference.
type RawPunch struct {
	Worker    string `json:"User"`
	WorkID    string `json:"WorkId"`
	CardNo    string `json:"CardNo"`
	Date      string `json:"Date"`
	Time      string `json:"Time"`
	Direction string `json:"IN/OUT"`
	EventCode string `json:"EventCode"`
}
