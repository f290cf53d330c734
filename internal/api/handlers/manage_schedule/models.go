package manage_schedule

// UpsertOverrideRequest HTTP request model с датой строкой
type UpsertOverrideRequest struct {
	Date      string  `json:"date"` // "2026-09-01"
	IsDayOff  bool    `json:"isDayOff"`
	IsTimeOff bool    `json:"isTimeOff"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Note      *string `json:"note,omitempty"`
}
