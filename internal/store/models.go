package store

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"weather-companion/internal/forecast"
)

// WeatherRequest is a stored weather lookup: the user's input, the
// resolved location, the normalized snapshot as JSON, and the narrative
// summary generated for it.
type WeatherRequest struct {
	ID           string  `gorm:"primaryKey;size:36" json:"id"`
	UserInput    string  `gorm:"size:256;not null" json:"user_input"`
	ResolvedName string  `gorm:"size:256" json:"resolved_name"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	StartDate    string  `gorm:"size:20" json:"start_date,omitempty"`
	EndDate      string  `gorm:"size:20" json:"end_date,omitempty"`
	WeatherJSON  string  `gorm:"type:text" json:"-"`
	Summary      string  `gorm:"type:text" json:"summary"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *WeatherRequest) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Snapshot decodes the stored forecast snapshot. A record with corrupt or
// missing JSON yields an empty snapshot rather than an error; downstream
// composers degrade gracefully on empty data.
func (r *WeatherRequest) Snapshot() forecast.WeatherSnapshot {
	var snap forecast.WeatherSnapshot
	if err := json.Unmarshal([]byte(r.WeatherJSON), &snap); err != nil {
		return forecast.WeatherSnapshot{}
	}
	return snap
}

// SetSnapshot encodes and stores the snapshot on the record.
func (r *WeatherRequest) SetSnapshot(snap forecast.WeatherSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	r.WeatherJSON = string(data)
	return nil
}

// Range returns the record's requested date window, or nil when no window
// was supplied.
func (r *WeatherRequest) Range() *forecast.DateRange {
	if r.StartDate == "" || r.EndDate == "" {
		return nil
	}
	return &forecast.DateRange{Start: r.StartDate, End: r.EndDate}
}
