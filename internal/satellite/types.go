package satellite

import (
	"time"

	"github.com/voxtime/voxtime-core/internal/lang"
)

// Satellite is one registered voice device.
type Satellite struct {
	// ID is the registry primary key.
	ID string `json:"id"`

	// EntityID is the stable reference timers store as their owner
	// ("satellite.kitchen").
	EntityID string `json:"entity_id"`

	// Name is the human label shown in dashboards.
	Name string `json:"name"`

	// Area is the room or zone the device lives in.
	Area string `json:"area,omitempty"`

	// Language selects the lexicon for decoding and announcements.
	Language lang.Code `json:"language"`

	// Use24Hour renders announcements as "14:30" instead of "2:30 PM".
	Use24Hour bool `json:"use_24_hour"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeepCopy returns an independent copy.
func (s *Satellite) DeepCopy() *Satellite {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}
