package nutrition

import (
	"time"

	"github.com/google/uuid"

	"heybabyy/internal/models"
)

// Clock supplies the timestamp stamped on new entries
type Clock interface {
	Now() time.Time
}

// IDGenerator supplies unique entry ids
type IDGenerator interface {
	NewID() string
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type uuidGenerator struct{}

func (uuidGenerator) NewID() string { return uuid.NewString() }

// FeedingOptions carries the optional fields of a feeding
type FeedingOptions struct {
	Quantity *float64
	Duration *float64
	Notes    string
}

// EntryFactory builds feeding and diaper entries stamped with an id and
// the current time.
type EntryFactory struct {
	clock Clock
	ids   IDGenerator
}

// NewEntryFactory creates a factory; nil arguments fall back to the wall
// clock and random UUIDs
func NewEntryFactory(clock Clock, ids IDGenerator) *EntryFactory {
	if clock == nil {
		clock = systemClock{}
	}
	if ids == nil {
		ids = uuidGenerator{}
	}
	return &EntryFactory{clock: clock, ids: ids}
}

// NewFeeding creates a feeding entry of the given type
func (f *EntryFactory) NewFeeding(feedType models.FeedType, opts FeedingOptions) models.FeedingEntry {
	return models.FeedingEntry{
		ID:        f.ids.NewID(),
		Timestamp: f.clock.Now(),
		Type:      feedType,
		Quantity:  opts.Quantity,
		Duration:  opts.Duration,
		Notes:     opts.Notes,
	}
}

// NewDiaper creates a diaper entry
func (f *EntryFactory) NewDiaper(wet, stool bool, stoolType *models.StoolType) models.DiaperEntry {
	return models.DiaperEntry{
		ID:        f.ids.NewID(),
		Timestamp: f.clock.Now(),
		Wet:       wet,
		Stool:     stool,
		StoolType: stoolType,
	}
}

// Stamp gives parsed entries an id and timestamp each
func (f *EntryFactory) Stamp(parsed models.ParseResult) ([]models.FeedingEntry, []models.DiaperEntry) {
	feedings := make([]models.FeedingEntry, 0, len(parsed.Feedings))
	for _, p := range parsed.Feedings {
		feedings = append(feedings, f.NewFeeding(p.Type, FeedingOptions{
			Quantity: p.Quantity,
			Duration: p.Duration,
			Notes:    p.Notes,
		}))
	}
	diapers := make([]models.DiaperEntry, 0, len(parsed.Diapers))
	for _, p := range parsed.Diapers {
		diapers = append(diapers, f.NewDiaper(p.Wet, p.Stool, p.StoolType))
	}
	return feedings, diapers
}
