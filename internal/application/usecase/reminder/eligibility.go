package reminder

import (
	"log/slog"
	"time"

	"github.com/payontime/backend/internal/domain/entity"
	"github.com/payontime/backend/internal/domain/recurrence"
	domainreminder "github.com/payontime/backend/internal/domain/reminder"
	"github.com/payontime/backend/internal/domain/valueobject"
)

// firingItem evaluates one payment on the owner's calendar date.
func firingItem(p *entity.Payment, today valueobject.Date) (Item, bool) {
	due, ok := recurrence.NextDueDateOn(p, today)
	if !ok {
		return Item{}, false
	}
	offsets := domainreminder.OffsetsFiringToday(due, p.RemindOffsets, today)
	if len(offsets) == 0 {
		return Item{}, false
	}
	return Item{Payment: p, DueDate: due, Offsets: offsets}, true
}

// zoneResolver loads each timezone once per run and falls back to the default zone for unknown names.
type zoneResolver struct {
	defaultName string
	defaultLoc  *time.Location
	cache       map[string]*time.Location
}

func newZoneResolver(defaultName string) *zoneResolver {
	loc, ok := valueobject.LoadLocation(defaultName, time.UTC)
	if !ok {
		slog.Warn("Default timezone unknown, using UTC", "timezone", defaultName)
		defaultName = "UTC"
	}
	return &zoneResolver{
		defaultName: defaultName,
		defaultLoc:  loc,
		cache:       make(map[string]*time.Location),
	}
}

// resolve returns the effective zone name and location.
func (z *zoneResolver) resolve(name string) (string, *time.Location) {
	if name == "" {
		return z.defaultName, z.defaultLoc
	}
	if loc, ok := z.cache[name]; ok {
		if loc == nil {
			return z.defaultName, z.defaultLoc
		}
		return name, loc
	}

	loc, ok := valueobject.LoadLocation(name, nil)
	if !ok {
		slog.Warn("Unknown user timezone, using default", "timezone", name, "default", z.defaultName)
		z.cache[name] = nil
		return z.defaultName, z.defaultLoc
	}
	z.cache[name] = loc
	return name, loc
}
