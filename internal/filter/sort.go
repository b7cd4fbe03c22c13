package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/maintence-saida/gestion-maintenance/internal/model"
)

// dateLayouts accepted for display ordering, day-first like the source sheets
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"01-02-06",
	"1/2/06",
}

// ParseDate best-effort parse of a record date
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortByDateDesc returns a copy ordered most recent first. Unparseable dates
// follow the parseable ones, empty dates come last; ties keep input order.
func SortByDateDesc(records []model.MaintenanceRecord) []model.MaintenanceRecord {
	type keyed struct {
		rec  model.MaintenanceRecord
		rank int // 0 parsed, 1 unparseable, 2 empty
		at   time.Time
	}

	items := make([]keyed, len(records))
	for i, r := range records {
		k := keyed{rec: r}
		switch t, ok := ParseDate(r.Date); {
		case ok:
			k.at = t
		case strings.TrimSpace(r.Date) == "":
			k.rank = 2
		default:
			k.rank = 1
		}
		items[i] = k
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].rank != items[j].rank {
			return items[i].rank < items[j].rank
		}
		if items[i].rank == 0 {
			return items[i].at.After(items[j].at)
		}
		return false
	})

	out := make([]model.MaintenanceRecord, len(items))
	for i, k := range items {
		out[i] = k.rec
	}
	return out
}
