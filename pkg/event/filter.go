package event

import (
	"sort"
	"strings"
	"time"

	"github.com/gatherly/gatherly/pkg/model"
)

// FilterParams mirror the /filter query parameters. Zero values mean "don't
// filter on this".
type FilterParams struct {
	Query    string // title prefix, case-insensitive
	City     string // "city" or "city, country", substring match
	Category string // exact match, case-insensitive
	Date     string // today | this-week | this-month
	Type     string // online | in-person
	Sort     string // soonest | recent
	Page     int
	PageSize int
}

const defaultPageSize = 9

// Filter applies the search parameters to the full event set in memory and
// slices out the requested page. The whole set is materialized before
// pagination, which is fine at the volumes this service deals with.
func Filter(events []model.Event, params FilterParams, now time.Time) ([]model.Event, int) {
	if query := strings.ToLower(params.Query); query != "" {
		events = keep(events, func(e model.Event) bool {
			return strings.HasPrefix(strings.ToLower(e.Title), query)
		})
	}

	if cityQuery := strings.ToLower(params.City); cityQuery != "" {
		parts := strings.SplitN(cityQuery, ",", 2)
		city := strings.TrimSpace(parts[0])
		country := ""
		if len(parts) == 2 {
			country = strings.TrimSpace(parts[1])
		}

		events = keep(events, func(e model.Event) bool {
			eventCity := strings.ToLower(e.City)
			eventCountry := strings.ToLower(e.Country)

			if city != "" && country == "" {
				return strings.Contains(eventCity, city)
			}
			if city == "" && country != "" {
				return strings.Contains(eventCountry, country)
			}
			return strings.Contains(eventCity, city) && strings.Contains(eventCountry, country)
		})
	}

	if category := strings.ToLower(params.Category); category != "" {
		events = keep(events, func(e model.Event) bool {
			return strings.ToLower(e.Category) == category
		})
	}

	switch params.Date {
	case "today":
		events = keep(events, func(e model.Event) bool {
			return sameDay(e.Date.Local(), now)
		})
	case "this-week":
		events = keep(events, func(e model.Event) bool {
			diff := e.Date.Sub(now)
			return diff >= 0 && diff <= 7*24*time.Hour
		})
	case "this-month":
		events = keep(events, func(e model.Event) bool {
			local := e.Date.Local()
			return local.Month() == now.Month() && local.Year() == now.Year()
		})
	}

	switch params.Type {
	case "online":
		events = keep(events, func(e model.Event) bool { return e.IsOnline() })
	case "in-person":
		events = keep(events, func(e model.Event) bool { return !e.IsOnline() })
	}

	switch params.Sort {
	case "soonest":
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Date.Before(events[j].Date)
		})
	case "recent":
		sort.SliceStable(events, func(i, j int) bool {
			return events[j].Date.Before(events[i].Date)
		})
	}

	total := len(events)

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	start := (page - 1) * pageSize
	if start >= total {
		return []model.Event{}, total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return events[start:end], total
}

func keep(events []model.Event, predicate func(model.Event) bool) []model.Event {
	kept := events[:0:len(events)]
	for _, e := range events {
		if predicate(e) {
			kept = append(kept, e)
		}
	}
	return kept
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
