package event

import (
	"fmt"
	"testing"
	"time"

	"github.com/gatherly/gatherly/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var filterNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.Local)

func newFilterEvents() []model.Event {
	return []model.Event{
		{ID: 1, Title: "React Meetup #1", City: "Ljubljana", Country: "Slovenia", Category: "tech", Date: filterNow.AddDate(0, 0, 5)},
		{ID: 2, Title: "React Workshop", City: "Maribor", Country: "Slovenia", Category: "tech", Date: filterNow.AddDate(0, 0, 12)},
		{ID: 3, Title: "Remote Standup Club", City: "online", Country: "", Category: "tech", Date: filterNow.Add(2 * time.Hour)},
		{ID: 4, Title: "Sunday Hiking Trip", City: "Bled", Country: "Slovenia", Category: "outdoors", Date: filterNow.AddDate(0, 0, 3)},
		{ID: 5, Title: "Old React Meetup", City: "Ljubljana", Country: "Slovenia", Category: "tech", Date: filterNow.AddDate(0, 0, -10)},
	}
}

func TestFilter_TitlePrefix(t *testing.T) {
	events, total := Filter(newFilterEvents(), FilterParams{Query: "react"}, filterNow)

	assert.Equal(t, 2, total)
	require.Len(t, events, 2)
	assert.Equal(t, uint(1), events[0].ID)
	assert.Equal(t, uint(2), events[1].ID)
}

func TestFilter_CityAndCountry(t *testing.T) {
	events, total := Filter(newFilterEvents(), FilterParams{City: "Ljubljana, Slovenia"}, filterNow)

	assert.Equal(t, 2, total)
	require.Len(t, events, 2)
	assert.Equal(t, uint(1), events[0].ID)
	assert.Equal(t, uint(5), events[1].ID)
}

func TestFilter_CitySubstring(t *testing.T) {
	events, total := Filter(newFilterEvents(), FilterParams{City: "mari"}, filterNow)

	assert.Equal(t, 1, total)
	require.Len(t, events, 1)
	assert.Equal(t, uint(2), events[0].ID)
}

func TestFilter_Category(t *testing.T) {
	events, total := Filter(newFilterEvents(), FilterParams{Category: "Outdoors"}, filterNow)

	assert.Equal(t, 1, total)
	require.Len(t, events, 1)
	assert.Equal(t, uint(4), events[0].ID)
}

func TestFilter_Today(t *testing.T) {
	events, total := Filter(newFilterEvents(), FilterParams{Date: "today"}, filterNow)

	assert.Equal(t, 1, total)
	require.Len(t, events, 1)
	assert.Equal(t, uint(3), events[0].ID)
}

func TestFilter_ThisWeek_ExcludesPastAndFarFuture(t *testing.T) {
	events, total := Filter(newFilterEvents(), FilterParams{Date: "this-week"}, filterNow)

	assert.Equal(t, 3, total)
	require.Len(t, events, 3)
	ids := []uint{events[0].ID, events[1].ID, events[2].ID}
	assert.ElementsMatch(t, []uint{1, 3, 4}, ids)
}

func TestFilter_ThisMonth_MatchesMonthAndYear(t *testing.T) {
	events := newFilterEvents()
	// same month a year earlier must not match
	events = append(events, model.Event{ID: 6, Title: "Last Year", City: "Ljubljana", Date: filterNow.AddDate(-1, 0, 0)})

	filtered, total := Filter(events, FilterParams{Date: "this-month"}, filterNow)

	assert.Equal(t, 4, total)
	for _, e := range filtered {
		assert.NotEqual(t, uint(6), e.ID)
		assert.Equal(t, filterNow.Month(), e.Date.Month())
	}
}

func TestFilter_Online(t *testing.T) {
	events, total := Filter(newFilterEvents(), FilterParams{Type: "online"}, filterNow)

	assert.Equal(t, 1, total)
	require.Len(t, events, 1)
	assert.Equal(t, uint(3), events[0].ID)
}

func TestFilter_InPerson(t *testing.T) {
	_, total := Filter(newFilterEvents(), FilterParams{Type: "in-person"}, filterNow)

	assert.Equal(t, 4, total)
}

func TestFilter_SortSoonest(t *testing.T) {
	events, _ := Filter(newFilterEvents(), FilterParams{Sort: "soonest"}, filterNow)

	require.Len(t, events, 5)
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].Date.Before(events[i-1].Date))
	}
}

func TestFilter_SortRecent(t *testing.T) {
	events, _ := Filter(newFilterEvents(), FilterParams{Sort: "recent"}, filterNow)

	require.Len(t, events, 5)
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].Date.After(events[i-1].Date))
	}
}

func TestFilter_Pagination(t *testing.T) {
	var events []model.Event
	for i := 1; i <= 12; i++ {
		events = append(events, model.Event{ID: uint(i), Title: fmt.Sprintf("Event %d", i), City: "Ljubljana", Date: filterNow.AddDate(0, 0, i)})
	}

	page1, total := Filter(events, FilterParams{}, filterNow)
	assert.Equal(t, 12, total)
	assert.Len(t, page1, 9)

	page2, total := Filter(events, FilterParams{Page: 2}, filterNow)
	assert.Equal(t, 12, total)
	require.Len(t, page2, 3)
	assert.Equal(t, uint(10), page2[0].ID)

	empty, total := Filter(events, FilterParams{Page: 5}, filterNow)
	assert.Equal(t, 12, total)
	assert.Empty(t, empty)
}

func TestFilter_PageSize(t *testing.T) {
	events, total := Filter(newFilterEvents(), FilterParams{PageSize: 2, Page: 2}, filterNow)

	assert.Equal(t, 5, total)
	require.Len(t, events, 2)
	assert.Equal(t, uint(3), events[0].ID)
}

func TestFilter_CombinedFilters(t *testing.T) {
	events, total := Filter(newFilterEvents(), FilterParams{Query: "react", City: "ljubljana", Category: "tech", Sort: "soonest"}, filterNow)

	assert.Equal(t, 1, total)
	require.Len(t, events, 1)
	assert.Equal(t, uint(1), events[0].ID)
}
