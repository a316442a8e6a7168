// Package occupancy estimates how many customers are present in the store
// over time. For each operating day it builds a 10-minute-resolution series
// from the per-ticket [entry, exit) intervals; a slot counts every party
// whose entry is at or before the slot start and whose exit is strictly
// after it.
package occupancy

import (
	"sort"
	"time"

	"posreport/internal/pos"
)

// SlotMinutes is the bucket resolution.
const SlotMinutes = 10

// Estimate produces occupancy slots for every operating day in the ticket
// set, ordered by business date then slot start. Slots span
// [earliest entry, latest exit] per day, rounded outward to 10-minute
// boundaries; the business date labels every slot even past midnight.
func Estimate(tickets []pos.Ticket) []pos.OccupancySlot {
	byDay := make(map[time.Time][]pos.Ticket)
	for _, t := range tickets {
		byDay[t.BusinessDate] = append(byDay[t.BusinessDate], t)
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var slots []pos.OccupancySlot
	for _, day := range days {
		slots = append(slots, estimateDay(day, byDay[day])...)
	}
	return slots
}

func estimateDay(day time.Time, tickets []pos.Ticket) []pos.OccupancySlot {
	var earliest, latest time.Time
	for _, t := range tickets {
		if earliest.IsZero() || t.EntryTS.Before(earliest) {
			earliest = t.EntryTS
		}
		if latest.IsZero() || t.ExitTS.After(latest) {
			latest = t.ExitTS
		}
	}
	if earliest.IsZero() || !latest.After(earliest) {
		return nil
	}

	start := floorToSlot(earliest)
	end := ceilToSlot(latest)

	var slots []pos.OccupancySlot
	for s := start; s.Before(end); s = s.Add(SlotMinutes * time.Minute) {
		slots = append(slots, pos.OccupancySlot{
			BusinessDate: day,
			SlotStart:    s,
			Occupants:    OccupantsAt(tickets, s),
		})
	}
	return slots
}

// OccupantsAt counts customers present at instant s: entry ≤ s < exit. A
// party exiting exactly at s has already left.
func OccupantsAt(tickets []pos.Ticket, s time.Time) int {
	total := 0
	for _, t := range tickets {
		if !t.EntryTS.After(s) && t.ExitTS.After(s) {
			total += t.CustomerCount
		}
	}
	return total
}

func floorToSlot(t time.Time) time.Time {
	return t.Truncate(SlotMinutes * time.Minute)
}

func ceilToSlot(t time.Time) time.Time {
	floored := floorToSlot(t)
	if floored.Equal(t) {
		return t
	}
	return floored.Add(SlotMinutes * time.Minute)
}
