package dataprocessing

import (
	"sort"
	"strings"

	"guestcomplaints/pkg/contracts/domain"
)

// Scores at or above this value are treated as non-actionable and left out
// of reports.
const minPositiveScore = 8

// Apply returns the records matching f, in input order. Records with blank
// comments are always dropped. The input slice is not modified.
func Apply(records []domain.ComplaintRecord, f domain.Filter) []domain.ComplaintRecord {
	months := toSet(f.Months)
	units := toSet(f.Units)
	allLocations := isAllLocations(f.Location)

	out := make([]domain.ComplaintRecord, 0, len(records))
	for _, r := range records {
		if len(months) > 0 && !months[r.Month] {
			continue
		}
		if !allLocations && r.Location != f.Location {
			continue
		}
		if len(units) > 0 && !units[r.Unit] {
			continue
		}
		if len(f.Topics) > 0 && !matchesAnyTopic(r.Topics, f.Topics) {
			continue
		}
		if r.HasBlankComment() {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ForReport drops records scored 8 or above and records with blank comments.
// Records without a score are kept.
func ForReport(records []domain.ComplaintRecord) []domain.ComplaintRecord {
	out := make([]domain.ComplaintRecord, 0, len(records))
	for _, r := range records {
		if r.Score != nil && *r.Score >= minPositiveScore && *r.Score <= 10 {
			continue
		}
		if r.HasBlankComment() {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortByDate returns a copy sorted ascending by review date. Records without
// a date go last; ties keep their input order.
func SortByDate(records []domain.ComplaintRecord) []domain.ComplaintRecord {
	out := make([]domain.ComplaintRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].ReviewDate, out[j].ReviewDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return out
}

// Options lists the selector values for records. Units are restricted to
// the months and location of f; an empty month list means every month.
// Months, locations and topics always cover every record.
func Options(records []domain.ComplaintRecord, f domain.Filter) domain.FilterOptions {
	selected := toSet(f.Months)
	allLocations := isAllLocations(f.Location)

	monthSet := map[string]bool{}
	locationSet := map[string]bool{}
	unitSet := map[string]bool{}
	topicSet := map[string]bool{}

	for _, r := range records {
		monthSet[r.Month] = true
		locationSet[r.Location] = true
		inMonth := len(selected) == 0 || selected[r.Month]
		inLocation := allLocations || r.Location == f.Location
		if inMonth && inLocation {
			if r.Unit != "" {
				unitSet[r.Unit] = true
			}
		}
		for _, t := range SplitTopics(r.Topics) {
			topicSet[t] = true
		}
	}

	return domain.FilterOptions{
		Months:    sortedKeys(monthSet),
		Locations: sortedKeys(locationSet),
		Units:     sortedKeys(unitSet),
		Topics:    sortedKeys(topicSet),
	}
}

// SplitTopics splits a joined topic string.
func SplitTopics(topics string) []string {
	if topics == "" {
		return nil
	}
	return strings.Split(topics, domain.TopicSeparator)
}

// matchesAnyTopic checks each selected topic against the joined string.
// Matching is substring containment, so a topic whose name is contained in
// another topic's name also selects that topic.
func matchesAnyTopic(joined string, selected []string) bool {
	for _, t := range selected {
		if strings.Contains(joined, t) {
			return true
		}
	}
	return false
}

func isAllLocations(location string) bool {
	return location == "" || location == domain.AllLocations
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
