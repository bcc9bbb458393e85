package request

import "time"

// PendingGroup is one decision unit: a request and all its pending dates.
type PendingGroup struct {
	RequestID int
	StaffID   int
	Dates     []time.Time
}

// GroupPending collects pending dates by request id, keeping the order in
// which requests were first seen.
func GroupPending(dates []PendingDate) []PendingGroup {
	index := make(map[int]int)
	var groups []PendingGroup
	for _, d := range dates {
		i, ok := index[d.RequestID]
		if !ok {
			i = len(groups)
			index[d.RequestID] = i
			groups = append(groups, PendingGroup{RequestID: d.RequestID, StaffID: d.StaffID})
		}
		groups[i].Dates = append(groups[i].Dates, d.Date)
	}
	return groups
}
