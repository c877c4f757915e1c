package booking

import "sort"

// Table is the subset of catalog table data the assignment strategy needs.
type Table struct {
	ID       int64
	Number   int
	Capacity int
}

// Assignment pairs a time slot with the table that would serve it. At most one
// assignment exists per slot.
type Assignment struct {
	Slot  string
	Table Table
}

// BookedFunc reports whether a confirmed reservation already claims the given
// table at the given slot.
type BookedFunc func(tableID int64, slot string) bool

// FirstFit computes one assignment per bookable slot: for each slot in grid
// order it picks the first free table, in ascending capacity order, that seats
// the party. Smaller sufficient tables are preferred so larger tables stay
// free for larger parties. This is a deliberate greedy strategy, not a global
// optimizer.
func FirstFit(slots []string, tables []Table, partySize int, booked BookedFunc) []Assignment {
	if partySize <= 0 || booked == nil {
		return nil
	}

	suitable := make([]Table, 0, len(tables))
	for _, table := range tables {
		if table.Capacity >= partySize {
			suitable = append(suitable, table)
		}
	}
	if len(suitable) == 0 {
		return nil
	}

	sort.SliceStable(suitable, func(i, j int) bool {
		if suitable[i].Capacity == suitable[j].Capacity {
			return suitable[i].ID < suitable[j].ID
		}
		return suitable[i].Capacity < suitable[j].Capacity
	})

	assignments := make([]Assignment, 0, len(slots))
	for _, slot := range slots {
		for _, table := range suitable {
			if booked(table.ID, slot) {
				continue
			}
			assignments = append(assignments, Assignment{Slot: slot, Table: table})
			break
		}
	}

	return assignments
}
