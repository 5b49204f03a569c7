package visitor

// CountByStatus returns how many records carry label, compared the same
// way the status filter compares them. label must be a concrete status,
// not "All" or "".
func CountByStatus(records []*Record, label string) int {
	n := 0
	for _, r := range records {
		if r.Status.Is(label) {
			n++
		}
	}
	return n
}

// Summary holds the figures shown on summary cards.
type Summary struct {
	Total    int            `json:"total"`
	ByStatus map[Status]int `json:"by_status"`
}

// Count returns the number of records in the bucket for s.
func (s Summary) Count(st Status) int {
	return s.ByStatus[ParseStatus(string(st))]
}

// Summarize tallies records per known status. Records with an unknown
// status add to Total only.
func Summarize(records []*Record) Summary {
	s := Summary{Total: len(records), ByStatus: make(map[Status]int, len(KnownStatuses))}
	for _, k := range KnownStatuses {
		s.ByStatus[k] = 0
	}
	for _, r := range records {
		if k := ParseStatus(string(r.Status)); r.Status.IsKnown() {
			s.ByStatus[k]++
		}
	}
	return s
}
