package visitor

import (
	"strings"
	"unicode"
)

// Status is where a visitor is in the approval/check-in workflow.
// The set is open: records may carry labels this package does not know,
// which are kept and rendered as-is.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusApproved   Status = "Approved"
	StatusCheckedIn  Status = "Checked-in"
	StatusCheckedOut Status = "CheckedOut"
	StatusRejected   Status = "Rejected"
)

// StatusAll is the filter value that disables status filtering.
const StatusAll = "All"

// KnownStatuses lists the labels with summary buckets, in display order.
var KnownStatuses = []Status{StatusPending, StatusApproved, StatusCheckedIn, StatusCheckedOut, StatusRejected}

// NormalizeStatus folds a status label for comparison: lowercase, with
// whitespace, hyphens and underscores removed. "Checked-in", "checked in" and "CheckedIn"
// all normalize to "checkedin".
func NormalizeStatus(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// ParseStatus maps any spelling of a known status onto its canonical label.
// Unknown labels come back trimmed but otherwise untouched.
func ParseStatus(s string) Status {
	n := NormalizeStatus(s)
	for _, k := range KnownStatuses {
		if NormalizeStatus(string(k)) == n {
			return k
		}
	}
	return Status(strings.TrimSpace(s))
}

// Is reports whether s and label name the same status.
func (s Status) Is(label string) bool {
	return NormalizeStatus(string(s)) == NormalizeStatus(label)
}

// IsKnown reports whether s is one of KnownStatuses, in any spelling.
func (s Status) IsKnown() bool {
	for _, k := range KnownStatuses {
		if s.Is(string(k)) {
			return true
		}
	}
	return false
}

// Label returns a human-readable label for the status.
func (s Status) Label() string {
	switch ParseStatus(string(s)) {
	case StatusPending:
		return "Pending"
	case StatusApproved:
		return "Approved"
	case StatusCheckedIn:
		return "Checked In"
	case StatusCheckedOut:
		return "Checked Out"
	case StatusRejected:
		return "Rejected"
	}
	if s == "" {
		return "-"
	}
	return string(s)
}
