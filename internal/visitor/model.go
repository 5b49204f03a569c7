// Package visitor provides the visitor record model and the
// query/filter/paginate pipeline shared by every screen.
package visitor

import "time"

// Host is the person a visitor comes to see.
type Host struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Email string `json:"email,omitempty"`
}

// Record is one registered visit.
type Record struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	ContactNumber string    `json:"contact_number"`
	Purpose       string    `json:"purpose"`
	Department    string    `json:"department"`
	HostID        *int64    `json:"host_id,omitempty"`
	Host          *Host     `json:"host,omitempty"` // set when the query expands the host relation
	VisitDate     Date      `json:"visit_date"`
	InTime        Clock     `json:"in_time"`
	OutTime       Clock     `json:"out_time"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// HostName returns the expanded host's display name, or "N/A".
func (r *Record) HostName() string {
	if r.Host == nil || r.Host.Title == "" {
		return "N/A"
	}
	return r.Host.Title
}

// NewRecord holds the fields supplied when registering a visitor.
// The store assigns ID and CreatedAt.
type NewRecord struct {
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	ContactNumber string `json:"contact_number"`
	Purpose       string `json:"purpose"`
	Department    string `json:"department"`
	HostID        int64  `json:"host_id"`
	VisitDate     Date   `json:"visit_date"`
	InTime        Clock  `json:"in_time"`
	Status        Status `json:"status"`
}
