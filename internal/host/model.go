// Package host provides the host (person being visited) model and data access.
package host

import "time"

// Host is a staff member visitors can be registered against.
type Host struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Email      string    `json:"email,omitempty"`
	Department string    `json:"department,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

