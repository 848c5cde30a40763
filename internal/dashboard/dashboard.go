package dashboard

import "github.com/frahmantamala/internship-management/internal/auth"

// Stats are the headline counts of the dashboard, already restricted to the
// caller's data scope. Companies are not row scoped.
type Stats struct {
	Scope       auth.DataScope   `json:"scope"`
	Students    int              `json:"students"`
	Companies   int              `json:"companies"`
	Internships InternshipCounts `json:"internships"`
}

type InternshipCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Approved   int `json:"approved"`
	Rejected   int `json:"rejected"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

// StatusCount is one row of the per status aggregate.
type StatusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

func (c *InternshipCounts) add(status string, n int) {
	switch status {
	case "pending":
		c.Pending += n
	case "approved":
		c.Approved += n
	case "rejected":
		c.Rejected += n
	case "in_progress":
		c.InProgress += n
	case "completed":
		c.Completed += n
	}
	c.Total += n
}
