package domain

import "time"

// Opportunity is the persisted record. Skills are kept as a slice in memory
// and flattened to a comma-joined string by the store.
type Opportunity struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	University      string    `json:"university"`
	Category        string    `json:"category"`
	Domain          string    `json:"domain"`
	SubDomain       string    `json:"sub_domain"`
	Deadline        string    `json:"deadline"`
	Eligibility     string    `json:"eligibility"`
	Skills          []string  `json:"skills_required"`
	ApplicationLink string    `json:"application_link"`
	FirstSeen       time.Time `json:"first_seen"`
}

// RawEntry is one feed item before filtering. Not persisted.
type RawEntry struct {
	Title   string
	Summary string
	Link    string
}

// Source is one configured university feed.
type Source struct {
	University string
	URL        string
}
