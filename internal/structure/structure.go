package structure

import "context"

// Input is the entry text handed to the model.
type Input struct {
	Title       string
	Description string
	Link        string
	University  string
}

// Result holds the model-extracted fields. Absent fields stay empty; nothing
// is fabricated on top of what the model returned.
type Result struct {
	Domain         string   `json:"domain"`
	SubDomain      string   `json:"sub_domain"`
	Deadline       string   `json:"deadline"`
	Eligibility    string   `json:"eligibility"`
	SkillsRequired []string `json:"skills_required"`
}

// Structurer turns raw entry text into structured fields. A nil Result with a
// nil error means the model judged the text not to be a genuine opportunity
// (or the call budget ran out); the caller falls back to classifier fields.
type Structurer interface {
	Structure(ctx context.Context, in Input) (*Result, error)
}
