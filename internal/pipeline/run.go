package pipeline

import (
	"context"
	"log"
	"time"

	"oppintel-engine/internal/classify"
	"oppintel-engine/internal/domain"
	"oppintel-engine/internal/structure"
)

type Fetcher interface {
	Fetch(ctx context.Context, src domain.Source) ([]domain.RawEntry, error)
}

type Recorder interface {
	Exists(ctx context.Context, title, university string) (bool, error)
	InsertIfNew(ctx context.Context, o domain.Opportunity) (bool, error)
}

type Deps struct {
	Sources    []domain.Source
	Feeds      Fetcher
	Structurer structure.Structurer // nil disables structuring entirely
	CallBudget int
	Backoff    time.Duration // sleep after a failed structuring call
	Store      Recorder
	OnInsert   func() // SSE notify; may be nil
}

// Summary makes partial failure visible to callers instead of burying it in
// the log.
type Summary struct {
	Sources    int `json:"sources"`
	Fetched    int `json:"fetched"`
	Matched    int `json:"matched"`
	Structured int `json:"structured"`
	Inserted   int `json:"inserted"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// Run is one complete pass over all configured sources: fetch, filter,
// dedup, structure (budget-gated), persist. Sources and entries are handled
// sequentially, one at a time.
func Run(ctx context.Context, d Deps) (Summary, error) {
	var sum Summary
	sum.Sources = len(d.Sources)

	budget := structure.NewBudget(d.Structurer, d.CallBudget)

	for _, src := range d.Sources {
		entries, err := d.Feeds.Fetch(ctx, src)
		if err != nil {
			// Failure is isolated to the source; the run moves on.
			log.Printf("[pipeline] source failed university=%q err=%v", src.University, err)
			sum.Failed++
			continue
		}
		sum.Fetched += len(entries)

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return sum, err
			}

			combined := entry.Title + " " + entry.Summary
			if !classify.IsOpportunity(combined) {
				continue
			}
			sum.Matched++

			// Dedup before structuring: an entry we already hold must not
			// spend budget again on the next run.
			exists, eerr := d.Store.Exists(ctx, entry.Title, src.University)
			if eerr != nil {
				log.Printf("[pipeline] dedup check failed title=%q err=%v", entry.Title, eerr)
				sum.Failed++
				continue
			}
			if exists {
				sum.Skipped++
				continue
			}

			category := classify.Category(combined)
			fallbackDeadline := classify.ExtractDeadline(combined)

			structured, serr := budget.Structure(ctx, structure.Input{
				Title:       entry.Title,
				Description: entry.Summary,
				Link:        entry.Link,
				University:  src.University,
			})
			if serr != nil {
				log.Printf("[pipeline] structuring failed title=%q err=%v", entry.Title, serr)
				if d.Backoff > 0 {
					time.Sleep(d.Backoff)
				}
				structured = nil
			}
			if structured != nil {
				sum.Structured++
			}

			opp := buildRecord(src, entry, category, fallbackDeadline, structured)

			added, ierr := d.Store.InsertIfNew(ctx, opp)
			if ierr != nil {
				log.Printf("[pipeline] insert failed title=%q err=%v", entry.Title, ierr)
				sum.Failed++
				continue
			}
			if !added {
				sum.Skipped++
				continue
			}

			sum.Inserted++
			log.Printf("[pipeline] inserted title=%q university=%q category=%s",
				opp.Title, opp.University, opp.Category)
			if d.OnInsert != nil {
				d.OnInsert()
			}
		}
	}

	log.Printf("[pipeline] run done fetched=%d matched=%d structured=%d inserted=%d skipped=%d failed=%d",
		sum.Fetched, sum.Matched, sum.Structured, sum.Inserted, sum.Skipped, sum.Failed)
	return sum, nil
}

// buildRecord normalizes one entry. Classifier output fills whatever the
// model did not provide; the record keeps the feed's own title and link as
// the stable identity.
func buildRecord(src domain.Source, entry domain.RawEntry, category, fallbackDeadline string, structured *structure.Result) domain.Opportunity {
	opp := domain.Opportunity{
		Title:           entry.Title,
		University:      src.University,
		Category:        category,
		Domain:          "General",
		SubDomain:       "General",
		Deadline:        fallbackDeadline,
		ApplicationLink: entry.Link,
		FirstSeen:       time.Now().UTC(),
	}

	if structured != nil {
		if structured.Domain != "" {
			opp.Domain = structured.Domain
		}
		if structured.SubDomain != "" {
			opp.SubDomain = structured.SubDomain
		}
		if structured.Deadline != "" {
			opp.Deadline = structured.Deadline
		}
		opp.Eligibility = structured.Eligibility
		opp.Skills = structured.SkillsRequired
	}
	return opp
}
