package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"oppintel-engine/internal/domain"
)

// InsertIfNew checks the natural key (title + university) and inserts only
// when no prior record matches. Existing records are never merged or updated.
// Each insert commits on its own, so a failed run keeps earlier rows.
func (d *DB) InsertIfNew(ctx context.Context, o domain.Opportunity) (added bool, err error) {
	exists, err := d.Exists(ctx, o.Title, o.University)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	firstSeen := o.FirstSeen
	if firstSeen.IsZero() {
		firstSeen = time.Now().UTC()
	}

	_, err = d.Pool.ExecContext(ctx, d.rebind(`
INSERT INTO opportunities
  (title, university, category, domain, sub_domain, deadline, eligibility, skills_required, application_link, first_seen)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`),
		o.Title, o.University, o.Category, o.Domain, o.SubDomain,
		o.Deadline, o.Eligibility, FlattenSkills(o.Skills),
		o.ApplicationLink, firstSeen.Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("insert opportunity: %w", err)
	}
	return true, nil
}

func (d *DB) Exists(ctx context.Context, title, university string) (bool, error) {
	var n int
	err := d.Pool.QueryRowContext(ctx, d.rebind(`
SELECT COUNT(1) FROM opportunities WHERE title = ? AND university = ?;`),
		title, university,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// List returns every persisted record, newest first. No pagination; the
// opportunity table stays small enough that a full scan is fine.
func (d *DB) List(ctx context.Context) ([]domain.Opportunity, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, title, university, category, domain, sub_domain, deadline, eligibility, skills_required, application_link, first_seen
FROM opportunities
ORDER BY id DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Opportunity{}
	for rows.Next() {
		var o domain.Opportunity
		var skills, firstSeen string
		if err := rows.Scan(
			&o.ID, &o.Title, &o.University, &o.Category, &o.Domain,
			&o.SubDomain, &o.Deadline, &o.Eligibility, &skills,
			&o.ApplicationLink, &firstSeen,
		); err != nil {
			return nil, err
		}
		o.Skills = SplitSkills(skills)
		o.FirstSeen, _ = time.Parse(time.RFC3339, firstSeen)
		out = append(out, o)
	}
	return out, rows.Err()
}

// FlattenSkills serializes the skills list as comma-joined text. An empty
// list becomes the empty string.
func FlattenSkills(skills []string) string {
	return strings.Join(skills, ",")
}

func SplitSkills(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
