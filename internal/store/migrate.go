package store

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS opportunities (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  university TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT 'general',
  domain TEXT NOT NULL DEFAULT '',
  sub_domain TEXT NOT NULL DEFAULT '',
  deadline TEXT NOT NULL DEFAULT '',
  eligibility TEXT NOT NULL DEFAULT '',
  skills_required TEXT NOT NULL DEFAULT '',
  application_link TEXT NOT NULL DEFAULT '',
  first_seen TEXT NOT NULL
);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS opportunities (
  id BIGSERIAL PRIMARY KEY,
  title TEXT NOT NULL,
  university TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT 'general',
  domain TEXT NOT NULL DEFAULT '',
  sub_domain TEXT NOT NULL DEFAULT '',
  deadline TEXT NOT NULL DEFAULT '',
  eligibility TEXT NOT NULL DEFAULT '',
  skills_required TEXT NOT NULL DEFAULT '',
  application_link TEXT NOT NULL DEFAULT '',
  first_seen TEXT NOT NULL
);
`

const indexSchema = `
CREATE INDEX IF NOT EXISTS idx_opportunities_title
ON opportunities(title, university);
`

// Migrate creates the opportunities table if absent. Idempotent; runs at
// every startup.
func (d *DB) Migrate() error {
	schema := sqliteSchema
	if d.Driver == DriverPostgres {
		schema = postgresSchema
	}
	if _, err := d.Pool.Exec(schema); err != nil {
		return err
	}
	_, err := d.Pool.Exec(indexSchema)
	return err
}
