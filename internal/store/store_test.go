package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"oppintel-engine/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open("", t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())
	return db
}

func TestRewriteScheme(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgresql://u:p@host:5432/db", "postgres://u:p@host:5432/db"},
		{"postgres://u:p@host:5432/db", "postgres://u:p@host:5432/db"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := RewriteScheme(tt.in); got != tt.want {
			t.Errorf("RewriteScheme(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRebind(t *testing.T) {
	pg := &DB{Driver: DriverPostgres}
	got := pg.rebind(`SELECT 1 FROM t WHERE a = ? AND b = ?;`)
	want := `SELECT 1 FROM t WHERE a = $1 AND b = $2;`
	require.Equal(t, want, got)

	lite := &DB{Driver: DriverSQLite}
	q := `SELECT 1 FROM t WHERE a = ?;`
	require.Equal(t, q, lite.rebind(q))
}

func TestFlattenSkills(t *testing.T) {
	require.Equal(t, "Python,ML", FlattenSkills([]string{"Python", "ML"}))
	require.Equal(t, "", FlattenSkills(nil))
	require.Equal(t, []string{"Python", "ML"}, SplitSkills("Python,ML"))
	require.Nil(t, SplitSkills(""))
}

func TestInsertIfNewDedup(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	opp := domain.Opportunity{
		Title:           "Yale Fellowship Applications Open for Fall 2025",
		University:      "Yale University",
		Category:        "fellowship",
		Deadline:        "October 15",
		Skills:          []string{"Python", "ML"},
		ApplicationLink: "https://news.yale.edu/fellowship",
	}

	added, err := db.InsertIfNew(ctx, opp)
	require.NoError(t, err)
	require.True(t, added)

	// Same natural key again: skipped, not merged.
	added, err = db.InsertIfNew(ctx, opp)
	require.NoError(t, err)
	require.False(t, added)

	// Same title, different university: distinct record.
	opp2 := opp
	opp2.University = "Harvard University"
	added, err = db.InsertIfNew(ctx, opp2)
	require.NoError(t, err)
	require.True(t, added)

	list, err := db.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, []string{"Python", "ML"}, list[0].Skills)
}

func TestListEmpty(t *testing.T) {
	db := openTestDB(t)
	list, err := db.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}
