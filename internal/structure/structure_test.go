package structure

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		res, err := ParseResponse(`{"domain":"Biology","sub_domain":"Genomics","deadline":"October 15","eligibility":"PhD students","skills_required":["Python","ML"]}`)
		require.NoError(t, err)
		require.NotNil(t, res)
		require.Equal(t, "Biology", res.Domain)
		require.Equal(t, []string{"Python", "ML"}, res.SkillsRequired)
	})

	t.Run("fenced JSON", func(t *testing.T) {
		res, err := ParseResponse("```json\n{\"domain\":\"CS\"}\n```")
		require.NoError(t, err)
		require.NotNil(t, res)
		require.Equal(t, "CS", res.Domain)
	})

	t.Run("null means not an opportunity", func(t *testing.T) {
		res, err := ParseResponse("null")
		require.NoError(t, err)
		require.Nil(t, res)
	})

	t.Run("empty response", func(t *testing.T) {
		res, err := ParseResponse("  \n ")
		require.NoError(t, err)
		require.Nil(t, res)
	})

	t.Run("garbage is an error", func(t *testing.T) {
		_, err := ParseResponse("Sure! Here is the JSON you asked for")
		require.Error(t, err)
	})
}

type countingStructurer struct {
	calls int
	res   *Result
	err   error
}

func (c *countingStructurer) Structure(ctx context.Context, in Input) (*Result, error) {
	c.calls++
	return c.res, c.err
}

func TestBudgetCapsCalls(t *testing.T) {
	inner := &countingStructurer{res: &Result{Domain: "CS"}}
	b := NewBudget(inner, 3)

	for i := 0; i < 10; i++ {
		res, err := b.Structure(context.Background(), Input{Title: "t"})
		require.NoError(t, err)
		if i < 3 {
			require.NotNil(t, res)
		} else {
			require.Nil(t, res, "call %d should be over budget", i)
		}
	}
	require.Equal(t, 3, inner.calls)
	require.Equal(t, 0, b.Remaining())
}

func TestBudgetCountsFailedCalls(t *testing.T) {
	inner := &countingStructurer{err: errors.New("timeout")}
	b := NewBudget(inner, 2)

	_, err := b.Structure(context.Background(), Input{})
	require.Error(t, err)
	require.Equal(t, 1, b.Remaining())
}

func TestBudgetNilInner(t *testing.T) {
	b := NewBudget(nil, 5)
	res, err := b.Structure(context.Background(), Input{})
	require.NoError(t, err)
	require.Nil(t, res)
}
