package structure

import "context"

// Budget caps external calls for the lifetime of one pipeline run. Create a
// fresh Budget per run; the counter is instance state, never process-global,
// so concurrent runs (if they ever happen) cannot leak calls into each other.
type Budget struct {
	inner Structurer
	left  int
}

func NewBudget(inner Structurer, max int) *Budget {
	return &Budget{inner: inner, left: max}
}

// Remaining reports how many external calls this run may still make.
func (b *Budget) Remaining() int { return b.left }

func (b *Budget) Structure(ctx context.Context, in Input) (*Result, error) {
	if b.inner == nil || b.left <= 0 {
		return nil, nil
	}
	b.left--
	return b.inner.Structure(ctx, in)
}
