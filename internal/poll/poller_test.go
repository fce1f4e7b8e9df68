package poll

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"oppintel-engine/internal/pipeline"
)

func TestExecuteSerializesRuns(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	p := New(nil, func(ctx context.Context) (pipeline.Summary, error) {
		close(started)
		<-release
		return pipeline.Summary{Inserted: 1}, nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := p.Execute(context.Background())
		require.NoError(t, err)
	}()

	<-started
	require.True(t, p.Status().Running)

	// Second trigger while the first run holds the gate.
	_, err := p.Execute(context.Background())
	require.ErrorIs(t, err, ErrAlreadyRunning)

	close(release)
	wg.Wait()

	st := p.Status()
	require.False(t, st.Running)
	require.NotNil(t, st.LastSummary)
	require.Equal(t, 1, st.LastSummary.Inserted)
	require.Empty(t, st.LastError)

	// Gate is free again.
	_, err = p.Execute(context.Background())
	require.NoError(t, err)
}

func TestExecuteRecordsError(t *testing.T) {
	p := New(nil, func(ctx context.Context) (pipeline.Summary, error) {
		return pipeline.Summary{}, context.DeadlineExceeded
	})

	_, err := p.Execute(context.Background())
	require.Error(t, err)
	st := p.Status()
	require.Equal(t, context.DeadlineExceeded.Error(), st.LastError)
	require.Empty(t, st.LastOkAt)
}
