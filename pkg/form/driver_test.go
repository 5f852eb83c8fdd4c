package form

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikogura/jobmatcher/pkg/analyzer"
	"github.com/nikogura/jobmatcher/pkg/report"
)

type fakeSubmitter struct {
	calls   atomic.Int32
	last    analyzer.Request
	rep     report.Report
	err     error
	entered chan struct{}
	release chan struct{}
}

func (f *fakeSubmitter) Submit(ctx context.Context, req analyzer.Request) (rep report.Report, err error) {
	f.calls.Add(1)
	f.last = req
	if f.entered != nil {
		close(f.entered)
		<-f.release
	}
	rep = f.rep
	err = f.err
	return rep, err
}

func TestDriverSuccessfulSubmission(t *testing.T) {
	rep, err := report.Parse([]byte(`{"summary_advice": "Learn Kubernetes"}`))
	require.NoError(t, err)

	sub := &fakeSubmitter{rep: rep}
	driver := NewDriver(sub)

	var transitions []State
	driver.OnChange(func(s State) {
		transitions = append(transitions, s)
	})

	ctx := context.Background()
	driver.Dispatch(ctx, SkillsChanged{Text: "Go, Docker"})
	driver.Dispatch(ctx, DesiredJobsChanged{Text: " Platform Engineer "})
	final := driver.Dispatch(ctx, SubmitRequested{})

	assert.Equal(t, int32(1), sub.calls.Load())
	assert.Equal(t, "Platform Engineer", sub.last.DesiredJobs)
	assert.False(t, final.Loading)
	require.NotNil(t, final.Result)
	assert.Equal(t, "Learn Kubernetes", final.Result.SummaryAdvice.Str)
	assert.Equal(t, final, driver.State())

	// skills, jobs, submitting, succeeded
	require.Len(t, transitions, 4)
	assert.True(t, transitions[2].Loading)
	assert.False(t, transitions[3].Loading)
}

func TestDriverValidationMakesNoRequest(t *testing.T) {
	sub := &fakeSubmitter{}
	driver := NewDriver(sub)

	s := driver.Dispatch(context.Background(), SubmitRequested{})
	assert.Equal(t, MessageNoInput, s.Error)
	assert.Zero(t, sub.calls.Load())

	driver.Dispatch(context.Background(), SkillsChanged{Text: "Go"})
	s = driver.Dispatch(context.Background(), SubmitRequested{})
	assert.Equal(t, MessageSkillsShort, s.Error)
	assert.Zero(t, sub.calls.Load())
}

func TestDriverTimeoutResetsLoading(t *testing.T) {
	sub := &fakeSubmitter{err: &analyzer.TimeoutError{Err: context.DeadlineExceeded}}
	driver := NewDriver(sub)

	driver.Dispatch(context.Background(), SkillsChanged{Text: "Go, SQL"})
	s := driver.Dispatch(context.Background(), SubmitRequested{})

	assert.Equal(t, "Request timed out.", s.Error)
	assert.False(t, s.Loading)
	assert.Equal(t, OutcomeTimedOut, s.Outcome)
}

func TestDriverSingleSubmissionInFlight(t *testing.T) {
	sub := &fakeSubmitter{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	driver := NewDriver(sub)
	ctx := context.Background()
	driver.Dispatch(ctx, SkillsChanged{Text: "Go, SQL"})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		driver.Dispatch(ctx, SubmitRequested{})
	}()

	<-sub.entered
	s := driver.Dispatch(ctx, SubmitRequested{})
	assert.True(t, s.Loading)
	assert.Equal(t, int32(1), sub.calls.Load())

	close(sub.release)
	wg.Wait()

	assert.False(t, driver.State().Loading)
	assert.Equal(t, int32(1), sub.calls.Load())
}
