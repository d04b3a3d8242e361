package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runs chan struct{}
	err  error
}

func (j *countingJob) Run() error {
	if j.err != nil {
		return j.err
	}
	j.runs <- struct{}{}
	return nil
}

func (j *countingJob) Name() string { return "counting-job" }

func TestRunNowExecutesImmediately(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{runs: make(chan struct{}, 1)}
	require.NoError(t, s.RunNow(job))

	select {
	case <-job.runs:
	default:
		t.Fatal("expected RunNow to invoke the job synchronously")
	}
}

func TestAddJobRejectsMalformedSchedule(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{runs: make(chan struct{}, 1)}
	err := s.AddJob("not a cron expression", job)
	require.Error(t, err)
}

func TestAddJobFiresOnSchedule(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{runs: make(chan struct{}, 4)}
	require.NoError(t, s.AddJob("* * * * * *", job))
	s.Start()
	defer s.Stop()

	select {
	case <-job.runs:
	case <-time.After(3 * time.Second):
		t.Fatal("expected job to fire within 3 seconds of a per-second schedule")
	}
}

func TestRunNowPropagatesJobError(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{runs: make(chan struct{}, 1), err: errors.New("boom")}
	err := s.RunNow(job)
	require.Error(t, err)
}
