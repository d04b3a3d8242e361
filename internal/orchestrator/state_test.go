package orchestrator

import "testing"

func TestStateTableTracksConsecutiveFailures(t *testing.T) {
	st := newStateTable()
	st.record("DISPATCHIS", StatusFailed, 0, "boom")
	st.record("DISPATCHIS", StatusFailed, 0, "boom again")

	snap := st.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("expected 1 tracked source, got %d", len(snap))
	}
	if snap[0].ConsecutiveFailures != 2 {
		t.Fatalf("expected 2 consecutive failures, got %d", snap[0].ConsecutiveFailures)
	}
	if snap[0].LastError != "boom again" {
		t.Fatalf("expected latest error message retained, got %q", snap[0].LastError)
	}

	st.record("DISPATCHIS", StatusOK, 10, "")
	snap = st.Snapshot()
	if snap[0].ConsecutiveFailures != 0 {
		t.Fatalf("expected failure count reset after a success, got %d", snap[0].ConsecutiveFailures)
	}
	if snap[0].RowsLastRun != 10 {
		t.Fatalf("expected rows-last-run updated, got %d", snap[0].RowsLastRun)
	}
}

func TestStateTableSkipDoesNotAffectFailureCount(t *testing.T) {
	st := newStateTable()
	st.record("STPASA", StatusFailed, 0, "err")
	st.record("STPASA", StatusSkipped, 0, "")

	snap := st.Snapshot()
	if snap[0].LastStatus != StatusSkipped {
		t.Fatalf("expected last status skipped, got %v", snap[0].LastStatus)
	}
	if snap[0].ConsecutiveFailures != 1 {
		t.Fatalf("skip should not reset or increment failure count, got %d", snap[0].ConsecutiveFailures)
	}
}
