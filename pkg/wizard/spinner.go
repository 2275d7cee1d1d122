package wizard

// SpinnerStatus is the lifecycle state of one element's asynchronous action.
type SpinnerStatus int

const (
	SpinnerAbsent SpinnerStatus = iota
	SpinnerRunning
	SpinnerSucceeded
	SpinnerFailed
)

// SpinnerTracker stores per-element spinner state, keyed by element index
// within a step's immutable element list. It is a dumb store: preventing a
// second Start while Running is the controller's job, not the tracker's.
// Scoped to one step and reset on step entry.
type SpinnerTracker struct {
	states map[int]SpinnerStatus
}

func NewSpinnerTracker() *SpinnerTracker {
	return &SpinnerTracker{states: make(map[int]SpinnerStatus)}
}

// Start marks the element's action as running.
func (t *SpinnerTracker) Start(index int) {
	t.states[index] = SpinnerRunning
}

// Finish resolves the element's action to succeeded or failed.
func (t *SpinnerTracker) Finish(index int, ok bool) {
	if ok {
		t.states[index] = SpinnerSucceeded
	} else {
		t.states[index] = SpinnerFailed
	}
}

// Status returns the element's current state, SpinnerAbsent when it was never
// started.
func (t *SpinnerTracker) Status(index int) SpinnerStatus {
	return t.states[index]
}

// AnyRunning reports whether any element's action is still in flight. The
// view uses this to keep the spinner animation ticking.
func (t *SpinnerTracker) AnyRunning() bool {
	for _, s := range t.states {
		if s == SpinnerRunning {
			return true
		}
	}
	return false
}
