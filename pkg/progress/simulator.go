package progress

import (
	"sync"
	"time"
)

// Frame is one progress emission for an outstanding exchange.
type Frame struct {
	SessionID string `json:"session_id"`
	Percent   int    `json:"percent"`
	Done      bool   `json:"done"`
}

// Emitter receives every frame a run produces.
type Emitter func(Frame)

// Simulator produces synthetic progress while a backend call is outstanding.
// The value it reports has no causal link to the real request; it only exists
// so the client can show organic-looking motion instead of a frozen spinner.
type Simulator struct {
	interval time.Duration
	emit     Emitter

	mu   sync.Mutex
	runs map[string]*Run
}

func NewSimulator(interval time.Duration, emit Emitter) *Simulator {
	if emit == nil {
		emit = func(Frame) {}
	}
	return &Simulator{
		interval: interval,
		emit:     emit,
		runs:     make(map[string]*Run),
	}
}

// Start begins a progress run for the given session and returns its handle.
// The exchange layer rejects a second send while one is pending, so a live
// run for the session should not exist; if one does anyway it is stopped
// before the new run takes its slot, so no ticker goroutine is orphaned.
func (s *Simulator) Start(sessionID string) *Run {
	r := &Run{
		sessionID: sessionID,
		sim:       s,
		stop:      make(chan struct{}),
	}

	s.mu.Lock()
	prev := s.runs[sessionID]
	s.runs[sessionID] = r
	s.mu.Unlock()

	if prev != nil {
		prev.Stop()
	}

	go r.loop(s.interval)
	return r
}

// Percent reports the current value for a session, or false when no run is
// active. Backs the polling endpoint.
func (s *Simulator) Percent(sessionID string) (int, bool) {
	s.mu.Lock()
	r, ok := s.runs[sessionID]
	s.mu.Unlock()
	if !ok {
		return 0, false
	}
	return r.Percent(), true
}

// Stop halts the session's run when one is active. Used by the consumer,
// which only knows the session id the exchange was started for.
func (s *Simulator) Stop(sessionID string) {
	s.mu.Lock()
	r, ok := s.runs[sessionID]
	s.mu.Unlock()
	if ok {
		r.Stop()
	}
}

func (s *Simulator) remove(sessionID string, r *Run) {
	s.mu.Lock()
	if s.runs[sessionID] == r {
		delete(s.runs, sessionID)
	}
	s.mu.Unlock()
}

// Run is the handle for one session's progress emission.
type Run struct {
	sessionID string
	sim       *Simulator
	stop      chan struct{}
	stopOnce  sync.Once

	mu      sync.Mutex
	percent int
	stopped bool
}

// Ticks emit while holding r.mu so a tick landing concurrently with Stop
// cannot publish after the terminal frame: the loop re-checks stopped under
// the same lock Stop emits under. The emitter must not call back into the
// run or the simulator map for the same session.
func (r *Run) loop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.mu.Lock()
			if r.stopped {
				r.mu.Unlock()
				return
			}
			r.percent += stepFor(r.percent)
			if r.percent > maxSimulated {
				r.percent = maxSimulated
			}
			r.sim.emit(Frame{SessionID: r.sessionID, Percent: r.percent})
			r.mu.Unlock()
		}
	}
}

// Percent returns the latest simulated value. After Stop it reads 0.
func (r *Run) Percent() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.percent
}

// Stop halts the run, resets the value to 0 and emits one terminal frame.
// The done frame is the last frame the run ever produces. Safe to call more
// than once; only the first call has any effect.
func (r *Run) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)

		r.mu.Lock()
		r.stopped = true
		r.percent = 0
		r.sim.emit(Frame{SessionID: r.sessionID, Percent: 0, Done: true})
		r.mu.Unlock()

		r.sim.remove(r.sessionID, r)
	})
}

// The run never reaches 100 on its own: completion is signaled by the
// exchange finishing, not by the simulated value.
const maxSimulated = 99

// stepFor shapes the curve: crawl out of the gate, sprint through the
// middle, crawl again near the end.
func stepFor(percent int) int {
	switch {
	case percent < 25:
		return 2
	case percent < 75:
		return 5
	default:
		return 1
	}
}
