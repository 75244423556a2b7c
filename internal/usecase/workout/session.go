package workout

import "fmt"

// SessionState tracks where the client is inside a training session. The
// session is purely client-local: leaving it loses unsaved timer progress but
// never touches persisted sets.
type SessionState string

const (
	StateBrowsing         SessionState = "browsing"
	StateCategoryOpened   SessionState = "category_opened"
	StateExerciseActive   SessionState = "exercise_active"
	StateTimerRunning     SessionState = "timer_running"
	StatePaused           SessionState = "paused"
	StateExerciseComplete SessionState = "exercise_complete"
	StateWorkoutComplete  SessionState = "workout_complete"
)

// transitions lists the legal moves. Cancel (back to browsing) is allowed from
// everywhere and handled separately.
var transitions = map[SessionState][]SessionState{
	StateBrowsing:         {StateCategoryOpened},
	StateCategoryOpened:   {StateExerciseActive},
	StateExerciseActive:   {StateTimerRunning},
	StateTimerRunning:     {StatePaused, StateExerciseComplete},
	StatePaused:           {StateTimerRunning, StateExerciseComplete},
	StateExerciseComplete: {StateExerciseActive, StateWorkoutComplete},
	StateWorkoutComplete:  {StateBrowsing},
}

// Session is the state machine for one training run.
type Session struct {
	state SessionState
}

func NewSession() *Session {
	return &Session{state: StateBrowsing}
}

func (s *Session) State() SessionState {
	return s.state
}

// Advance moves to the target state, rejecting illegal jumps.
func (s *Session) Advance(to SessionState) error {
	for _, allowed := range transitions[s.state] {
		if allowed == to {
			s.state = to
			return nil
		}
	}
	return fmt.Errorf("cannot move from %s to %s", s.state, to)
}

// Cancel returns to browsing from any state. Unsaved timer progress is lost;
// sets already persisted remain.
func (s *Session) Cancel() {
	s.state = StateBrowsing
}
