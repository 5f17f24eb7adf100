package conversation

// Phase is the position of a turn in its processing pipeline.
type Phase string

const (
	PhaseIdle               Phase = "idle"
	PhaseAwaitingModel      Phase = "awaiting_model"
	PhaseToolRequested      Phase = "tool_requested"
	PhaseAwaitingToolResult Phase = "awaiting_tool_result"
	PhaseResponding         Phase = "responding"
)

var transitions = map[Phase][]Phase{
	PhaseIdle:               {PhaseAwaitingModel},
	PhaseAwaitingModel:      {PhaseToolRequested, PhaseResponding},
	PhaseToolRequested:      {PhaseAwaitingToolResult, PhaseResponding},
	PhaseAwaitingToolResult: {PhaseAwaitingModel},
	PhaseResponding:         {PhaseIdle},
}

func (p Phase) CanTransition(to Phase) bool {
	for _, next := range transitions[p] {
		if next == to {
			return true
		}
	}
	return false
}

// Tracker follows the phases of one turn.
type Tracker struct {
	phase   Phase
	history []Phase
}

func NewTracker() *Tracker {
	return &Tracker{phase: PhaseIdle, history: []Phase{PhaseIdle}}
}

func (t *Tracker) Phase() Phase {
	return t.phase
}

// History returns every phase visited, starting with Idle.
func (t *Tracker) History() []Phase {
	return append([]Phase(nil), t.history...)
}

func (t *Tracker) Transition(to Phase) error {
	if !t.phase.CanTransition(to) {
		return ErrRegistry.New(CodeInvalidTransition).
			WithDetail("from", string(t.phase)).
			WithDetail("to", string(to))
	}
	t.phase = to
	t.history = append(t.history, to)
	return nil
}

// Fail moves the turn to Responding from wherever it stopped, so the
// apology can be emitted. Idle has no failure path.
func (t *Tracker) Fail() {
	if t.phase == PhaseIdle || t.phase == PhaseResponding {
		return
	}
	t.phase = PhaseResponding
	t.history = append(t.history, PhaseResponding)
}
