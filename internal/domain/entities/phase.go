package entities

// VisitPhase identifies one of the four workflow phases of a visit
type VisitPhase string

const (
	PhaseIngest     VisitPhase = "ingest"
	PhaseSynthesize VisitPhase = "synthesize"
	PhasePrepare    VisitPhase = "prepare"
	PhaseRecap      VisitPhase = "recap"
)

// Phases lists the workflow phases in presentation order
func Phases() []VisitPhase {
	return []VisitPhase{PhaseIngest, PhaseSynthesize, PhasePrepare, PhaseRecap}
}

// IsPhaseAvailable reports whether a phase may currently be entered.
//
// Ingest and Recap are always enterable; Synthesize needs ingested data and
// Prepare needs a generated gist. The first three phases are strictly
// ordered, the recap is an out-of-band terminal action.
func IsPhaseAvailable(phase VisitPhase, a *Appointment) bool {
	switch phase {
	case PhaseIngest, PhaseRecap:
		return true
	case PhaseSynthesize:
		return a.DataIngested
	case PhasePrepare:
		return a.GistGenerated
	}
	return false
}

// IsPhaseDone reports whether a phase has completed its data collection
func IsPhaseDone(phase VisitPhase, a *Appointment) bool {
	switch phase {
	case PhaseIngest:
		return a.DataIngested
	case PhaseSynthesize:
		return a.GistGenerated
	case PhasePrepare:
		return a.AgendaPrepared
	case PhaseRecap:
		return a.VisitRecorded
	}
	return false
}

// IsPhaseLocked reports whether a phase should be presented as locked
func IsPhaseLocked(phase VisitPhase, a *Appointment) bool {
	return !IsPhaseAvailable(phase, a) && !IsPhaseDone(phase, a)
}

// IsPhaseReadOnly reports whether a phase's collected data may no longer be
// edited. Once the visit is completed, phase data freezes; header fields
// (doctor, reason, date) stay editable through the appointment operations.
func IsPhaseReadOnly(phase VisitPhase, a *Appointment) bool {
	return a.IsCompleted()
}

// PhaseState is the gate policy's answer for one phase, consumed by the
// presentation layer to enable or disable affordances.
type PhaseState struct {
	Phase     VisitPhase `json:"phase"`
	Available bool       `json:"available"`
	Done      bool       `json:"done"`
	Locked    bool       `json:"locked"`
	ReadOnly  bool       `json:"read_only"`
}

// PhaseStates evaluates the gate policy for every phase of an appointment
func PhaseStates(a *Appointment) []PhaseState {
	states := make([]PhaseState, 0, 4)
	for _, p := range Phases() {
		states = append(states, PhaseState{
			Phase:     p,
			Available: IsPhaseAvailable(p, a),
			Done:      IsPhaseDone(p, a),
			Locked:    IsPhaseLocked(p, a),
			ReadOnly:  IsPhaseReadOnly(p, a),
		})
	}
	return states
}
