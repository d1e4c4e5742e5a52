package reload

// State is the health of a Reloader. The numeric values are exported as
// the Prometheus state gauge.
type State int32

const (
	// StateLoading: no document processed yet.
	StateLoading State = iota
	// StateHealthy: the last document was applied.
	StateHealthy
	// StateDegraded: the last document was rejected and earlier values
	// remain in effect.
	StateDegraded
	// StateEmpty: no document has ever been applied, so reads fall back
	// to defaults.
	StateEmpty
)

var stateNames = [...]string{
	StateLoading:  "loading",
	StateHealthy:  "healthy",
	StateDegraded: "degraded",
	StateEmpty:    "empty",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Serving reports whether values from at least one document are in effect.
func (s State) Serving() bool {
	return s == StateHealthy || s == StateDegraded
}
