package viewport

import "nearby-weather/internal/types"

// Phase is the two-phase recenter handshake: the core issues a directive in
// the recenter phase, the renderer completes its recenter-and-settle
// animation, acknowledges, and only then runs follow-on actions. No fixed
// delays; the contract is explicit.
type Phase string

const (
	PhaseRecenter Phase = "recenter"
	PhaseProceed  Phase = "proceed"
)

// RecenterDirective tells the presentation layer to move its viewport onto
// the target before the next render.
type RecenterDirective struct {
	Target types.Coords `json:"target"`
	Phase  Phase        `json:"phase"`
}

// Acknowledge is the renderer's half of the handshake: the proceed-phase
// value it hands back once the viewport has settled on the target.
func (d RecenterDirective) Acknowledge() RecenterDirective {
	d.Phase = PhaseProceed
	return d
}

// ShouldRecenter decides whether the viewport must move to show the target.
// Returns nil when the target is already visible, so navigation between
// nearby POIs does not jitter the map. Pure decision function; the core owns
// no rendering state.
func ShouldRecenter(current types.Bounds, target types.Coords) *RecenterDirective {
	if current.IsZero() {
		// No viewport reported; nothing to decide against.
		return nil
	}
	if current.Contains(target) {
		return nil
	}
	return &RecenterDirective{
		Target: target,
		Phase:  PhaseRecenter,
	}
}
