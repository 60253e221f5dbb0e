// Package dll implements the per-cycle Data Link Layer algorithm: the
// MN side drives a cycle through SoC, an isochronous PReq/PRes phase,
// and an asynchronous phase opened by SoA; the CN side reacts to SoC
// and to the PReq addressed to it. Both sides are plain Go structs
// driven by the caller feeding in received frames and reading back
// what to send next; neither owns a socket or a clock.
package dll

// Phase is where a manager-side cycle currently stands.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseIsochronous
	PhaseAsynchronous
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseIsochronous:
		return "Isochronous"
	case PhaseAsynchronous:
		return "Asynchronous"
	case PhaseDone:
		return "Done"
	default:
		return "Unknown"
	}
}
