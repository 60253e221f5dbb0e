package errctrl

// Effect is the reaction a Handler recommends when a counter crosses
// its threshold.
type Effect uint8

const (
	EffectNone Effect = iota
	// EffectGuardError corresponds to a DLL guarding-class fault:
	// escalate to the NMT error handler but keep the cycle running.
	EffectGuardError
	// EffectCycleAbort means the current cycle cannot continue and the
	// DLL must restart it.
	EffectCycleAbort
)

var effectForKind = map[Kind]Effect{
	KindLossOfSoC:  EffectCycleAbort,
	KindLossOfPReq: EffectGuardError,
	KindLossOfPRes: EffectGuardError,
	KindCRCError:   EffectGuardError,
	KindCollision:  EffectGuardError,
}

// Handler owns one Counter per tracked Kind and reports the cumulative
// effect of every observation made during a cycle.
type Handler struct {
	counters map[Kind]*Counter
}

// NewHandler returns a Handler with a fresh Counter for every Kind
// handled by this package.
func NewHandler() *Handler {
	h := &Handler{counters: make(map[Kind]*Counter)}
	for _, k := range []Kind{KindLossOfSoC, KindLossOfPReq, KindLossOfPRes, KindCRCError, KindCollision} {
		h.counters[k] = NewCounter(k)
	}
	return h
}

// Counter returns the Counter tracking kind.
func (h *Handler) Counter(kind Kind) *Counter {
	return h.counters[kind]
}

// Observe records one occurrence of kind and returns the effect to
// apply if its counter has crossed threshold, or EffectNone otherwise.
func (h *Handler) Observe(kind Kind) Effect {
	c := h.counters[kind]
	if c.Increment() {
		return effectForKind[kind]
	}
	return EffectNone
}

// EndCycle decays every counter that was not observed this cycle. The
// caller passes the set of kinds actually observed so clean counters
// recover over time.
func (h *Handler) EndCycle(observed map[Kind]bool) {
	for kind, c := range h.counters {
		if !observed[kind] {
			c.Decay()
		}
	}
}
