package errctrl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCounterTriggersAtThreshold(t *testing.T) {
	c := NewCounter(KindCRCError)
	for i := 0; i < 14; i++ {
		require.False(t, c.Increment())
	}
	require.True(t, c.Increment())
	require.Equal(t, 15*IncrementPerError, c.Value)
}

func TestCounterDecaysAndFloors(t *testing.T) {
	c := NewCounter(KindLossOfSoC)
	c.Value = 2
	c.Decay()
	require.Equal(t, 1, c.Value)
	c.Decay()
	require.Equal(t, 0, c.Value)
	c.Decay()
	require.Equal(t, 0, c.Value)
}

func TestHandlerObserveRaisesEffect(t *testing.T) {
	h := NewHandler()
	var effect Effect
	for i := 0; i < 15; i++ {
		effect = h.Observe(KindLossOfSoC)
	}
	require.Equal(t, EffectCycleAbort, effect)
}

func TestHandlerEndCycleDecaysUnobserved(t *testing.T) {
	h := NewHandler()
	h.Observe(KindLossOfPReq)
	h.Counter(KindLossOfPReq).Value = 5
	h.EndCycle(map[Kind]bool{KindLossOfSoC: true})
	require.Equal(t, 4, h.Counter(KindLossOfPReq).Value)
	require.Equal(t, 0, h.Counter(KindLossOfSoC).Value)
}
