package dll

import (
	"testing"

	"github.com/epsg-core/powerlink"
	"github.com/epsg-core/powerlink/pkg/errctrl"
	"github.com/epsg-core/powerlink/pkg/frame"
	"github.com/stretchr/testify/require"
)

func slots() []Slot {
	return []Slot{
		{NodeID: 1, Mandatory: true},
		{NodeID: 2, Mandatory: true, MultiplexCycle: 2, MultiplexSlot: 1},
		{NodeID: 3, Mandatory: true, MultiplexCycle: 2, MultiplexSlot: 2},
	}
}

func drainTargets(c *ManagerCycle) []powerlink.NodeID {
	var got []powerlink.NodeID
	for {
		s, ok := c.NextPReqTarget()
		if !ok {
			break
		}
		got = append(got, s.NodeID)
	}
	return got
}

func TestManagerCycleMultiplexSkipDoesNotCompress(t *testing.T) {
	c := NewManagerCycle(slots())

	c.BeginCycle(0, 0, false)
	require.Equal(t, []powerlink.NodeID{1, 2}, drainTargets(c))
	c.EndCycle()

	c.BeginCycle(1, 1, false)
	require.Equal(t, []powerlink.NodeID{1, 3}, drainTargets(c))
	c.EndCycle()

	c.BeginCycle(2, 2, false)
	require.Equal(t, []powerlink.NodeID{1, 2}, drainTargets(c))
}

func TestManagerCyclePhaseTransitionsToAsyncAfterIsochronous(t *testing.T) {
	c := NewManagerCycle(slots())
	c.BeginCycle(0, 0, false)
	drainTargets(c)
	require.Equal(t, PhaseAsynchronous, c.phase)
	_, ok := c.NextPReqTarget()
	require.False(t, ok)
}

func TestManagerCycleBuildSoAMapsIdentRequestQueue(t *testing.T) {
	c := NewManagerCycle(nil)
	require.NoError(t, c.Scheduler.Enqueue(QueueIdentRequest, powerlink.NodeID(9)))
	soa := c.BuildSoA(0, 1)
	require.Equal(t, frame.ServiceIdentRequest, soa.RequestedServiceID)
	require.Equal(t, uint8(9), soa.RequestedServiceTarget)
}

func TestManagerCycleBuildSoANoServiceWhenEmpty(t *testing.T) {
	c := NewManagerCycle(nil)
	soa := c.BuildSoA(0, 1)
	require.Equal(t, frame.ServiceNoService, soa.RequestedServiceID)
}

func TestManagerCycleObservePResTimeoutEscalates(t *testing.T) {
	c := NewManagerCycle(slots())
	c.BeginCycle(0, 0, false)
	var effect int
	for i := 0; i < 15; i++ {
		effect = int(c.ObservePResTimeout(1))
	}
	require.NotZero(t, effect)
}

func TestManagerCycleObservePResTimeoutIsPerNode(t *testing.T) {
	c := NewManagerCycle(slots())
	c.BeginCycle(0, 0, false)
	for i := 0; i < 14; i++ {
		c.ObservePResTimeout(1)
	}
	// node 2 has never timed out: its counter must still be at zero,
	// unaffected by node 1's near-threshold run.
	require.Equal(t, 14*errctrl.IncrementPerError, c.Errors[1].Counter(errctrl.KindLossOfPRes).Value)
	require.Zero(t, c.Errors[2].Counter(errctrl.KindLossOfPRes).Value)
}
