package boot

import (
	"testing"

	"github.com/epsg-core/powerlink"
	"github.com/stretchr/testify/require"
)

func TestHappyPathReachesOperational(t *testing.T) {
	c := NewCoordinator()
	node := powerlink.NodeID(5)
	c.AddExpected(node, true, Expectation{VendorID: 0x1234})

	c.BeginIdentRequest(node)
	require.Equal(t, PhaseIdentifying, c.Entry(node).Phase)

	require.NoError(t, c.IdentResponseReceived(node, Identity{VendorID: 0x1234, ProductCode: 7}))
	require.Equal(t, PhaseVerifyingVersion, c.Entry(node).Phase)

	c.VersionVerified(node)
	require.Equal(t, PhaseConfiguring, c.Entry(node).Phase)

	c.ConfigurationComplete(node)
	require.Equal(t, PhaseEnteringReadyToOperate, c.Entry(node).Phase)
	require.True(t, c.AllMandatoryReady())

	c.NodeOperational(node)
	require.Equal(t, PhaseOperational, c.Entry(node).Phase)
}

func TestAllMandatoryIdentifiedGatesOnIdentNotVersion(t *testing.T) {
	c := NewCoordinator()
	node := powerlink.NodeID(5)
	c.AddExpected(node, true, Expectation{})
	c.BeginIdentRequest(node)
	require.False(t, c.AllMandatoryIdentified())

	require.NoError(t, c.IdentResponseReceived(node, Identity{}))
	require.True(t, c.AllMandatoryIdentified())
}

func TestIdentityMismatchFailsBoot(t *testing.T) {
	c := NewCoordinator()
	node := powerlink.NodeID(9)
	c.AddExpected(node, true, Expectation{VendorID: 0xAAAA})

	err := c.IdentResponseReceived(node, Identity{VendorID: 0xBBBB})
	require.Error(t, err)
	require.Equal(t, PhaseFailed, c.Entry(node).Phase)
	require.True(t, c.AnyMandatoryFailed())
	require.False(t, c.AllMandatoryReady())
}

func TestOptionalNodeDoesNotBlockReadiness(t *testing.T) {
	c := NewCoordinator()
	mandatory := powerlink.NodeID(3)
	optional := powerlink.NodeID(4)
	c.AddExpected(mandatory, true, Expectation{})
	c.AddExpected(optional, false, Expectation{})

	c.IdentResponseReceived(mandatory, Identity{})
	c.VersionVerified(mandatory)
	c.ConfigurationComplete(mandatory)
	require.True(t, c.AllMandatoryReady())
}

func TestWildcardExpectationMatchesAnyVendor(t *testing.T) {
	exp := Expectation{}
	require.True(t, exp.Matches(Identity{VendorID: 42, ProductCode: 99}))
}
