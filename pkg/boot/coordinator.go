package boot

import "github.com/epsg-core/powerlink"

// Entry tracks one CN's progress through the boot sequence.
type Entry struct {
	NodeID      powerlink.NodeID
	Mandatory   bool
	Phase       Phase
	Expectation Expectation
	LastError   error
}

// Coordinator sequences every known CN's boot phases. It holds no
// transport or SDO client of its own: the caller drives it by
// reporting each phase's outcome (an identity response arrived, a
// configuration write succeeded, ...) and the Coordinator decides what
// phase each node is in and whether the network as a whole is ready to
// start the isochronous cycle.
type Coordinator struct {
	entries map[powerlink.NodeID]*Entry
}

// NewCoordinator returns an empty Coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{entries: make(map[powerlink.NodeID]*Entry)}
}

// AddExpected registers a CN the MN expects to find, beginning its
// boot sequence at PhaseNotStarted.
func (c *Coordinator) AddExpected(nodeID powerlink.NodeID, mandatory bool, exp Expectation) {
	c.entries[nodeID] = &Entry{NodeID: nodeID, Mandatory: mandatory, Expectation: exp, Phase: PhaseNotStarted}
}

// Entry returns the boot entry for nodeID, or nil if not registered.
func (c *Coordinator) Entry(nodeID powerlink.NodeID) *Entry {
	return c.entries[nodeID]
}

// BeginIdentRequest moves nodeID to PhaseIdentifying; called once the
// MN has issued an IdentRequest SoA service for it.
func (c *Coordinator) BeginIdentRequest(nodeID powerlink.NodeID) {
	if e, ok := c.entries[nodeID]; ok && e.Phase == PhaseNotStarted {
		e.Phase = PhaseIdentifying
	}
}

// IdentResponseReceived verifies got against the node's expectation
// and advances it to PhaseVerifyingVersion, or fails the boot if the
// identity does not match.
func (c *Coordinator) IdentResponseReceived(nodeID powerlink.NodeID, got Identity) error {
	e, ok := c.entries[nodeID]
	if !ok {
		return errUnknownNode
	}
	if !e.Expectation.Matches(got) {
		e.Phase = PhaseFailed
		e.LastError = errIdentityMismatch
		return e.LastError
	}
	e.Phase = PhaseVerifyingVersion
	return nil
}

// VersionVerified advances nodeID to PhaseConfiguring.
func (c *Coordinator) VersionVerified(nodeID powerlink.NodeID) {
	if e, ok := c.entries[nodeID]; ok && e.Phase == PhaseVerifyingVersion {
		e.Phase = PhaseConfiguring
	}
}

// ConfigurationComplete advances nodeID to PhaseEnteringReadyToOperate.
func (c *Coordinator) ConfigurationComplete(nodeID powerlink.NodeID) {
	if e, ok := c.entries[nodeID]; ok && e.Phase == PhaseConfiguring {
		e.Phase = PhaseEnteringReadyToOperate
	}
}

// NodeOperational marks nodeID as having joined the running cycle.
func (c *Coordinator) NodeOperational(nodeID powerlink.NodeID) {
	if e, ok := c.entries[nodeID]; ok {
		e.Phase = PhaseOperational
	}
}

// Fail marks nodeID's boot as failed with err.
func (c *Coordinator) Fail(nodeID powerlink.NodeID, err error) {
	if e, ok := c.entries[nodeID]; ok {
		e.Phase = PhaseFailed
		e.LastError = err
	}
}

// AllMandatoryIdentified reports whether every mandatory CN has at
// least passed identity verification — the MN's gate for leaving
// PreOperational1, DS 301 §7.2 phase 3.
func (c *Coordinator) AllMandatoryIdentified() bool {
	for _, e := range c.entries {
		if !e.Mandatory {
			continue
		}
		if e.Phase == PhaseNotStarted || e.Phase == PhaseIdentifying || e.Phase == PhaseFailed {
			return false
		}
	}
	return true
}

// AllMandatoryReady reports whether every mandatory CN has reached at
// least PhaseEnteringReadyToOperate — the MN's gate for leaving
// PreOperational2.
func (c *Coordinator) AllMandatoryReady() bool {
	for _, e := range c.entries {
		if !e.Mandatory {
			continue
		}
		if e.Phase != PhaseEnteringReadyToOperate && e.Phase != PhaseOperational {
			return false
		}
	}
	return true
}

// AnyMandatoryFailed reports whether a mandatory CN's boot has failed.
func (c *Coordinator) AnyMandatoryFailed() bool {
	for _, e := range c.entries {
		if e.Mandatory && e.Phase == PhaseFailed {
			return true
		}
	}
	return false
}
