// Package config implements typed helpers that read and write a
// handful of well-known objects (identity, cycle length, node
// assignment) in a node's local object dictionary. The helpers work on
// an *od.ObjectDictionary directly; there is no SDO-backed variant for
// a remote CN.
package config

import (
	"encoding/binary"

	"github.com/epsg-core/powerlink/pkg/od"
)

// Identity mirrors the mandatory NMT_IdentityObject_REC, DS 301 §6.4.2.
type Identity struct {
	VendorID    uint32
	ProductCode uint32
	RevisionNo  uint32
	SerialNo    uint32
}

// NodeConfigurator wraps direct access to a node's local object
// dictionary with typed Read*/Write* helpers. It operates on an
// *od.ObjectDictionary in-process (e.g. during tests, or a CN
// configuring itself); it cannot reach a remote CN's dictionary over
// SDO.
type NodeConfigurator struct {
	dict *od.ObjectDictionary
}

// NewNodeConfigurator returns a configurator operating on dict.
func NewNodeConfigurator(dict *od.ObjectDictionary) *NodeConfigurator {
	return &NodeConfigurator{dict: dict}
}

// ReadIdentity reads the four mandatory identity sub-objects.
func (c *NodeConfigurator) ReadIdentity() (Identity, error) {
	var id Identity
	for sub, dst := range map[uint8]*uint32{1: &id.VendorID, 2: &id.ProductCode, 3: &id.RevisionNo, 4: &id.SerialNo} {
		v, err := c.dict.Find(od.IndexIdentity, sub)
		if err != nil {
			return Identity{}, err
		}
		raw := v.Bytes()
		if len(raw) < 4 {
			return Identity{}, od.ODRDataShort
		}
		*dst = binary.LittleEndian.Uint32(raw)
	}
	return id, nil
}

// WriteCycleLength writes the NMT_CycleLen_U32 object, microseconds.
func (c *NodeConfigurator) WriteCycleLength(us uint32) error {
	v, err := c.dict.Find(od.IndexCommCyclePeriod, 0)
	if err != nil {
		return err
	}
	return v.PutUint32(us)
}

// ReadCycleLength reads NMT_CycleLen_U32.
func (c *NodeConfigurator) ReadCycleLength() (uint32, error) {
	v, err := c.dict.Find(od.IndexCommCyclePeriod, 0)
	if err != nil {
		return 0, err
	}
	return v.Uint32()
}

// WriteNodeAssignment sets the MN-side NMT_NodeAssignment_AU32 entry
// for CN subIndex (its node ID) to flags.
func (c *NodeConfigurator) WriteNodeAssignment(nodeID uint8, flags uint32) error {
	v, err := c.dict.Find(od.IndexCNNodeAssignment, nodeID)
	if err != nil {
		return err
	}
	return v.PutUint32(flags)
}

// NodeAssignment flag bits, DS 301 §7.4.3.2.1.
const (
	NodeAssignmentValid       uint32 = 1 << 0
	NodeAssignmentMandatory   uint32 = 1 << 3
	NodeAssignmentKeepAlive   uint32 = 1 << 8
	NodeAssignmentMultiplexed uint32 = 1 << 9
)
