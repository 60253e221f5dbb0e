package network

import (
	"github.com/epsg-core/powerlink"
	"github.com/sirupsen/logrus"
)

// Network ties one MN and the CNs it manages together for a single
// logical POWERLINK segment. It owns no transport of its own beyond
// what each node was constructed with; RunCycle is the single entry
// point a caller drives on a timer to advance the whole segment by one
// cycle.
type Network struct {
	MN     *ManagingNode
	CNs    map[powerlink.NodeID]*ControlledNode
	logger *logrus.Entry
}

// NewNetwork returns a Network managed by mn.
func NewNetwork(mn *ManagingNode) *Network {
	return &Network{MN: mn, CNs: make(map[powerlink.NodeID]*ControlledNode), logger: powerlink.NewLogger("network")}
}

// AddControlledNode registers cn with the network.
func (nw *Network) AddControlledNode(cn *ControlledNode) {
	nw.CNs[cn.ID] = cn
}

// RunCycle drives the MN through exactly one cycle. Every CN reacts to
// the frames that cycle produces through its own HandleFrame, driven
// by whatever delivers frames to its driver (a real NIC, or the
// loopback medium a test wires up); RunCycle itself only drives the MN
// side, since that is the side that decides a cycle's shape.
func (nw *Network) RunCycle(now uint64) error {
	return nw.MN.RunCycle(now)
}
