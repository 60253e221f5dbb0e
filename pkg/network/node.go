// Package network wires the object dictionary, PDO mapping engine, SDO
// layer, NMT state machine, error controller, boot coordinator and DLL
// cycle engine into runnable MN and CN nodes. A Network ties a set of
// wired nodes together for a single logical POWERLINK segment.
package network

import (
	"fmt"

	"github.com/epsg-core/powerlink"
	"github.com/epsg-core/powerlink/pkg/diag"
	"github.com/epsg-core/powerlink/pkg/nmt"
	"github.com/epsg-core/powerlink/pkg/od"
	"github.com/sirupsen/logrus"
)

// node holds the pieces every role (MN or CN) needs regardless of which
// side of the cycle it drives.
type node struct {
	ID         powerlink.NodeID
	Dictionary *od.ObjectDictionary
	NMT        *nmt.Machine
	Driver     powerlink.EthernetDriver
	Clock      powerlink.Clock
	Diag       *diag.Mailbox
	logger     *logrus.Entry
}

// bootLocalNMT drives a freshly constructed Machine through its local
// power-up cascade (Off -> Initializing -> ResetApplication ->
// ResetCommunication -> NotActive), none of which depends on anything
// arriving over the wire. A CN then waits there for its first SoC; the
// MN waits there for StartBoot to signal its own application is ready.
func bootLocalNMT(kind nmt.Kind) *nmt.Machine {
	m := nmt.New(kind)
	m.Apply(nmt.EventPowerOn)
	m.Apply(nmt.EventInitDone)
	m.Apply(nmt.EventInitDone)
	m.Apply(nmt.EventInitDone)
	return m
}

func newNode(id powerlink.NodeID, kind nmt.Kind, dict *od.ObjectDictionary, driver powerlink.EthernetDriver, clock powerlink.Clock) node {
	return node{
		ID:         id,
		Dictionary: dict,
		NMT:        bootLocalNMT(kind),
		Driver:     driver,
		Clock:      clock,
		Diag:       diag.NewMailbox(),
		logger:     powerlink.NewLogger(fmt.Sprintf("node-%d", id)),
	}
}
