// Package nmt implements the POWERLINK NMT state machines as pure
// (state, event) -> (state, actions) transition functions, separate
// from any particular carrier so the same machine drives a CN or the
// MN regardless of how events are sourced.
package nmt

// Kind distinguishes which of the two state machines DS 301 §7.1
// defines applies: the Managing Node's, or an ordinary Controlled
// Node's. Both share the common states below; each adds its own.
type Kind uint8

const (
	KindCN Kind = iota
	KindMN
)

// State is a node's NMT state, DS 301 §7.1.2/§7.1.3.
type State uint8

const (
	StateOff State = iota
	StateInitializing
	StateResetApplication
	StateResetCommunication
	StateResetConfiguration
	StateNotActive
	StatePreOperational1
	StatePreOperational2
	StateReadyToOperate
	StateOperational
	StateStopped
	StateBasicEthernet
)

func (s State) String() string {
	switch s {
	case StateOff:
		return "Off"
	case StateInitializing:
		return "Initializing"
	case StateResetApplication:
		return "ResetApplication"
	case StateResetCommunication:
		return "ResetCommunication"
	case StateResetConfiguration:
		return "ResetConfiguration"
	case StateNotActive:
		return "NotActive"
	case StatePreOperational1:
		return "PreOperational1"
	case StatePreOperational2:
		return "PreOperational2"
	case StateReadyToOperate:
		return "ReadyToOperate"
	case StateOperational:
		return "Operational"
	case StateStopped:
		return "Stopped"
	case StateBasicEthernet:
		return "BasicEthernet"
	default:
		return "Unknown"
	}
}

// Event is an input to the state machine: an NMT command received over
// ASnd, a DLL-observed condition (first SoC seen, cycle timeout), or a
// locally raised administrative request.
type Event uint8

const (
	EventPowerOn Event = iota
	EventInitDone
	EventResetNode
	EventResetCommunication
	EventResetConfiguration
	EventSoCReceived       // CN: first SoC observed on the wire
	EventIdentified        // CN: MN has issued IdentResponse exchange
	EventAllMandatoryIdent // MN: every mandatory CN has identified
	EventConfigured        // configuration round complete
	EventEnterReadyToOperate
	EventEnterOperational
	EventEnterStopped
	EventEnterPreOperational2
	EventErrorDetected
	EventNoPowerlinkTraffic // fall back to basic Ethernet
	EventPowerlinkTrafficSeen
)

// Action is emitted alongside a state transition for the caller to
// carry out; the machine itself has no side effects.
type Action uint8

const (
	ActionNone Action = iota
	ActionStartBootProcess
	ActionStartCycle
	ActionStopCycle
	ActionBroadcastNMTState
	ActionEnterReducedEthernetCycle
	ActionApplicationReset
	ActionCommunicationReset
	ActionConfigurationReset
)
