package nmt

// Machine is a pure NMT state holder: Transition computes the next
// state and the actions the caller should carry out, without mutating
// anything itself. Apply is a thin convenience wrapper that also
// updates Current.
type Machine struct {
	Kind    Kind
	Current State
}

// New returns a Machine in StateOff, the state every node starts in
// before power-on self-initialization.
func New(kind Kind) *Machine {
	return &Machine{Kind: kind, Current: StateOff}
}

// Apply computes the transition for event and updates m.Current,
// returning the actions the caller must perform (starting the cycle
// engine, broadcasting the new state, etc).
func (m *Machine) Apply(event Event) []Action {
	next, actions := Transition(m.Kind, m.Current, event)
	m.Current = next
	return actions
}

// Transition is the pure (kind, state, event) -> (state, actions)
// function DS 301 §7.1's state diagrams describe. Events not valid in
// the given state leave it unchanged with no actions.
func Transition(kind Kind, state State, event Event) (State, []Action) {
	// Administrative resets and error handling pre-empt whatever
	// state-specific transition table applies below.
	switch event {
	case EventResetNode:
		return StateResetApplication, []Action{ActionApplicationReset}
	case EventResetCommunication:
		return StateResetCommunication, []Action{ActionCommunicationReset}
	case EventResetConfiguration:
		return StateResetConfiguration, []Action{ActionConfigurationReset}
	case EventNoPowerlinkTraffic:
		if state != StateOff && state != StateInitializing {
			return StateBasicEthernet, []Action{ActionStopCycle}
		}
	}

	switch state {
	case StateOff:
		if event == EventPowerOn {
			return StateInitializing, []Action{ActionStartBootProcess}
		}

	case StateInitializing:
		if event == EventInitDone {
			return StateResetApplication, nil
		}

	case StateResetApplication:
		return StateResetCommunication, nil

	case StateResetCommunication:
		return StateNotActive, []Action{ActionBroadcastNMTState}

	case StateResetConfiguration:
		return StatePreOperational2, []Action{ActionBroadcastNMTState}

	case StateNotActive:
		switch {
		case kind == KindCN && event == EventSoCReceived:
			return StatePreOperational1, []Action{ActionBroadcastNMTState}
		case kind == KindMN && event == EventInitDone:
			return StatePreOperational1, []Action{ActionStartCycle, ActionBroadcastNMTState}
		case event == EventPowerlinkTrafficSeen:
			return StatePreOperational1, []Action{ActionBroadcastNMTState}
		}

	case StatePreOperational1:
		switch {
		case kind == KindCN && event == EventIdentified:
			return StatePreOperational2, []Action{ActionBroadcastNMTState}
		case kind == KindMN && event == EventAllMandatoryIdent:
			return StatePreOperational2, []Action{ActionBroadcastNMTState}
		}

	case StatePreOperational2:
		switch event {
		case EventConfigured, EventEnterReadyToOperate:
			return StateReadyToOperate, []Action{ActionBroadcastNMTState}
		case EventErrorDetected:
			return StatePreOperational1, []Action{ActionBroadcastNMTState}
		}

	case StateReadyToOperate:
		if event == EventEnterOperational {
			return StateOperational, []Action{ActionBroadcastNMTState}
		}

	case StateOperational:
		switch event {
		case EventEnterStopped:
			return StateStopped, []Action{ActionBroadcastNMTState}
		case EventEnterPreOperational2:
			return StatePreOperational2, []Action{ActionBroadcastNMTState}
		}

	case StateStopped:
		if event == EventEnterPreOperational2 {
			return StatePreOperational2, []Action{ActionBroadcastNMTState}
		}

	case StateBasicEthernet:
		if event == EventPowerlinkTrafficSeen {
			return StateNotActive, []Action{ActionBroadcastNMTState}
		}
	}

	return state, nil
}
