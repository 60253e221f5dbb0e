package dll

import "github.com/epsg-core/powerlink"

// QueueKind identifies one of the four asynchronous-phase request
// queues the MN drains one entry from per cycle's SoA.
type QueueKind uint8

const (
	QueueGeneric QueueKind = iota
	QueueIdentRequest
	QueueStatusRequest
	QueueInvited
	numQueues
)

func (k QueueKind) String() string {
	switch k {
	case QueueGeneric:
		return "Generic"
	case QueueIdentRequest:
		return "IdentRequest"
	case QueueStatusRequest:
		return "StatusRequest"
	case QueueInvited:
		return "Invited"
	default:
		return "Unknown"
	}
}

// request is one entry waiting in an async queue: the node to invite.
type request struct {
	node powerlink.NodeID
}

// Scheduler selects which of the four async queues is served by the
// next SoA. It uses weighted round-robin with aging: a queue that is
// passed over because another queue won the tie accrues a skip count,
// and the queue with the highest skip count wins the next tie. This
// keeps every queue starvation-free without imposing a fixed priority
// order that would starve QueueGeneric under sustained Ident/Status
// traffic.
type Scheduler struct {
	queues [numQueues][]request
	skips  [numQueues]int
}

// NewScheduler returns an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Enqueue adds node to the back of kind's queue.
func (s *Scheduler) Enqueue(kind QueueKind, node powerlink.NodeID) error {
	if kind >= numQueues {
		return errQueueUnknown
	}
	s.queues[kind] = append(s.queues[kind], request{node: node})
	return nil
}

// Len reports how many entries are waiting in kind's queue.
func (s *Scheduler) Len(kind QueueKind) int {
	if kind >= numQueues {
		return 0
	}
	return len(s.queues[kind])
}

// Next selects the queue to serve and pops its head entry. Among
// non-empty queues it picks the one with the highest skip count,
// breaking ties by QueueKind order (Generic first); the winner's skip
// count resets to zero and every other non-empty queue's increments by
// one. It reports ok=false if every queue is empty.
func (s *Scheduler) Next() (kind QueueKind, node powerlink.NodeID, ok bool) {
	winner := -1
	best := -1
	for i := QueueKind(0); i < numQueues; i++ {
		if len(s.queues[i]) == 0 {
			continue
		}
		if s.skips[i] > best {
			best = s.skips[i]
			winner = int(i)
		}
	}
	if winner < 0 {
		return 0, 0, false
	}
	for i := QueueKind(0); i < numQueues; i++ {
		if len(s.queues[i]) == 0 {
			continue
		}
		if int(i) == winner {
			s.skips[i] = 0
		} else {
			s.skips[i]++
		}
	}
	kind = QueueKind(winner)
	node = s.queues[kind][0].node
	s.queues[kind] = s.queues[kind][1:]
	return kind, node, true
}

// Empty reports whether every queue is empty.
func (s *Scheduler) Empty() bool {
	for i := range s.queues {
		if len(s.queues[i]) > 0 {
			return false
		}
	}
	return true
}
