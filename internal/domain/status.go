package domain

type Status string

const (
	// Sell kinds (Property, FurnitureSell)
	StatusOrdered Status = "ORDERED"

	// Rent kind (FurnitureRent)
	StatusRequested         Status = "REQUESTED"
	StatusScheduledDelivery Status = "SCHEDULED_DELIVERY"

	// Shared by sell and rent graphs
	StatusConfirmed      Status = "CONFIRMED"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"

	// Service kind
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusOngoing   Status = "ONGOING"
	StatusCompleted Status = "COMPLETED"

	// Reachable from any non-terminal state, for every kind
	StatusCancelled Status = "CANCELLED"
)

var sellGraph = map[Status][]Status{
	StatusOrdered:        {StatusConfirmed},
	StatusConfirmed:      {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
}

var rentGraph = map[Status][]Status{
	StatusRequested:         {StatusConfirmed},
	StatusConfirmed:         {StatusScheduledDelivery},
	StatusScheduledDelivery: {StatusOutForDelivery},
	StatusOutForDelivery:    {StatusDelivered},
}

var serviceGraph = map[Status][]Status{
	StatusPending:  {StatusAccepted},
	StatusAccepted: {StatusOngoing},
	StatusOngoing:  {StatusCompleted},
}

func graphFor(kind RequestKind) map[Status][]Status {
	switch kind {
	case RequestKindFurnitureRent:
		return rentGraph
	case RequestKindService:
		return serviceGraph
	default:
		return sellGraph
	}
}

// InitialStatus returns the status a newly created request of the given kind starts in.
func InitialStatus(kind RequestKind) Status {
	switch kind {
	case RequestKindFurnitureRent:
		return StatusRequested
	case RequestKindService:
		return StatusPending
	default:
		return StatusOrdered
	}
}

// ConfirmedStatus returns the status a paid request auto-advances to when it
// is still in its initial state.
func ConfirmedStatus(kind RequestKind) Status {
	if kind == RequestKindService {
		return StatusAccepted
	}
	return StatusConfirmed
}

// IsTerminal reports whether the status ends the lifecycle for the kind.
func IsTerminal(kind RequestKind, s Status) bool {
	if s == StatusCancelled {
		return true
	}
	_, hasSuccessors := graphFor(kind)[s]
	_, inGraph := statusIndex(kind)[s]
	return inGraph && !hasSuccessors
}

// ValidStatus reports whether s belongs to the kind's status vocabulary.
func ValidStatus(kind RequestKind, s Status) bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusIndex(kind)[s]
	return ok
}

// CanTransition reports whether moving from one status directly to another is
// legal for the kind. A transition is legal when the target is an immediate
// successor in the kind's graph, or Cancelled from any non-terminal state.
// Backward moves are never legal.
func CanTransition(kind RequestKind, from, to Status) bool {
	if IsTerminal(kind, from) {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	for _, next := range graphFor(kind)[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AtOrBeyondConfirmed reports whether the status has reached the confirmed
// stage of the kind's graph. Required for the payment invariant: a Paid
// request must be at or beyond Confirmed.
func AtOrBeyondConfirmed(kind RequestKind, s Status) bool {
	if s == StatusCancelled {
		return false
	}
	confirmed := ConfirmedStatus(kind)
	idx := statusIndex(kind)
	si, ok := idx[s]
	if !ok {
		return false
	}
	return si >= idx[confirmed]
}

// statusIndex maps each status in the kind's graph to its position along the
// single forward path, initial state at 0.
func statusIndex(kind RequestKind) map[Status]int {
	idx := make(map[Status]int)
	g := graphFor(kind)
	s := InitialStatus(kind)
	for i := 0; ; i++ {
		idx[s] = i
		next, ok := g[s]
		if !ok || len(next) == 0 {
			break
		}
		s = next[0]
	}
	return idx
}
