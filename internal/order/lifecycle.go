package order

// Lifecycle decides which status changes an admin may make.
//
// The permissive default accepts any of the three statuses from any status,
// matching how the store has always been operated. Strict mode only allows
// PENDING -> SHIPPED -> DELIVERED one step at a time; re-setting the current
// status is a no-op in both modes.
type Lifecycle struct {
	Strict bool
}

var forward = map[Status]Status{
	StatusPending: StatusShipped,
	StatusShipped: StatusDelivered,
}

func (l Lifecycle) CanTransition(from, to Status) bool {
	if from == to || !l.Strict {
		return true
	}
	next, ok := forward[from]
	return ok && next == to
}
