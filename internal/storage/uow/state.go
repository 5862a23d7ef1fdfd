package uow

// State tracks the unit of work lifecycle:
//
//	OPEN -> COMMITTED | ROLLED_BACK -> CLOSED
//
// CLOSED is terminal. An OPEN unit of work may also be closed directly, which
// rolls it back first.
type State int

const (
	StateOpen State = iota
	StateCommitted
	StateRolledBack
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "OPEN"
	case StateCommitted:
		return "COMMITTED"
	case StateRolledBack:
		return "ROLLED_BACK"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}
