package reservation

// Status is the reservation lifecycle state. Transitions are defined by the
// table below; anything not listed is rejected with ErrInvalidTransition.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn: {StatusCheckedOut},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further status transition is defined from s.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Type classifies what kind of resource is being reserved. It is descriptive
// metadata only: validation and the state machine are identical for all types.
type Type string

const (
	TypeRoom     Type = "room"
	TypeTable    Type = "table"
	TypeSpa      Type = "spa"
	TypeActivity Type = "activity"
	TypeEvent    Type = "event"
	TypePool     Type = "pool"
	TypeCabana   Type = "cabana"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeRoom, TypeTable, TypeSpa, TypeActivity, TypeEvent, TypePool, TypeCabana:
		return true
	default:
		return false
	}
}
