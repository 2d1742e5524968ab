package domain

// ReadDecision is the outcome of the trip read-access check.
type ReadDecision int8

const (
	Hidden ReadDecision = iota
	Visible
)

func (d ReadDecision) String() string {
	if d == Visible {
		return "VISIBLE"
	}
	return "HIDDEN"
}

// WriteDecision is the outcome of the trip write-access check.
type WriteDecision int8

const (
	ReadOnly WriteDecision = iota
	Editable
)

func (d WriteDecision) String() string {
	if d == Editable {
		return "EDITABLE"
	}
	return "READONLY"
}

// DecideRead computes whether the caller may view the trip. A trip is
// visible when it is public, or the caller owns it, or the caller is on
// the participant roster, or the caller is an admin. The anonymous
// caller satisfies none of the identity conditions.
func DecideRead(t Trip, caller Identity) ReadDecision {
	if !t.PrivatePlan {
		return Visible
	}
	if caller.Anonymous() {
		return Hidden
	}
	if caller.Admin() || caller.UserID == t.OwnerID {
		return Visible
	}
	for _, p := range t.Participants {
		if p.UserID == caller.UserID {
			return Visible
		}
	}
	return Hidden
}

// DecideWrite computes whether the caller may mutate the trip or its
// itinerary and reservations. Participant membership alone does not
// grant write access; only the owner and admins edit.
func DecideWrite(t Trip, caller Identity) WriteDecision {
	if caller.Anonymous() {
		return ReadOnly
	}
	if caller.Admin() || caller.UserID == t.OwnerID {
		return Editable
	}
	return ReadOnly
}

// CanModify is the ownership check shared by posts and comments: the
// author or an admin may update and delete.
func CanModify(authorID int64, caller Identity) bool {
	if caller.Anonymous() {
		return false
	}
	return caller.Admin() || caller.UserID == authorID
}
