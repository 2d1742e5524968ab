package domain

import (
	"context"
	"time"
)

// Trip is a travel plan owned by a user. Participants are listed on the
// trip and, together with the PrivatePlan flag, drive the visibility
// decision.
type Trip struct {
	ID            int64
	OwnerID       int64
	Owner         User // Owner details on read paths
	Title         string
	StartDate     time.Time
	EndDate       time.Time
	PrivatePlan   bool
	LikeCount     int64
	Budget        int64
	CityID        int64
	LikedByCaller bool
	Participants  []TripParticipant
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TripParticipant is one row of the trip participant roster. Membership
// grants viewing rights on a private trip, not editing rights.
type TripParticipant struct {
	TripID   int64
	UserID   int64
	Role     string // Free-form role label, e.g. "companion"
	JoinedAt time.Time

	User *User // Participant details on read paths
}

// ItineraryItem is a single stop of a trip's day plan.
type ItineraryItem struct {
	ID        int64
	TripID    int64
	Day       int64 // 1-based day within the trip's date range
	Seq       int64 // Order within the day
	PlaceName string
	Memo      string
}

// Reservation is a booking attached to a trip.
type Reservation struct {
	ID         int64
	TripID     int64
	Kind       string // flight, lodging, ...
	RefName    string
	ReservedAt time.Time
}

// TripRepository defines the data access contract for trips and the
// entities cascading under them.
type TripRepository interface {
	// GetByID loads the trip with its participant roster.
	// Returns ErrNotFound if the trip doesn't exist.
	GetByID(ctx context.Context, id int64) (Trip, error)

	// FetchVisible returns one page of trips the caller may see,
	// newest first, with the total count. The visibility predicate
	// (public OR owned OR participating) is part of the query, not a
	// post-filter.
	FetchVisible(ctx context.Context, caller Identity, page, size int64) ([]Trip, int64, error)

	// Store creates a new trip.
	Store(ctx context.Context, t *Trip) error

	// Update modifies the trip's own fields.
	Update(ctx context.Context, t *Trip) error

	// Delete removes the trip with its likes, participants, itinerary
	// items and reservations in one transaction.
	Delete(ctx context.Context, id int64) error

	// AddParticipant inserts a roster row. Returns ErrConflict if the
	// user is already on the roster.
	AddParticipant(ctx context.Context, p *TripParticipant) error

	// RemoveParticipant deletes a roster row. Returns ErrNotFound if
	// the user is not on the roster.
	RemoveParticipant(ctx context.Context, tripID, userID int64) error

	AddItineraryItem(ctx context.Context, it *ItineraryItem) error
	FetchItinerary(ctx context.Context, tripID int64) ([]ItineraryItem, error)

	AddReservation(ctx context.Context, r *Reservation) error
	FetchReservations(ctx context.Context, tripID int64) ([]Reservation, error)
}

// TripUsecase defines the business logic contract for trips. Every read
// passes the visibility read decision and every mutation the write
// decision.
type TripUsecase interface {
	GetByID(ctx context.Context, id int64, caller Identity) (Trip, error)
	Fetch(ctx context.Context, caller Identity, page, size int64) ([]Trip, int64, error)
	Store(ctx context.Context, t *Trip) error
	Update(ctx context.Context, t *Trip, caller Identity) error
	Delete(ctx context.Context, id int64, caller Identity) error

	AddParticipant(ctx context.Context, tripID, userID int64, role string, caller Identity) error
	RemoveParticipant(ctx context.Context, tripID, userID int64, caller Identity) error

	Like(ctx context.Context, tripID int64, caller Identity) error
	Unlike(ctx context.Context, tripID int64, caller Identity) error

	AddItineraryItem(ctx context.Context, it *ItineraryItem, caller Identity) error
	Itinerary(ctx context.Context, tripID int64, caller Identity) ([]ItineraryItem, error)

	AddReservation(ctx context.Context, r *Reservation, caller Identity) error
	Reservations(ctx context.Context, tripID int64, caller Identity) ([]Reservation, error)
}
