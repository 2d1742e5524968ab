package trip

import (
	"context"
	"time"

	"github.com/triplog/triplog-backend/domain"
)

type service struct {
	tripRepo domain.TripRepository
	likeRepo domain.LikeRepository
	userRepo domain.UserRepository
	images   domain.ImageURLResolver
}

var _ domain.TripUsecase = (*service)(nil)

func NewService(
	tripRepo domain.TripRepository,
	likeRepo domain.LikeRepository,
	userRepo domain.UserRepository,
	images domain.ImageURLResolver,
) *service {
	return &service{
		tripRepo: tripRepo,
		likeRepo: likeRepo,
		userRepo: userRepo,
		images:   images,
	}
}

// visibleTrip loads the trip and applies the read decision. A hidden
// trip surfaces as an explicit private-plan refusal, not as absence.
func (s *service) visibleTrip(ctx context.Context, id int64, caller domain.Identity) (domain.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, err
	}
	if domain.DecideRead(trip, caller) == domain.Hidden {
		return domain.Trip{}, domain.ErrPrivatePlan
	}
	return trip, nil
}

// editableTrip loads the trip and applies the write decision.
func (s *service) editableTrip(ctx context.Context, id int64, caller domain.Identity) (domain.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, err
	}
	if domain.DecideWrite(trip, caller) != domain.Editable {
		return domain.Trip{}, domain.ErrForbidden
	}
	return trip, nil
}

func (s *service) GetByID(ctx context.Context, id int64, caller domain.Identity) (domain.Trip, error) {
	trip, err := s.visibleTrip(ctx, id, caller)
	if err != nil {
		return domain.Trip{}, err
	}

	if err := s.fillPeople(ctx, &trip); err != nil {
		return domain.Trip{}, err
	}

	if !caller.Anonymous() {
		liked, err := s.likeRepo.LikedTripSet(ctx, caller.UserID, []int64{id})
		if err != nil {
			return domain.Trip{}, err
		}
		trip.LikedByCaller = liked[id]
	}
	return trip, nil
}

func (s *service) Fetch(ctx context.Context, caller domain.Identity, page, size int64) ([]domain.Trip, int64, error) {
	trips, total, err := s.tripRepo.FetchVisible(ctx, caller, page, size)
	if err != nil {
		return nil, 0, err
	}

	if err := s.fillOwners(ctx, trips); err != nil {
		return nil, 0, err
	}

	if !caller.Anonymous() && len(trips) > 0 {
		ids := make([]int64, len(trips))
		for i := range trips {
			ids[i] = trips[i].ID
		}
		liked, err := s.likeRepo.LikedTripSet(ctx, caller.UserID, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range trips {
			trips[i].LikedByCaller = liked[trips[i].ID]
		}
	}
	return trips, total, nil
}

func (s *service) Store(ctx context.Context, t *domain.Trip) error {
	if t.OwnerID == 0 || t.Title == "" {
		return domain.ErrBadParamInput
	}
	if err := validDateRange(t.StartDate, t.EndDate); err != nil {
		return err
	}
	return s.tripRepo.Store(ctx, t)
}

func (s *service) Update(ctx context.Context, t *domain.Trip, caller domain.Identity) error {
	if _, err := s.editableTrip(ctx, t.ID, caller); err != nil {
		return err
	}
	if err := validDateRange(t.StartDate, t.EndDate); err != nil {
		return err
	}
	return s.tripRepo.Update(ctx, t)
}

func (s *service) Delete(ctx context.Context, id int64, caller domain.Identity) error {
	if _, err := s.editableTrip(ctx, id, caller); err != nil {
		return err
	}
	return s.tripRepo.Delete(ctx, id)
}

func (s *service) AddParticipant(ctx context.Context, tripID, userID int64, role string, caller domain.Identity) error {
	if _, err := s.editableTrip(ctx, tripID, caller); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if role == "" {
		role = "companion"
	}
	return s.tripRepo.AddParticipant(ctx, &domain.TripParticipant{
		TripID:   tripID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now(),
	})
}

func (s *service) RemoveParticipant(ctx context.Context, tripID, userID int64, caller domain.Identity) error {
	if _, err := s.editableTrip(ctx, tripID, caller); err != nil {
		return err
	}
	return s.tripRepo.RemoveParticipant(ctx, tripID, userID)
}

func (s *service) Like(ctx context.Context, tripID int64, caller domain.Identity) error {
	if caller.Anonymous() {
		return domain.ErrForbidden
	}
	// Liking requires seeing: a private trip is likeable only by those
	// who may view it.
	if _, err := s.visibleTrip(ctx, tripID, caller); err != nil {
		return err
	}
	return s.likeRepo.LikeTrip(ctx, caller.UserID, tripID)
}

func (s *service) Unlike(ctx context.Context, tripID int64, caller domain.Identity) error {
	if caller.Anonymous() {
		return domain.ErrForbidden
	}
	return s.likeRepo.UnlikeTrip(ctx, caller.UserID, tripID)
}

func (s *service) AddItineraryItem(ctx context.Context, it *domain.ItineraryItem, caller domain.Identity) error {
	if it.Day < 1 || it.Seq < 1 || it.PlaceName == "" {
		return domain.ErrBadParamInput
	}
	if _, err := s.editableTrip(ctx, it.TripID, caller); err != nil {
		return err
	}
	return s.tripRepo.AddItineraryItem(ctx, it)
}

func (s *service) Itinerary(ctx context.Context, tripID int64, caller domain.Identity) ([]domain.ItineraryItem, error) {
	if _, err := s.visibleTrip(ctx, tripID, caller); err != nil {
		return nil, err
	}
	return s.tripRepo.FetchItinerary(ctx, tripID)
}

func (s *service) AddReservation(ctx context.Context, r *domain.Reservation, caller domain.Identity) error {
	if r.Kind == "" {
		return domain.ErrBadParamInput
	}
	if _, err := s.editableTrip(ctx, r.TripID, caller); err != nil {
		return err
	}
	return s.tripRepo.AddReservation(ctx, r)
}

func (s *service) Reservations(ctx context.Context, tripID int64, caller domain.Identity) ([]domain.Reservation, error) {
	if _, err := s.visibleTrip(ctx, tripID, caller); err != nil {
		return nil, err
	}
	return s.tripRepo.FetchReservations(ctx, tripID)
}

func validDateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return domain.ErrBadParamInput
	}
	return nil
}

func (s *service) fillPeople(ctx context.Context, trip *domain.Trip) error {
	ids := make([]int64, 0, len(trip.Participants)+1)
	ids = append(ids, trip.OwnerID)
	for _, p := range trip.Participants {
		ids = append(ids, p.UserID)
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	userMap := make(map[int64]domain.User, len(users))
	for _, u := range users {
		if url, ok := s.images.Resolve("user", u.ID); ok {
			u.ProfileImage = url
		}
		userMap[u.ID] = u
	}

	if owner, ok := userMap[trip.OwnerID]; ok {
		trip.Owner = owner
	}
	for i := range trip.Participants {
		if u, ok := userMap[trip.Participants[i].UserID]; ok {
			member := u
			trip.Participants[i].User = &member
		}
	}
	return nil
}

func (s *service) fillOwners(ctx context.Context, trips []domain.Trip) error {
	if len(trips) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(trips))
	seen := make(map[int64]bool)
	for i := range trips {
		if !seen[trips[i].OwnerID] {
			ids = append(ids, trips[i].OwnerID)
			seen[trips[i].OwnerID] = true
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	userMap := make(map[int64]domain.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}
	for i := range trips {
		if u, ok := userMap[trips[i].OwnerID]; ok {
			trips[i].Owner = u
		}
	}
	return nil
}
