package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/triplog/triplog-backend/domain"
	"github.com/triplog/triplog-backend/internal/repository"
	"github.com/triplog/triplog-backend/internal/repository/mysql/model"
)

type tripRepository struct {
	DB *gorm.DB
}

var _ domain.TripRepository = (*tripRepository)(nil)

func NewTripRepository(db *gorm.DB) *tripRepository {
	return &tripRepository{
		DB: db,
	}
}

func (t *tripRepository) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	var trip model.Trip
	err := t.DB.WithContext(ctx).First(&trip, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	var participants []model.TripParticipant
	err = t.DB.WithContext(ctx).
		Where("trip_id = ?", id).
		Order("joined_at").
		Find(&participants).Error
	if err != nil {
		return domain.Trip{}, err
	}

	res := trip.ToDomain()
	res.Participants = make([]domain.TripParticipant, len(participants))
	for i := range participants {
		res.Participants[i] = participants[i].ToDomain()
	}
	return res, nil
}

// FetchVisible pushes the visibility predicate into the query so hidden
// trips never leave the database: public OR owned by the caller OR the
// caller is on the roster. Admins see everything.
func (t *tripRepository) FetchVisible(ctx context.Context, caller domain.Identity, page, size int64) ([]domain.Trip, int64, error) {
	repository.PageVerify(&page, &size)

	base := func() *gorm.DB {
		q := t.DB.WithContext(ctx).Model(&model.Trip{})
		switch {
		case caller.Admin():
			return q
		case caller.Anonymous():
			return q.Where("private_plan = ?", false)
		default:
			participating := t.DB.Model(&model.TripParticipant{}).
				Select("trip_id").
				Where("user_id = ?", caller.UserID)
			return q.Where("private_plan = ? OR user_id = ? OR id IN (?)",
				false, caller.UserID, participating)
		}
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trips []model.Trip
	err := base().
		Order("created_at DESC, id DESC").
		Offset(repository.Offset(page, size)).
		Limit(int(size)).
		Find(&trips).Error
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.Trip, len(trips))
	for i := range trips {
		res[i] = trips[i].ToDomain()
	}
	return res, total, nil
}

func (t *tripRepository) Store(ctx context.Context, trip *domain.Trip) error {
	tripModel := model.NewTripFromDomain(trip)
	if err := t.DB.WithContext(ctx).Create(tripModel).Error; err != nil {
		return err
	}
	trip.ID = tripModel.ID
	trip.CreatedAt = tripModel.CreatedAt
	trip.UpdatedAt = tripModel.UpdatedAt
	return nil
}

func (t *tripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	result := t.DB.WithContext(ctx).
		Model(&model.Trip{}).
		Where("id = ?", trip.ID).
		Updates(map[string]any{
			"title":        trip.Title,
			"start_date":   trip.StartDate,
			"end_date":     trip.EndDate,
			"private_plan": trip.PrivatePlan,
			"budget":       trip.Budget,
			"city_id":      trip.CityID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the trip and every dependent set in one transaction.
// Itinerary and reservation rows carry no upward counters, so no
// counter settlement happens here.
func (t *tripRepository) Delete(ctx context.Context, id int64) error {
	return t.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trip_id = ?", id).Delete(&model.TripLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trip_id = ?", id).Delete(&model.TripParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trip_id = ?", id).Delete(&model.ItineraryItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trip_id = ?", id).Delete(&model.Reservation{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Trip{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (t *tripRepository) AddParticipant(ctx context.Context, p *domain.TripParticipant) error {
	err := t.DB.WithContext(ctx).Create(model.NewTripParticipantFromDomain(p)).Error
	if err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (t *tripRepository) RemoveParticipant(ctx context.Context, tripID, userID int64) error {
	result := t.DB.WithContext(ctx).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		Delete(&model.TripParticipant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (t *tripRepository) AddItineraryItem(ctx context.Context, it *domain.ItineraryItem) error {
	itemModel := model.NewItineraryItemFromDomain(it)
	if err := t.DB.WithContext(ctx).Create(itemModel).Error; err != nil {
		return err
	}
	it.ID = itemModel.ID
	return nil
}

func (t *tripRepository) FetchItinerary(ctx context.Context, tripID int64) ([]domain.ItineraryItem, error) {
	var items []model.ItineraryItem
	err := t.DB.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("day, seq").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.ItineraryItem, len(items))
	for i := range items {
		res[i] = items[i].ToDomain()
	}
	return res, nil
}

func (t *tripRepository) AddReservation(ctx context.Context, r *domain.Reservation) error {
	reservationModel := model.NewReservationFromDomain(r)
	if err := t.DB.WithContext(ctx).Create(reservationModel).Error; err != nil {
		return err
	}
	r.ID = reservationModel.ID
	return nil
}

func (t *tripRepository) FetchReservations(ctx context.Context, tripID int64) ([]domain.Reservation, error) {
	var reservations []model.Reservation
	err := t.DB.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("reserved_at").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Reservation, len(reservations))
	for i := range reservations {
		res[i] = reservations[i].ToDomain()
	}
	return res, nil
}
