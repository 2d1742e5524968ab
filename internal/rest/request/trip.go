package request

import (
	"time"

	"github.com/triplog/triplog-backend/domain"
)

type Trip struct {
	Title       string `json:"title" binding:"required,max=200"`
	StartDate   string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" binding:"required,datetime=2006-01-02"`
	PrivatePlan bool   `json:"private_plan"`
	Budget      int64  `json:"budget" binding:"min=0"`
	CityID      int64  `json:"city_id"`
}

// ToDomain: Request -> Domain. Date parsing cannot fail after the
// datetime binding tag has accepted the value.
func (r *Trip) ToDomain() domain.Trip {
	start, _ := time.Parse("2006-01-02", r.StartDate)
	end, _ := time.Parse("2006-01-02", r.EndDate)
	return domain.Trip{
		Title:       r.Title,
		StartDate:   start,
		EndDate:     end,
		PrivatePlan: r.PrivatePlan,
		Budget:      r.Budget,
		CityID:      r.CityID,
	}
}

type TripParticipant struct {
	UserID int64  `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"max=50"`
}

type ItineraryItem struct {
	Day       int64  `json:"day" binding:"required,min=1"`
	Seq       int64  `json:"seq" binding:"required,min=1"`
	PlaceName string `json:"place_name" binding:"required,max=200"`
	Memo      string `json:"memo" binding:"max=1000"`
}

func (r *ItineraryItem) ToDomain(tripID int64) domain.ItineraryItem {
	return domain.ItineraryItem{
		TripID:    tripID,
		Day:       r.Day,
		Seq:       r.Seq,
		PlaceName: r.PlaceName,
		Memo:      r.Memo,
	}
}

type Reservation struct {
	Kind       string `json:"kind" binding:"required,oneof=flight lodging train activity other"`
	RefName    string `json:"ref_name" binding:"required,max=200"`
	ReservedAt string `json:"reserved_at" binding:"required,datetime=2006-01-02 15:04:05"`
}

func (r *Reservation) ToDomain(tripID int64) domain.Reservation {
	at, _ := time.Parse("2006-01-02 15:04:05", r.ReservedAt)
	return domain.Reservation{
		TripID:     tripID,
		Kind:       r.Kind,
		RefName:    r.RefName,
		ReservedAt: at,
	}
}
