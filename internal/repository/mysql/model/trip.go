package model

import (
	"time"

	"github.com/triplog/triplog-backend/domain"
)

type Trip struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	UserID      int64     `gorm:"column:user_id;not null;index"`
	Title       string    `gorm:"type:varchar(100);not null"`
	StartDate   time.Time `gorm:"column:start_date;type:date"`
	EndDate     time.Time `gorm:"column:end_date;type:date"`
	PrivatePlan bool      `gorm:"column:private_plan;default:false"`
	LikeCount   int64     `gorm:"column:like_count;default:0"`
	Budget      int64     `gorm:"default:0"`
	CityID      int64     `gorm:"column:city_id;default:0"`
	UpdatedAt   time.Time `gorm:"type:datetime"`
	CreatedAt   time.Time `gorm:"type:datetime"`
}

func (Trip) TableName() string {
	return "trip"
}

type TripParticipant struct {
	TripID   int64     `gorm:"column:trip_id;not null;uniqueIndex:uk_trip_participant"`
	UserID   int64     `gorm:"column:user_id;not null;uniqueIndex:uk_trip_participant"`
	Role     string    `gorm:"type:varchar(20);default:companion"`
	JoinedAt time.Time `gorm:"column:joined_at;type:datetime"`
}

func (TripParticipant) TableName() string {
	return "trip_participant"
}

type ItineraryItem struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	TripID    int64  `gorm:"column:trip_id;not null;index"`
	Day       int64  `gorm:"not null"`
	Seq       int64  `gorm:"not null"`
	PlaceName string `gorm:"column:place_name;type:varchar(100);not null"`
	Memo      string `gorm:"type:varchar(300)"`
}

func (ItineraryItem) TableName() string {
	return "itinerary_item"
}

type Reservation struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	TripID     int64     `gorm:"column:trip_id;not null;index"`
	Kind       string    `gorm:"type:varchar(20);not null"`
	RefName    string    `gorm:"column:ref_name;type:varchar(100)"`
	ReservedAt time.Time `gorm:"column:reserved_at;type:datetime"`
}

func (Reservation) TableName() string {
	return "reservation"
}

func (m *Trip) ToDomain() domain.Trip {
	return domain.Trip{
		ID:          m.ID,
		OwnerID:     m.UserID,
		Owner:       domain.User{ID: m.UserID},
		Title:       m.Title,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		PrivatePlan: m.PrivatePlan,
		LikeCount:   m.LikeCount,
		Budget:      m.Budget,
		CityID:      m.CityID,
		UpdatedAt:   m.UpdatedAt,
		CreatedAt:   m.CreatedAt,
	}
}

func NewTripFromDomain(t *domain.Trip) *Trip {
	return &Trip{
		ID:          t.ID,
		UserID:      t.OwnerID,
		Title:       t.Title,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		PrivatePlan: t.PrivatePlan,
		LikeCount:   t.LikeCount,
		Budget:      t.Budget,
		CityID:      t.CityID,
		UpdatedAt:   t.UpdatedAt,
		CreatedAt:   t.CreatedAt,
	}
}

func (m *TripParticipant) ToDomain() domain.TripParticipant {
	return domain.TripParticipant{
		TripID:   m.TripID,
		UserID:   m.UserID,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
	}
}

func NewTripParticipantFromDomain(p *domain.TripParticipant) *TripParticipant {
	return &TripParticipant{
		TripID:   p.TripID,
		UserID:   p.UserID,
		Role:     p.Role,
		JoinedAt: p.JoinedAt,
	}
}

func (m *ItineraryItem) ToDomain() domain.ItineraryItem {
	return domain.ItineraryItem{
		ID:        m.ID,
		TripID:    m.TripID,
		Day:       m.Day,
		Seq:       m.Seq,
		PlaceName: m.PlaceName,
		Memo:      m.Memo,
	}
}

func NewItineraryItemFromDomain(it *domain.ItineraryItem) *ItineraryItem {
	return &ItineraryItem{
		ID:        it.ID,
		TripID:    it.TripID,
		Day:       it.Day,
		Seq:       it.Seq,
		PlaceName: it.PlaceName,
		Memo:      it.Memo,
	}
}

func (m *Reservation) ToDomain() domain.Reservation {
	return domain.Reservation{
		ID:         m.ID,
		TripID:     m.TripID,
		Kind:       m.Kind,
		RefName:    m.RefName,
		ReservedAt: m.ReservedAt,
	}
}

func NewReservationFromDomain(r *domain.Reservation) *Reservation {
	return &Reservation{
		ID:         r.ID,
		TripID:     r.TripID,
		Kind:       r.Kind,
		RefName:    r.RefName,
		ReservedAt: r.ReservedAt,
	}
}
