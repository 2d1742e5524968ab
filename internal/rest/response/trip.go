package response

import "github.com/triplog/triplog-backend/domain"

const DateFormat = "2006-01-02"

type Trip struct {
	ID            int64             `json:"id"`
	Title         string            `json:"title"`
	Owner         *User             `json:"owner,omitempty"`
	StartDate     string            `json:"startDate"`
	EndDate       string            `json:"endDate"`
	PrivatePlan   bool              `json:"privatePlan"`
	LikeCount     int64             `json:"likeCount"`
	Budget        int64             `json:"budget,omitempty"`
	CityID        int64             `json:"cityId,omitempty"`
	LikedByCaller bool              `json:"likedByCaller"`
	Participants  []TripParticipant `json:"participants,omitempty"`
	CreatedAt     string            `json:"createdAt"`
}

type TripParticipant struct {
	UserID   int64  `json:"userId"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role"`
	JoinedAt string `json:"joinedAt"`
}

type ItineraryItem struct {
	ID        int64  `json:"id"`
	Day       int64  `json:"day"`
	Seq       int64  `json:"seq"`
	PlaceName string `json:"placeName"`
	Memo      string `json:"memo,omitempty"`
}

type Reservation struct {
	ID         int64  `json:"id"`
	Kind       string `json:"kind"`
	RefName    string `json:"refName"`
	ReservedAt string `json:"reservedAt"`
}

// NewTripFromDomain: Domain -> Response
func NewTripFromDomain(t *domain.Trip) Trip {
	resp := Trip{
		ID:            t.ID,
		Title:         t.Title,
		Owner:         NewUserFromDomain(&t.Owner),
		StartDate:     t.StartDate.Format(DateFormat),
		EndDate:       t.EndDate.Format(DateFormat),
		PrivatePlan:   t.PrivatePlan,
		LikeCount:     t.LikeCount,
		Budget:        t.Budget,
		CityID:        t.CityID,
		LikedByCaller: t.LikedByCaller,
		CreatedAt:     t.CreatedAt.Format(DateTimeFormat),
	}
	if resp.Owner != nil && resp.Owner.ID == 0 {
		resp.Owner = &User{ID: t.OwnerID}
	}
	for _, p := range t.Participants {
		member := TripParticipant{
			UserID:   p.UserID,
			Role:     p.Role,
			JoinedAt: p.JoinedAt.Format(DateTimeFormat),
		}
		if p.User != nil {
			member.Name = p.User.Name
		}
		resp.Participants = append(resp.Participants, member)
	}
	return resp
}

func NewItineraryItemFromDomain(it *domain.ItineraryItem) ItineraryItem {
	return ItineraryItem{
		ID:        it.ID,
		Day:       it.Day,
		Seq:       it.Seq,
		PlaceName: it.PlaceName,
		Memo:      it.Memo,
	}
}

func NewReservationFromDomain(r *domain.Reservation) Reservation {
	return Reservation{
		ID:         r.ID,
		Kind:       r.Kind,
		RefName:    r.RefName,
		ReservedAt: r.ReservedAt.Format(DateTimeFormat),
	}
}
