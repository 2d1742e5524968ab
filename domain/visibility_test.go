package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/triplog/triplog-backend/domain"
)

func TestDecideRead(t *testing.T) {
	privateTrip := domain.Trip{
		ID:          7,
		OwnerID:     100,
		PrivatePlan: true,
		Participants: []domain.TripParticipant{
			{TripID: 7, UserID: 200, Role: "companion"},
		},
	}
	publicTrip := domain.Trip{ID: 8, OwnerID: 100, PrivatePlan: false}

	tests := []struct {
		name     string
		trip     domain.Trip
		caller   domain.Identity
		expected domain.ReadDecision
	}{
		{
			name:     "public trip visible to anonymous",
			trip:     publicTrip,
			caller:   domain.Identity{},
			expected: domain.Visible,
		},
		{
			name:     "public trip visible to stranger",
			trip:     publicTrip,
			caller:   domain.Identity{UserID: 999, Role: domain.RoleUser},
			expected: domain.Visible,
		},
		{
			name:     "private trip hidden to anonymous",
			trip:     privateTrip,
			caller:   domain.Identity{},
			expected: domain.Hidden,
		},
		{
			name:     "private trip hidden to stranger",
			trip:     privateTrip,
			caller:   domain.Identity{UserID: 999, Role: domain.RoleUser},
			expected: domain.Hidden,
		},
		{
			name:     "private trip visible to owner",
			trip:     privateTrip,
			caller:   domain.Identity{UserID: 100, Role: domain.RoleUser},
			expected: domain.Visible,
		},
		{
			name:     "private trip visible to participant",
			trip:     privateTrip,
			caller:   domain.Identity{UserID: 200, Role: domain.RoleUser},
			expected: domain.Visible,
		},
		{
			name:     "private trip visible to admin",
			trip:     privateTrip,
			caller:   domain.Identity{UserID: 1, Role: domain.RoleAdmin},
			expected: domain.Visible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.DecideRead(tt.trip, tt.caller))
		})
	}
}

func TestDecideWrite(t *testing.T) {
	trip := domain.Trip{
		ID:      7,
		OwnerID: 100,
		Participants: []domain.TripParticipant{
			{TripID: 7, UserID: 200, Role: "companion"},
		},
	}

	tests := []struct {
		name     string
		caller   domain.Identity
		expected domain.WriteDecision
	}{
		{"anonymous is read-only", domain.Identity{}, domain.ReadOnly},
		{"stranger is read-only", domain.Identity{UserID: 999, Role: domain.RoleUser}, domain.ReadOnly},
		{"participant is read-only", domain.Identity{UserID: 200, Role: domain.RoleUser}, domain.ReadOnly},
		{"owner may edit", domain.Identity{UserID: 100, Role: domain.RoleUser}, domain.Editable},
		{"admin may edit", domain.Identity{UserID: 1, Role: domain.RoleAdmin}, domain.Editable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.DecideWrite(trip, tt.caller))
		})
	}
}

func TestCanModify(t *testing.T) {
	assert.False(t, domain.CanModify(42, domain.Identity{}))
	assert.False(t, domain.CanModify(42, domain.Identity{UserID: 7, Role: domain.RoleUser}))
	assert.True(t, domain.CanModify(42, domain.Identity{UserID: 42, Role: domain.RoleUser}))
	assert.True(t, domain.CanModify(42, domain.Identity{UserID: 7, Role: domain.RoleAdmin}))
}
