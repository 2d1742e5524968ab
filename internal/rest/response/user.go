package response

import "github.com/triplog/triplog-backend/domain"

const DateTimeFormat = "2006-01-02 15:04:05"

type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// NewUserFromDomain: Domain -> Response
func NewUserFromDomain(u *domain.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:           u.ID,
		Name:         u.Name,
		ProfileImage: u.ProfileImage,
	}
}
