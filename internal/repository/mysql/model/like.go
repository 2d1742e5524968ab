package model

import (
	"time"
)

// The like tables are membership sets: the composite unique key on
// (target, user) is what turns a concurrent duplicate insert into a
// constraint error instead of a double count.

type PostLike struct {
	PostID    int64     `gorm:"column:post_id;not null;uniqueIndex:uk_post_user"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:uk_post_user"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (PostLike) TableName() string {
	return "post_like"
}

type CommentLike struct {
	CommentID int64     `gorm:"column:comment_id;not null;uniqueIndex:uk_comment_user"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:uk_comment_user"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (CommentLike) TableName() string {
	return "comment_like"
}

type TripLike struct {
	TripID    int64     `gorm:"column:trip_id;not null;uniqueIndex:uk_trip_user"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:uk_trip_user"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (TripLike) TableName() string {
	return "trip_like"
}
