package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

// CommentThread counts the live comments attached to a picture or video.
type CommentThread struct {
	bun.BaseModel `bun:"table:comment_threads"`

	Id            int `bun:",pk,autoincrement" json:"id"`
	CommentsCount int `json:"commentsCount"`
}

type Comment struct {
	bun.BaseModel `bun:"table:comments"`

	CommentId           int       `bun:",pk,autoincrement" json:"commentId"`
	CommentThreadNumber int       `json:"commentThreadNumber"`
	CommentText         string    `json:"commentText"`
	Author              string    `json:"author"`
	DisplayName         string    `json:"displayName"`
	Created             time.Time `json:"created"`
}

func (c Comment) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.CommentThreadNumber, validation.Required, validation.Min(1)),
	)
}

type Picture struct {
	bun.BaseModel `bun:"table:pictures"`

	PictureId           int       `bun:",pk,autoincrement" json:"pictureId"`
	ProgenyId           int       `json:"progenyId"`
	PictureLink         string    `json:"pictureLink"`
	PictureTime         time.Time `json:"pictureTime"`
	Tags                string    `json:"tags"`
	Location            string    `json:"location"`
	Latitude            string    `json:"latitude"`
	Longtitude          string    `json:"longtitude"`
	Altitude            string    `json:"altitude"`
	CommentThreadNumber int       `json:"commentThreadNumber"`
	AccessLevel         int       `json:"accessLevel"`
	Author              string    `json:"author"`
}

type Video struct {
	bun.BaseModel `bun:"table:videos"`

	VideoId             int           `bun:",pk,autoincrement" json:"videoId"`
	ProgenyId           int           `json:"progenyId"`
	VideoLink           string        `json:"videoLink"`
	VideoTime           time.Time     `json:"videoTime"`
	Duration            time.Duration `json:"duration"`
	Tags                string        `json:"tags"`
	Location            string        `json:"location"`
	CommentThreadNumber int           `json:"commentThreadNumber"`
	AccessLevel         int           `json:"accessLevel"`
	Author              string        `json:"author"`
}
