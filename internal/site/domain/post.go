package domain

import "time"

type Post struct {
	ID        string
	Slug      string
	Title     string
	Summary   string
	Body      string
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
