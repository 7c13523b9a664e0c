package domain

import "time"

type Project struct {
	ID        string
	Title     string
	Summary   string
	URL       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
