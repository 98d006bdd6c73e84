package models

import "time"

type Review struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	WorkID     int64     `json:"work_id"`
	Rating     int       `json:"rating"`
	Text       string    `json:"text,omitempty"`
	DateRead   string    `json:"date_read,omitempty"` // YYYY-MM-DD, user supplied
	DateLogged time.Time `json:"date_logged"`
}
