package models

import "time"

type ReadingListItem struct {
	UserID    string    `json:"user_id"`
	WorkID    int64     `json:"work_id"`
	Status    string    `json:"status"` // "to-read", "reading", "finished"
	UpdatedAt time.Time `json:"updated_at"`
}
