package activity

import "time"

const (
	EventReviewLogged       = "review.logged"
	EventReadingListUpdated = "readinglist.update"
	EventReadingListRemoved = "readinglist.delete"
)

type ReviewEvent struct {
	Type   string    `json:"type"`
	UserID string    `json:"user_id"`
	WorkID int64     `json:"work_id"`
	Rating int       `json:"rating"`
	At     time.Time `json:"at"`
}

type ReadingListEvent struct {
	Type   string    `json:"type"`
	UserID string    `json:"user_id"`
	WorkID int64     `json:"work_id"`
	Status string    `json:"status,omitempty"`
	At     time.Time `json:"at"`
}
