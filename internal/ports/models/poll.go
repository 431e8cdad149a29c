package models

import (
	"time"

	"gorm.io/gorm"
)

// PollStatus is the persisted lifecycle state of a poll. The persisted value
// drives write-path guards; read paths report the time-derived effective
// status instead (see EffectiveStatus).
type PollStatus string

const (
	PollStatusPending    PollStatus = "PENDING"
	PollStatusInProgress PollStatus = "IN_PROGRESS"
	PollStatusClosed     PollStatus = "CLOSED"
)

// Poll is one vote event on an apartment's poll board
type Poll struct {
	gorm.Model
	BoardID            uint         `gorm:"column:board_id;not null;index" json:"board_id"`
	AuthorID           uint         `gorm:"column:author_id;not null" json:"author_id"`
	AuthorName         string       `gorm:"column:author_name;size:100" json:"author_name"`
	Title              string       `gorm:"column:title;size:255;not null" json:"title"`
	Content            string       `gorm:"column:content;type:text" json:"content"`
	BuildingPermission int          `gorm:"column:building_permission;not null;default:0" json:"building_permission"`
	StartDate          time.Time    `gorm:"column:start_date;not null" json:"start_date"`
	EndDate            time.Time    `gorm:"column:end_date;not null" json:"end_date"`
	Status             PollStatus   `gorm:"column:status;size:20;not null;default:PENDING" json:"status"`
	Options            []PollOption `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE" json:"options"`
}

// TableName specifies the table name for Poll
func (Poll) TableName() string {
	return "polls"
}

// Started reports whether the poll window has opened at the given instant;
// started polls are immutable
func (p *Poll) Started(now time.Time) bool {
	return !now.Before(p.StartDate)
}

// EffectiveStatus derives the status a client should see from the poll
// window, independent of the persisted status field
func EffectiveStatus(now, start, end time.Time) PollStatus {
	switch {
	case now.Before(start):
		return PollStatusPending
	case now.After(end):
		return PollStatusClosed
	default:
		return PollStatusInProgress
	}
}

// EffectiveStatus returns the time-derived status of the poll
func (p *Poll) EffectiveStatus(now time.Time) PollStatus {
	return EffectiveStatus(now, p.StartDate, p.EndDate)
}

// CreatePollRequest defines the input for creating a poll
type CreatePollRequest struct {
	Title              string    `json:"title" binding:"required"`
	Content            string    `json:"content"`
	BuildingPermission int       `json:"building_permission"`
	StartDate          time.Time `json:"start_date" binding:"required"`
	EndDate            time.Time `json:"end_date" binding:"required"`
	Options            []string  `json:"options" binding:"required,min=2,dive,required"`
}

// UpdatePollRequest defines the input for updating a poll. A non-nil Options
// slice is a full replace of the option set.
type UpdatePollRequest struct {
	Title              string    `json:"title" binding:"required"`
	Content            string    `json:"content"`
	BuildingPermission int       `json:"building_permission"`
	StartDate          time.Time `json:"start_date" binding:"required"`
	EndDate            time.Time `json:"end_date" binding:"required"`
	Options            []string  `json:"options" binding:"omitempty,min=2,dive,required"`
}

// PollResponse is the read-path shape of a poll; Status carries the
// time-derived effective status
type PollResponse struct {
	ID                 uint         `json:"id"`
	BoardID            uint         `json:"board_id"`
	AuthorID           uint         `json:"author_id"`
	AuthorName         string       `json:"author_name"`
	Title              string       `json:"title"`
	Content            string       `json:"content"`
	BuildingPermission int          `json:"building_permission"`
	StartDate          time.Time    `json:"start_date"`
	EndDate            time.Time    `json:"end_date"`
	Status             PollStatus   `json:"status"`
	Options            []PollOption `json:"options,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
}

// NewPollResponse projects a poll for read paths at the given instant
func NewPollResponse(poll *Poll, now time.Time) PollResponse {
	return PollResponse{
		ID:                 poll.ID,
		BoardID:            poll.BoardID,
		AuthorID:           poll.AuthorID,
		AuthorName:         poll.AuthorName,
		Title:              poll.Title,
		Content:            poll.Content,
		BuildingPermission: poll.BuildingPermission,
		StartDate:          poll.StartDate,
		EndDate:            poll.EndDate,
		Status:             poll.EffectiveStatus(now),
		Options:            poll.Options,
		CreatedAt:          poll.CreatedAt,
	}
}

// PollListResponse is the paginated poll listing
type PollListResponse struct {
	Polls      []PollResponse `json:"polls"`
	TotalCount int64          `json:"total_count"`
}
