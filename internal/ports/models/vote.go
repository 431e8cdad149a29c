package models

import (
	"gorm.io/gorm"
)

// Vote is one user's live ballot. The composite unique index on
// (user_id, poll_id) is the database backstop for the one-ballot-per-poll
// invariant under concurrent casts.
type Vote struct {
	gorm.Model
	UserID   uint `gorm:"column:user_id;not null;uniqueIndex:idx_votes_user_poll" json:"user_id"`
	PollID   uint `gorm:"column:poll_id;not null;uniqueIndex:idx_votes_user_poll" json:"poll_id"`
	OptionID uint `gorm:"column:option_id;not null;index" json:"option_id"`
}

// TableName specifies the table name for Vote
func (Vote) TableName() string {
	return "votes"
}

// VoteResult is returned after a successful cast: the option voted for, the
// current leading option and the full option set with live counts
type VoteResult struct {
	Option  PollOption   `json:"option"`
	Leading PollOption   `json:"leading"`
	Options []PollOption `json:"options"`
}

// VoteDeleteResult is returned after a retraction
type VoteDeleteResult struct {
	Option PollOption `json:"option"`
}

// VoteMessage is the event payload published when a ballot is cast
type VoteMessage struct {
	UserID   uint `json:"user_id"`
	PollID   uint `json:"poll_id"`
	OptionID uint `json:"option_id"`
}
