package models

import (
	"gorm.io/gorm"
)

// PollOption is one selectable choice within a poll. VoteCount mirrors the
// number of live Vote rows referencing it and is only mutated inside the
// voting transaction.
type PollOption struct {
	gorm.Model
	PollID    uint   `gorm:"column:poll_id;not null;index" json:"poll_id"`
	Title     string `gorm:"column:title;size:255;not null" json:"title"`
	VoteCount uint   `gorm:"column:vote_count;not null;default:0" json:"vote_count"`
}

// TableName specifies the table name for PollOption
func (PollOption) TableName() string {
	return "poll_options"
}

// LeadingOption returns the option with the highest vote count. Ties resolve
// to the first maximum in slice order.
func LeadingOption(options []PollOption) *PollOption {
	if len(options) == 0 {
		return nil
	}
	leading := &options[0]
	for i := 1; i < len(options); i++ {
		if options[i].VoteCount > leading.VoteCount {
			leading = &options[i]
		}
	}
	return leading
}
