package models

import (
	"gorm.io/gorm"
)

// NoticeCategoryPollResult marks notices generated by the expiry sweep
const NoticeCategoryPollResult = "POLL_RESULT"

// Notice is the board post the poll subsystem writes when publishing results;
// notice CRUD beyond creation lives outside this service
type Notice struct {
	gorm.Model
	BoardID  uint   `gorm:"column:board_id;not null;index" json:"board_id"`
	AuthorID uint   `gorm:"column:author_id;not null" json:"author_id"`
	Category string `gorm:"column:category;size:50;not null" json:"category"`
	Title    string `gorm:"column:title;size:255;not null" json:"title"`
	Content  string `gorm:"column:content;type:text" json:"content"`
}

// TableName specifies the table name for Notice
func (Notice) TableName() string {
	return "notices"
}

// CreateNoticeRequest is the payload handed to the notice collaborator
type CreateNoticeRequest struct {
	BoardID  uint   `json:"board_id"`
	AuthorID uint   `json:"author_id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}
