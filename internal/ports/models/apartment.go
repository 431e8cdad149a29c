package models

import (
	"gorm.io/gorm"
)

// Apartment is one managed complex. Start/EndBuildingNo bound the building
// numbers a poll's building permission may target.
type Apartment struct {
	gorm.Model
	Name            string `gorm:"column:name;size:100;not null" json:"name"`
	StartBuildingNo int    `gorm:"column:start_building_no;not null" json:"start_building_no"`
	EndBuildingNo   int    `gorm:"column:end_building_no;not null" json:"end_building_no"`
}

// TableName specifies the table name for Apartment
func (Apartment) TableName() string {
	return "apartments"
}

// InBuildingRange reports whether building no falls inside the apartment's
// configured building numbers
func (a *Apartment) InBuildingRange(no int) bool {
	return no >= a.StartBuildingNo && no <= a.EndBuildingNo
}

// BoardType distinguishes the per-apartment board containers
type BoardType string

const (
	BoardTypePoll   BoardType = "POLL"
	BoardTypeNotice BoardType = "NOTICE"
)

// Board scopes polls and notices to one apartment
type Board struct {
	gorm.Model
	ApartmentID uint      `gorm:"column:apartment_id;not null;index" json:"apartment_id"`
	Type        BoardType `gorm:"column:type;size:20;not null" json:"type"`
	Name        string    `gorm:"column:name;size:100;not null" json:"name"`
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "boards"
}
