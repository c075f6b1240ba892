package models

import "time"

// ChangeLog is one append-only audit row recording a field-level edit.
// Rows are never updated or deleted.
type ChangeLog struct {
	LogID       int       `gorm:"column:LogID;primaryKey;autoIncrement" json:"LogID"`
	EntrySno    int       `gorm:"column:EntrySno" json:"EntrySno"`
	Field       string    `gorm:"column:Field" json:"Field"`
	BeforeState string    `gorm:"column:BeforeState" json:"BeforeState"`
	AfterState  string    `gorm:"column:AfterState" json:"AfterState"`
	UpdatedBy   string    `gorm:"column:UpdatedBy" json:"UpdatedBy"`
	Timestamp   time.Time `gorm:"column:Timestamp" json:"Timestamp"`
}

func (ChangeLog) TableName() string {
	return "EquipmentChangeLog"
}
