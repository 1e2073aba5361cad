// Package entities holds the GORM models of the catalog schema. Domain code
// works with observation types; the mapper package converts between them.
package entities

import "time"

// ObservationEntity maps to the 'observations' table.
type ObservationEntity struct {
	ID          uint       `gorm:"primaryKey"`
	Telescope   string     `gorm:"size:64;index:idx_observation_identity,priority:1"`
	ProgramID   string     `gorm:"size:64;index:idx_observation_program"`
	TargetName  string     `gorm:"size:128;index:idx_observation_identity,priority:2"`
	RA          float64    `gorm:"column:ra_deg"`
	Dec         float64    `gorm:"column:dec_deg"`
	ObsDate     *time.Time `gorm:"index:idx_observation_obs_date,sort:desc"`
	Instrument  string     `gorm:"size:64"`
	Filters     string     `gorm:"size:128;index:idx_observation_identity,priority:3"`
	ExposureSec int
	ImageURL    string `gorm:"size:512"`
	Score       int    `gorm:"not null;default:0;index:idx_observation_status_score,priority:2,sort:desc"`
	Status      string `gorm:"size:16;not null;default:PENDING;index:idx_observation_status_score,priority:1"`
	Version     int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM.
func (ObservationEntity) TableName() string {
	return "observations"
}

// TargetEntity maps to the 'targets' table.
type TargetEntity struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:128;not null;uniqueIndex:idx_target_name"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM.
func (TargetEntity) TableName() string {
	return "targets"
}
