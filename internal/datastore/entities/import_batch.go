package entities

import "time"

// ImportBatchEntity maps to the 'import_batches' table. Rows are written
// once at the end of an import run.
type ImportBatchEntity struct {
	ID             uint   `gorm:"primaryKey"`
	RunID          string `gorm:"size:36;uniqueIndex:idx_import_batch_run"`
	Source         string `gorm:"size:255;not null"`
	StartedAt      time.Time
	CompletedAt    *time.Time `gorm:"index:idx_import_batch_completed,sort:desc"`
	TotalRows      int
	DuplicateCount int
	ImportedCount  int
	Status         string `gorm:"size:16;not null"`
}

// TableName returns the table name for GORM.
func (ImportBatchEntity) TableName() string {
	return "import_batches"
}
