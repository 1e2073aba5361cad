package datastore

import (
	"context"

	"gorm.io/gorm"

	"github.com/cosmiccatalog/cosmic-catalog/internal/datastore/entities"
	"github.com/cosmiccatalog/cosmic-catalog/internal/datastore/mapper"
	"github.com/cosmiccatalog/cosmic-catalog/internal/errors"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

// SaveImportBatch appends b to the import ledger and sets b.ID.
func (ds *DataStore) SaveImportBatch(ctx context.Context, b *observation.ImportBatch) error {
	if b.ID != 0 {
		return errors.Newf("import batch %d is already recorded", b.ID).
			Component("datastore").
			Category(errors.CategoryState).
			Context("run_id", b.RunID).
			Build()
	}

	entity := mapper.BatchToEntity(b)
	if err := ds.DB.WithContext(ctx).Create(entity).Error; err != nil {
		return dbError(err, "save_import_batch", errors.PriorityHigh,
			"run_id", b.RunID, "source", b.Source)
	}
	b.ID = entity.ID
	return nil
}

// LatestCompletedBatch returns the most recently completed import, or nil
// when nothing has been imported yet.
func (ds *DataStore) LatestCompletedBatch(ctx context.Context) (*observation.ImportBatch, error) {
	var entity entities.ImportBatchEntity
	err := ds.DB.WithContext(ctx).
		Where("completed_at IS NOT NULL").
		Order("completed_at DESC").
		Order("id DESC").
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dbError(err, "latest_completed_batch", errors.PriorityLow)
	}
	return mapper.EntityToBatch(&entity), nil
}

// RecentImportBatches returns up to limit ledger rows, newest first.
func (ds *DataStore) RecentImportBatches(ctx context.Context, limit int) ([]*observation.ImportBatch, error) {
	if limit < 1 {
		return nil, validationError("limit must be positive", "limit", limit)
	}

	var rows []entities.ImportBatchEntity
	err := ds.DB.WithContext(ctx).
		Order("started_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, dbError(err, "recent_import_batches", errors.PriorityLow, "limit", limit)
	}

	batches := make([]*observation.ImportBatch, 0, len(rows))
	for i := range rows {
		batches = append(batches, mapper.EntityToBatch(&rows[i]))
	}
	return batches, nil
}
