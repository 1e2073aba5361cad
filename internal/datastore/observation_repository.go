package datastore

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cosmiccatalog/cosmic-catalog/internal/datastore/entities"
	"github.com/cosmiccatalog/cosmic-catalog/internal/datastore/mapper"
	"github.com/cosmiccatalog/cosmic-catalog/internal/errors"
	"github.com/cosmiccatalog/cosmic-catalog/internal/logger"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

// Paging limits for ListObservations.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// sortColumns maps accepted sort keys to their column names.
var sortColumns = map[string]string{
	"id":       "id",
	"score":    "score",
	"obs_date": "obs_date",
}

// ListOptions selects one page of observations.
type ListOptions struct {
	Page       int                // zero based
	Size       int                // 0 means DefaultPageSize
	Status     observation.Status // empty means any
	SortBy     string             // id, score or obs_date; empty means id
	Descending bool
}

// ListResult is one page of observations and the total number of matches.
type ListResult struct {
	Items []*observation.Observation
	Total int64
	Page  int
	Size  int
}

func (opts *ListOptions) normalize() error {
	if opts.Page < 0 {
		return validationError("page must not be negative", "page", opts.Page)
	}
	if opts.Size == 0 {
		opts.Size = DefaultPageSize
	}
	if opts.Size < 1 || opts.Size > MaxPageSize {
		return validationError(fmt.Sprintf("page size must be between 1 and %d", MaxPageSize), "size", opts.Size)
	}
	if opts.Status != "" && !opts.Status.Valid() {
		return validationError("unknown status", "status", opts.Status)
	}
	if opts.SortBy == "" {
		opts.SortBy = "id"
	}
	if _, ok := sortColumns[opts.SortBy]; !ok {
		return validationError("unsupported sort column", "sort", opts.SortBy)
	}
	return nil
}

// GetObservation returns the observation with the given id.
func (ds *DataStore) GetObservation(ctx context.Context, id uint) (*observation.Observation, error) {
	var entity entities.ObservationEntity
	if err := ds.DB.WithContext(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, observation.NotFoundError("datastore", id)
		}
		return nil, dbError(err, "get_observation", errors.PriorityMedium, "observation_id", id)
	}
	return mapper.EntityToObservation(&entity), nil
}

// FindCandidates returns observations with exactly the same telescope,
// target name and filters, oldest first.
func (ds *DataStore) FindCandidates(ctx context.Context, telescope, targetName, filters string) ([]*observation.Observation, error) {
	var rows []entities.ObservationEntity
	err := ds.DB.WithContext(ctx).
		Where("telescope = ? AND target_name = ? AND filters = ?", telescope, targetName, filters).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, dbError(err, "find_candidates", errors.PriorityMedium,
			"telescope", telescope, "target_name", targetName)
	}
	return mapper.EntitiesToObservations(rows), nil
}

// CreateObservation inserts o and registers its target. On success o.ID is
// set from the database.
func (ds *DataStore) CreateObservation(ctx context.Context, o *observation.Observation) error {
	entity := mapper.ObservationToEntity(o)

	err := ds.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if o.TargetName != "" {
			if err := ensureTarget(tx, o.TargetName); err != nil {
				return err
			}
		}
		return tx.Create(entity).Error
	})
	if err != nil {
		return dbError(err, "create_observation", errors.PriorityHigh,
			"telescope", o.Telescope, "target_name", o.TargetName)
	}

	o.ID = entity.ID
	o.Status = observation.Status(entity.Status)
	o.Version = entity.Version
	return nil
}

// ensureTarget inserts the target unless a row with the same name exists.
func ensureTarget(tx *gorm.DB, name string) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&entities.TargetEntity{Name: name}).Error
}

// SaveObservation persists the status and score of o with a conditional
// write on o.Version. The stored version is incremented in the same
// statement; on success o.Version is updated to match. When the stored
// version no longer equals o.Version nothing is written and a
// *observation.VersionConflictError carrying the current version is returned.
func (ds *DataStore) SaveObservation(ctx context.Context, o *observation.Observation) error {
	result := ds.DB.WithContext(ctx).
		Model(&entities.ObservationEntity{}).
		Where("id = ? AND version = ?", o.ID, o.Version).
		Updates(map[string]any{
			"status":  string(o.Status),
			"score":   o.Score,
			"version": gorm.Expr("version + ?", 1),
		})
	if result.Error != nil {
		return dbError(result.Error, "save_observation", errors.PriorityHigh, "observation_id", o.ID)
	}

	if result.RowsAffected == 0 {
		current, err := ds.GetObservation(ctx, o.ID)
		if err != nil {
			return err
		}
		ds.log().WithContext(ctx).Debug("conditional update lost",
			logger.Uint("observation_id", o.ID),
			logger.Int("expected_version", o.Version),
			logger.Int("actual_version", current.Version))
		return &observation.VersionConflictError{ID: o.ID, Expected: o.Version, Actual: current.Version}
	}

	o.Version++
	return nil
}

// ListObservations returns one page of observations.
func (ds *DataStore) ListObservations(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}

	query := ds.DB.WithContext(ctx).Model(&entities.ObservationEntity{})
	if opts.Status != "" {
		query = query.Where("status = ?", string(opts.Status))
	}
	// shared by the count and the page query
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, dbError(err, "count_observations", errors.PriorityMedium)
	}

	var rows []entities.ObservationEntity
	err := query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: sortColumns[opts.SortBy]}, Desc: opts.Descending}).
		Order("id ASC").
		Offset(opts.Page * opts.Size).
		Limit(opts.Size).
		Find(&rows).Error
	if err != nil {
		return nil, dbError(err, "list_observations", errors.PriorityMedium,
			"page", opts.Page, "size", opts.Size)
	}

	return &ListResult{
		Items: mapper.EntitiesToObservations(rows),
		Total: total,
		Page:  opts.Page,
		Size:  opts.Size,
	}, nil
}

// FeaturedObservations returns the highest scoring approved observations,
// ties broken by id.
func (ds *DataStore) FeaturedObservations(ctx context.Context, limit int) ([]*observation.Observation, error) {
	if limit < 1 {
		return nil, validationError("limit must be positive", "limit", limit)
	}

	var rows []entities.ObservationEntity
	err := ds.DB.WithContext(ctx).
		Where("status = ?", string(observation.StatusApproved)).
		Order("score DESC").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, dbError(err, "featured_observations", errors.PriorityMedium, "limit", limit)
	}
	return mapper.EntitiesToObservations(rows), nil
}

// CountObservations returns the number of stored observations.
func (ds *DataStore) CountObservations(ctx context.Context) (int64, error) {
	var count int64
	if err := ds.DB.WithContext(ctx).Model(&entities.ObservationEntity{}).Count(&count).Error; err != nil {
		return 0, dbError(err, "count_observations", errors.PriorityLow)
	}
	return count, nil
}

// CountTargets returns the number of distinct targets.
func (ds *DataStore) CountTargets(ctx context.Context) (int64, error) {
	var count int64
	if err := ds.DB.WithContext(ctx).Model(&entities.TargetEntity{}).Count(&count).Error; err != nil {
		return 0, dbError(err, "count_targets", errors.PriorityLow)
	}
	return count, nil
}
