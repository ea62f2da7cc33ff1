package classificationrepo

import (
	"context"
	"errors"
	"fmt"

	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormClassificationRepository implements ports.ClassificationRepository using GORM.
type GormClassificationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormClassificationRepository creates a repository on db. tracker may be nil
// for read-only use.
func NewGormClassificationRepository(db *gorm.DB, tracker aggregateTracker) *GormClassificationRepository {
	return &GormClassificationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new classification and its entries.
func (r *GormClassificationRepository) Add(ctx context.Context, aggregate *classification.Classification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.track(aggregate)
	return nil
}

// Update writes the classification row guarded by its version and inserts any
// entry that is not stored yet. Entries are append-only, so existing rows are
// never rewritten.
func (r *GormClassificationRepository) Update(ctx context.Context, aggregate *classification.Classification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&ClassificationDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"lot_code":        dto.LotCode,
			"expected_weight": dto.ExpectedWeight,
			"price_xl":        dto.PriceXL,
			"price_l":         dto.PriceL,
			"price_m":         dto.PriceM,
			"price_s":         dto.PriceS,
			"adjustment_xl":   dto.AdjustmentXL,
			"adjustment_l":    dto.AdjustmentL,
			"adjustment_m":    dto.AdjustmentM,
			"adjustment_s":    dto.AdjustmentS,
			"status":          dto.Status,
			"finalized_at":    dto.FinalizedAt,
			"version":         gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(db, aggregate)
	}

	if len(dto.Pallets) > 0 {
		if err := insertMissing(db, &dto.Pallets); err != nil {
			return fmt.Errorf("insert pallets: %w", err)
		}
	}
	if len(dto.Wastes) > 0 {
		if err := insertMissing(db, &dto.Wastes); err != nil {
			return fmt.Errorf("insert waste entries: %w", err)
		}
	}
	if len(dto.Returns) > 0 {
		if err := insertMissing(db, &dto.Returns); err != nil {
			return fmt.Errorf("insert return entries: %w", err)
		}
	}

	aggregate.MarkPersisted(dto.Version + 1)
	r.track(aggregate)
	return nil
}

// Get retrieves a classification by ID.
func (r *GormClassificationRepository) Get(ctx context.Context, id kernel.UUID) (*classification.Classification, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves a classification and locks its row with SELECT ... FOR UPDATE.
func (r *GormClassificationRepository) GetForUpdate(
	ctx context.Context,
	id kernel.UUID,
) (*classification.Classification, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// ListByOrder retrieves every classification of an order.
func (r *GormClassificationRepository) ListByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*classification.Classification, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	return r.list(r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes()))
}

// ListOpen retrieves every classification in Open status.
func (r *GormClassificationRepository) ListOpen(ctx context.Context) ([]*classification.Classification, error) {
	return r.list(r.db.WithContext(ctx).Where("status = ?", int(classification.Open)))
}

func (r *GormClassificationRepository) get(db *gorm.DB, id kernel.UUID) (*classification.Classification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ClassificationDTO
	if err := withEntries(db).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("classification", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormClassificationRepository) list(db *gorm.DB) ([]*classification.Classification, error) {
	var dtos []ClassificationDTO
	if err := withEntries(db).Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	out := make([]*classification.Classification, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, nil
}

func (r *GormClassificationRepository) missingOrStale(db *gorm.DB, aggregate *classification.Classification) error {
	var count int64
	if err := db.Model(&ClassificationDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("classification", aggregate.ID().String())
	}

	return errs.NewVersionIsInvalidError("classification",
		fmt.Errorf("version %d was changed concurrently", aggregate.Version()))
}

func (r *GormClassificationRepository) track(aggregate *classification.Classification) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}

func insertMissing(db *gorm.DB, rows any) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(rows).Error
}

func withEntries(db *gorm.DB) *gorm.DB {
	byTime := func(tx *gorm.DB) *gorm.DB { return tx.Order("registered_at, id") }

	return db.
		Preload("Pallets", byTime).
		Preload("Wastes", byTime).
		Preload("Returns", byTime)
}
