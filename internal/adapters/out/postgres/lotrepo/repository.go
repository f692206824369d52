package lotrepo

import (
	"context"
	"errors"
	"time"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLotRepository implements ports.LotRepository using GORM.
type GormLotRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormLotRepository(db *gorm.DB, tracker aggregateTracker) *GormLotRepository {
	return &GormLotRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new lot with its auctions at revision 1.
func (r *GormLotRepository) Add(ctx context.Context, aggregate *lot.Lot) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Revision = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	aggregate.SetRevision(dto.Revision)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the lot only if its stored revision is still
// expectedRevision, then upserts its auctions.
func (r *GormLotRepository) Update(ctx context.Context, aggregate *lot.Lot, expectedRevision int) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Revision = expectedRevision + 1
	db := r.db.WithContext(ctx)

	result := db.Model(&LotDTO{}).
		Where("id = ? AND revision = ?", dto.ID, expectedRevision).
		Select("*").
		Omit("id", "date_created", "Auctions").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.revisionMismatch(ctx, aggregate.ID(), expectedRevision)
	}

	if len(dto.Auctions) > 0 {
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto.Auctions).Error; err != nil {
			return err
		}
	}

	aggregate.SetRevision(dto.Revision)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormLotRepository) revisionMismatch(ctx context.Context, id kernel.UUID, expected int) error {
	var stored LotDTO
	err := r.db.WithContext(ctx).Select("revision").First(&stored, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("lot", id.String())
	}
	if err != nil {
		return err
	}
	return errs.NewConflictError(id.String(), expected, stored.Revision)
}

// Get retrieves a lot with its auctions.
func (r *GormLotRepository) Get(ctx context.Context, id kernel.UUID) (*lot.Lot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LotDTO
	if err := r.db.WithContext(ctx).Preload("Auctions").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("lot", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListDueForCheck returns pending lots whose next check is at or before now.
func (r *GormLotRepository) ListDueForCheck(ctx context.Context, now time.Time, limit int) ([]*lot.Lot, error) {
	var dtos []LotDTO
	if err := r.db.WithContext(ctx).
		Preload("Auctions").
		Where("status = ? AND next_check <= ?", lot.Pending.String(), now).
		Order("next_check").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	lots := make([]*lot.Lot, 0, len(dtos))
	for _, dto := range dtos {
		l, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		lots = append(lots, l)
	}

	return lots, nil
}
