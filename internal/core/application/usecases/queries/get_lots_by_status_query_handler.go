package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GetLotsByStatusQueryHandler struct {
	db *gorm.DB
}

func NewGetLotsByStatusQueryHandler(db *gorm.DB) GetLotsByStatusQueryHandler {
	return GetLotsByStatusQueryHandler{db: db}
}

func (h GetLotsByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetLotsByStatusQuery,
) ([]GetLotsByStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	lots := make([]GetLotsByStatusQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			title,
			owner,
			rectification_end,
			date_modified
		FROM lots
		WHERE status = ANY(?)
		ORDER BY date_modified DESC, id
		LIMIT ?
	`, pq.Array(query.StatusNames()), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetLotsByStatusQueryResponse
		var id uuid.UUID
		var rectificationEnd *time.Time

		err = rows.Scan(
			&id,
			&item.Status,
			&item.Title,
			&item.Owner,
			&rectificationEnd,
			&item.DateModified,
		)
		if err != nil {
			return nil, err
		}

		item.ID = id.String()
		item.DateModified = item.DateModified.UTC()
		if rectificationEnd != nil {
			end := rectificationEnd.UTC()
			item.RectificationPeriodEnd = &end
		}
		lots = append(lots, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lots, nil
}
