package queries

import (
	"context"
	"time"

	"lots/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetLotQueryHandler reads lots straight from the tables the lot repository
// writes, without loading the aggregate.
type GetLotQueryHandler struct {
	db *gorm.DB
}

func NewGetLotQueryHandler(db *gorm.DB) GetLotQueryHandler {
	return GetLotQueryHandler{db: db}
}

// lotRow and auctionRow decode the jsonb columns through GORM's json
// serializer.
type lotRow struct {
	ID                 uuid.UUID
	Status             string
	Title              string
	Description        string
	LotType            string
	Owner              string
	RelatedProcesses   []RelatedProcessView `gorm:"serializer:json"`
	Decisions          []DecisionView       `gorm:"serializer:json"`
	Documents          []DocumentView       `gorm:"serializer:json"`
	Contracts          []ContractView       `gorm:"serializer:json"`
	RectificationStart *time.Time
	RectificationEnd   *time.Time
	DateCreated        time.Time
	DateModified       time.Time
	Revision           int
}

type auctionRow struct {
	ID                    uuid.UUID
	TenderAttempts        int
	Status                string
	ProcurementMethodType string
	AuctionType           string
	DutchSteps            *int
	Value                 *MoneyView `gorm:"serializer:json"`
	MinimalStep           *MoneyView `gorm:"serializer:json"`
	Guarantee             *MoneyView `gorm:"serializer:json"`
	RegistrationFee       *MoneyView `gorm:"serializer:json"`
	TenderingDuration     *string
	AuctionPeriodStart    *time.Time
}

// Handle returns errs.ErrObjectNotFound when the lot does not exist.
func (h GetLotQueryHandler) Handle(ctx context.Context, query GetLotQuery) (GetLotQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetLotQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	lotID := query.LotID()

	var row lotRow
	result := db.Raw(`
		SELECT
			id, status, title, description, lot_type, owner,
			related_processes, decisions, documents, contracts,
			rectification_start, rectification_end,
			date_created, date_modified, revision
		FROM lots
		WHERE id = ?
	`, lotID.Bytes()).Scan(&row)
	if result.Error != nil {
		return GetLotQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetLotQueryResponse{}, errs.NewObjectNotFoundError("lot", lotID)
	}

	var auctions []auctionRow
	if err := db.Raw(`
		SELECT
			id, tender_attempts, status, procurement_method_type, auction_type,
			dutch_steps, value, minimal_step, guarantee, registration_fee,
			tendering_duration, auction_period_start
		FROM auctions
		WHERE lot_id = ?
		ORDER BY tender_attempts
	`, lotID.Bytes()).Scan(&auctions).Error; err != nil {
		return GetLotQueryResponse{}, err
	}

	response := GetLotQueryResponse{
		ID:               row.ID.String(),
		Status:           row.Status,
		Title:            row.Title,
		Description:      row.Description,
		LotType:          row.LotType,
		Owner:            row.Owner,
		RelatedProcesses: nonNil(row.RelatedProcesses),
		Decisions:        nonNil(row.Decisions),
		Documents:        nonNil(row.Documents),
		Contracts:        nonNil(row.Contracts),
		Auctions:         make([]AuctionView, 0, len(auctions)),
		DateCreated:      row.DateCreated.UTC(),
		DateModified:     row.DateModified.UTC(),
		Revision:         row.Revision,
	}
	if row.RectificationStart != nil && row.RectificationEnd != nil {
		response.RectificationPeriod = &PeriodView{
			StartDate: row.RectificationStart.UTC(),
			EndDate:   row.RectificationEnd.UTC(),
		}
	}
	for _, a := range auctions {
		response.Auctions = append(response.Auctions, AuctionView{
			ID:                     a.ID.String(),
			TenderAttempts:         a.TenderAttempts,
			Status:                 a.Status,
			ProcurementMethodType:  a.ProcurementMethodType,
			AuctionType:            a.AuctionType,
			DutchSteps:             a.DutchSteps,
			Value:                  a.Value,
			MinimalStep:            a.MinimalStep,
			Guarantee:              a.Guarantee,
			RegistrationFee:        a.RegistrationFee,
			TenderingDuration:      a.TenderingDuration,
			AuctionPeriodStartDate: a.AuctionPeriodStart,
		})
	}

	return response, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
