// Package lotrepo persists lot aggregates with GORM. Auctions live in their
// own table; decisions, documents, contracts and asset references are stored
// as jsonb on the lot row.
package lotrepo

import (
	"errors"
	"time"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"

	"github.com/google/uuid"
)

// LotDTO is the "lots" table. NextCheck mirrors the end of the
// rectification period while the lot is pending so the chronograph sweep can
// use an index.
type LotDTO struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Status             string              `gorm:"type:varchar(32);not null;index:idx_lots_status_next_check,priority:1"`
	Title              string              `gorm:"type:text;not null"`
	Description        string              `gorm:"type:text;not null;default:''"`
	LotType            string              `gorm:"type:varchar(32);not null"`
	Owner              string              `gorm:"type:varchar(255);not null"`
	OwnerToken         string              `gorm:"type:varchar(64);not null"`
	RelatedProcesses   []RelatedProcessDTO `gorm:"type:jsonb;serializer:json;not null"`
	Decisions          []DecisionDTO       `gorm:"type:jsonb;serializer:json;not null"`
	Documents          []DocumentDTO       `gorm:"type:jsonb;serializer:json;not null"`
	Contracts          []ContractDTO       `gorm:"type:jsonb;serializer:json;not null"`
	RectificationStart *time.Time          `gorm:"type:timestamptz"`
	RectificationEnd   *time.Time          `gorm:"type:timestamptz"`
	NextCheck          *time.Time          `gorm:"type:timestamptz;index:idx_lots_status_next_check,priority:2"`
	DateCreated        time.Time           `gorm:"type:timestamptz;not null"`
	DateModified       time.Time           `gorm:"type:timestamptz;not null"`
	Revision           int                 `gorm:"type:int;not null"`
	Auctions           []AuctionDTO        `gorm:"foreignKey:LotID;constraint:OnDelete:CASCADE"`
}

func (LotDTO) TableName() string {
	return "lots"
}

// AuctionDTO is the "auctions" table.
type AuctionDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LotID                 uuid.UUID  `gorm:"type:uuid;not null;index"`
	TenderAttempts        int        `gorm:"type:smallint;not null"`
	Status                string     `gorm:"type:varchar(16);not null"`
	ProcurementMethodType string     `gorm:"type:varchar(32);not null"`
	AuctionType           string     `gorm:"type:varchar(16);not null"`
	DutchSteps            *int       `gorm:"type:int"`
	Value                 *MoneyDTO  `gorm:"type:jsonb;serializer:json"`
	MinimalStep           *MoneyDTO  `gorm:"type:jsonb;serializer:json"`
	Guarantee             *MoneyDTO  `gorm:"type:jsonb;serializer:json"`
	RegistrationFee       *MoneyDTO  `gorm:"type:jsonb;serializer:json"`
	TenderingDuration     *string    `gorm:"type:varchar(32)"`
	AuctionPeriodStart    *time.Time `gorm:"type:timestamptz"`
}

func (AuctionDTO) TableName() string {
	return "auctions"
}

type MoneyDTO struct {
	Amount                float64 `json:"amount"`
	Currency              string  `json:"currency"`
	ValueAddedTaxIncluded bool    `json:"valueAddedTaxIncluded"`
}

type RelatedProcessDTO struct {
	ID               string `json:"id"`
	RelatedProcessID string `json:"relatedProcessID"`
	Type             string `json:"type"`
	Identifier       string `json:"identifier,omitempty"`
}

type DecisionDTO struct {
	ID           string    `json:"id"`
	Title        string    `json:"title,omitempty"`
	DecisionID   string    `json:"decisionID"`
	DecisionDate time.Time `json:"decisionDate"`
	DecisionOf   string    `json:"decisionOf"`
	RelatedItem  string    `json:"relatedItem,omitempty"`
}

type DocumentDTO struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	DocumentType  string    `json:"documentType,omitempty"`
	Format        string    `json:"format,omitempty"`
	URL           string    `json:"url"`
	DatePublished time.Time `json:"datePublished"`
}

type ContractDTO struct {
	ID               string `json:"id"`
	ContractID       string `json:"contractID"`
	RelatedProcessID string `json:"relatedProcessID,omitempty"`
	Type             string `json:"type"`
	Status           string `json:"status"`
}

func fromDomain(aggregate *lot.Lot) LotDTO {
	lotID := aggregate.ID().Bytes()

	dto := LotDTO{
		ID:               lotID,
		Status:           aggregate.Status().String(),
		Title:            aggregate.Title(),
		Description:      aggregate.Description(),
		LotType:          aggregate.LotType(),
		Owner:            aggregate.Owner(),
		OwnerToken:       aggregate.OwnerToken(),
		RelatedProcesses: make([]RelatedProcessDTO, 0, len(aggregate.RelatedProcesses())),
		Decisions:        make([]DecisionDTO, 0, len(aggregate.Decisions())),
		Documents:        make([]DocumentDTO, 0, len(aggregate.Documents())),
		Contracts:        make([]ContractDTO, 0, len(aggregate.Contracts())),
		NextCheck:        aggregate.NextCheck(),
		DateCreated:      aggregate.DateCreated(),
		DateModified:     aggregate.DateModified(),
		Revision:         aggregate.Revision(),
		Auctions:         make([]AuctionDTO, 0, len(aggregate.Auctions())),
	}

	if rp := aggregate.RectificationPeriod(); rp != nil {
		start, end := rp.StartDate(), rp.EndDate()
		dto.RectificationStart = &start
		dto.RectificationEnd = &end
	}

	for _, rp := range aggregate.RelatedProcesses() {
		dto.RelatedProcesses = append(dto.RelatedProcesses, RelatedProcessDTO{
			ID:               rp.ID().String(),
			RelatedProcessID: rp.RelatedProcessID(),
			Type:             rp.Type(),
			Identifier:       rp.Identifier(),
		})
	}
	for _, d := range aggregate.Decisions() {
		dto.Decisions = append(dto.Decisions, DecisionDTO{
			ID:           d.ID().String(),
			Title:        d.Title(),
			DecisionID:   d.DecisionID(),
			DecisionDate: d.DecisionDate(),
			DecisionOf:   d.DecisionOf().String(),
			RelatedItem:  d.RelatedItem(),
		})
	}
	for _, d := range aggregate.Documents() {
		dto.Documents = append(dto.Documents, DocumentDTO{
			ID:            d.ID().String(),
			Title:         d.Title(),
			DocumentType:  d.DocumentType(),
			Format:        d.Format(),
			URL:           d.URL(),
			DatePublished: d.DatePublished(),
		})
	}
	for _, c := range aggregate.Contracts() {
		dto.Contracts = append(dto.Contracts, ContractDTO{
			ID:               c.ID().String(),
			ContractID:       c.ContractID(),
			RelatedProcessID: c.RelatedProcessID(),
			Type:             c.Type(),
			Status:           c.Status().String(),
		})
	}
	for _, a := range aggregate.Auctions() {
		dto.Auctions = append(dto.Auctions, auctionFromDomain(lotID, a))
	}

	return dto
}

func auctionFromDomain(lotID uuid.UUID, a *lot.Auction) AuctionDTO {
	var tenderingDuration *string
	if d := a.TenderingDuration(); d != nil {
		s := d.String()
		tenderingDuration = &s
	}

	return AuctionDTO{
		ID:                    a.ID().Bytes(),
		LotID:                 lotID,
		TenderAttempts:        a.TenderAttempts(),
		Status:                a.Status().String(),
		ProcurementMethodType: a.ProcurementMethodType(),
		AuctionType:           a.AuctionType(),
		DutchSteps:            a.DutchSteps(),
		Value:                 moneyFromDomain(a.Value()),
		MinimalStep:           moneyFromDomain(a.MinimalStep()),
		Guarantee:             moneyFromDomain(a.Guarantee()),
		RegistrationFee:       moneyFromDomain(a.RegistrationFee()),
		TenderingDuration:     tenderingDuration,
		AuctionPeriodStart:    a.AuctionPeriodStart(),
	}
}

func moneyFromDomain(m *kernel.Money) *MoneyDTO {
	if m == nil {
		return nil
	}
	return &MoneyDTO{Amount: m.Amount(), Currency: m.Currency(), ValueAddedTaxIncluded: m.ValueAddedTaxIncluded()}
}

// toDomain rebuilds a lot from its row and auction rows using RestoreLot.
func toDomain(dto LotDTO) (*lot.Lot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	status, err := lot.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var rectification *kernel.Period
	if dto.RectificationStart != nil && dto.RectificationEnd != nil {
		p, pErr := kernel.NewPeriod(*dto.RectificationStart, *dto.RectificationEnd)
		if pErr != nil {
			return nil, pErr
		}
		rectification = &p
	}

	processes := make([]lot.RelatedProcess, 0, len(dto.RelatedProcesses))
	for _, rp := range dto.RelatedProcesses {
		p, pErr := relatedProcessToDomain(rp)
		if pErr != nil {
			return nil, pErr
		}
		processes = append(processes, p)
	}

	decisions := make([]lot.Decision, 0, len(dto.Decisions))
	for _, d := range dto.Decisions {
		decision, dErr := decisionToDomain(d)
		if dErr != nil {
			return nil, dErr
		}
		decisions = append(decisions, decision)
	}

	documents := make([]lot.Document, 0, len(dto.Documents))
	for _, d := range dto.Documents {
		doc, dErr := documentToDomain(d)
		if dErr != nil {
			return nil, dErr
		}
		documents = append(documents, doc)
	}

	contracts := make([]lot.Contract, 0, len(dto.Contracts))
	for _, c := range dto.Contracts {
		contract, cErr := contractToDomain(c)
		if cErr != nil {
			return nil, cErr
		}
		contracts = append(contracts, contract)
	}

	auctions := make([]*lot.Auction, 0, len(dto.Auctions))
	for _, a := range dto.Auctions {
		auction, aErr := auctionToDomain(a)
		if aErr != nil {
			return nil, aErr
		}
		auctions = append(auctions, auction)
	}

	return lot.RestoreLot(lot.RestoreLotParams{
		ID:                  id,
		Status:              status,
		Title:               dto.Title,
		Description:         dto.Description,
		LotType:             dto.LotType,
		Owner:               dto.Owner,
		OwnerToken:          dto.OwnerToken,
		RelatedProcesses:    processes,
		Decisions:           decisions,
		Documents:           documents,
		Auctions:            auctions,
		Contracts:           contracts,
		RectificationPeriod: rectification,
		DateCreated:         dto.DateCreated,
		DateModified:        dto.DateModified,
		Revision:            dto.Revision,
	})
}

func relatedProcessToDomain(dto RelatedProcessDTO) (lot.RelatedProcess, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return lot.RelatedProcess{}, err
	}
	return lot.NewRelatedProcess(id, dto.RelatedProcessID, dto.Identifier)
}

func decisionToDomain(dto DecisionDTO) (lot.Decision, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return lot.Decision{}, err
	}
	of, err := lot.ParseDecisionOf(dto.DecisionOf)
	if err != nil {
		return lot.Decision{}, err
	}
	return lot.NewDecision(id, dto.Title, dto.DecisionID, dto.DecisionDate, of, dto.RelatedItem)
}

func documentToDomain(dto DocumentDTO) (lot.Document, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return lot.Document{}, err
	}
	return lot.NewDocument(id, dto.Title, dto.DocumentType, dto.Format, dto.URL, dto.DatePublished)
}

func contractToDomain(dto ContractDTO) (lot.Contract, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return lot.Contract{}, err
	}
	status, err := lot.ParseContractStatus(dto.Status)
	if err != nil {
		return lot.Contract{}, err
	}
	return lot.RestoreContract(lot.RestoreContractParams{
		ID:               id,
		ContractID:       dto.ContractID,
		RelatedProcessID: dto.RelatedProcessID,
		Type:             dto.Type,
		Status:           status,
	})
}

func auctionToDomain(dto AuctionDTO) (*lot.Auction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	status, err := lot.ParseAuctionStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var tenderingDuration *kernel.Duration
	if dto.TenderingDuration != nil {
		d, dErr := kernel.ParseDuration(*dto.TenderingDuration)
		if dErr != nil {
			return nil, dErr
		}
		tenderingDuration = &d
	}

	value, vErr := moneyToDomain(dto.Value)
	step, sErr := moneyToDomain(dto.MinimalStep)
	guarantee, gErr := moneyToDomain(dto.Guarantee)
	fee, fErr := moneyToDomain(dto.RegistrationFee)
	if err = errors.Join(vErr, sErr, gErr, fErr); err != nil {
		return nil, err
	}

	return lot.RestoreAuction(lot.RestoreAuctionParams{
		ID:                    id,
		TenderAttempts:        dto.TenderAttempts,
		Status:                status,
		ProcurementMethodType: dto.ProcurementMethodType,
		AuctionType:           dto.AuctionType,
		DutchSteps:            dto.DutchSteps,
		Value:                 value,
		MinimalStep:           step,
		Guarantee:             guarantee,
		RegistrationFee:       fee,
		TenderingDuration:     tenderingDuration,
		AuctionPeriodStart:    dto.AuctionPeriodStart,
	})
}

func moneyToDomain(dto *MoneyDTO) (*kernel.Money, error) {
	if dto == nil {
		return nil, nil //nolint:nilnil // absent amount
	}
	m, err := kernel.NewMoney(dto.Amount, dto.Currency, dto.ValueAddedTaxIncluded)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
