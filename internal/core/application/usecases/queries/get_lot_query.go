package queries

import (
	"errors"
	"time"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/pkg/guard"
)

var (
	ErrGetLotQueryIsNotConstructed = errors.New(
		"GetLotQuery must be created via NewGetLotQuery constructor",
	)
)

// GetLotQuery reads one lot with its auctions.
//
// Example:
//
//	query, err := NewGetLotQuery(lotID)
//	if err != nil {
//	    return err
//	}
//	view, err := NewGetLotQueryHandler(db).Handle(ctx, query)
type GetLotQuery struct {
	lotID kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetLotQuery(lotID kernel.UUID) (GetLotQuery, error) {
	if err := lotID.Validate(); err != nil {
		return GetLotQuery{}, err
	}
	return GetLotQuery{lotID: lotID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetLotQuery) Validate() error {
	return q.guard.Validate(ErrGetLotQueryIsNotConstructed)
}

func (q GetLotQuery) LotID() kernel.UUID {
	return q.lotID
}

// GetLotQueryResponse is the public representation of a lot. The owner
// token is never part of it.
type GetLotQueryResponse struct {
	ID                  string               `json:"id"`
	Status              string               `json:"status"`
	Title               string               `json:"title"`
	Description         string               `json:"description,omitempty"`
	LotType             string               `json:"lotType"`
	Owner               string               `json:"owner"`
	RelatedProcesses    []RelatedProcessView `json:"relatedProcesses"`
	Decisions           []DecisionView       `json:"decisions"`
	Documents           []DocumentView       `json:"documents"`
	Contracts           []ContractView       `json:"contracts"`
	RectificationPeriod *PeriodView          `json:"rectificationPeriod,omitempty"`
	Auctions            []AuctionView        `json:"auctions"`
	DateCreated         time.Time            `json:"dateCreated"`
	DateModified        time.Time            `json:"dateModified"`
	Revision            int                  `json:"revision"`
}

type RelatedProcessView struct {
	ID               string `json:"id"`
	RelatedProcessID string `json:"relatedProcessID"`
	Type             string `json:"type"`
	Identifier       string `json:"identifier,omitempty"`
}

// ContractView is a sale contract. Type always equals the lot type.
type ContractView struct {
	ID               string `json:"id"`
	ContractID       string `json:"contractID"`
	RelatedProcessID string `json:"relatedProcessID,omitempty"`
	Type             string `json:"type"`
	Status           string `json:"status"`
}

type DecisionView struct {
	ID           string    `json:"id"`
	Title        string    `json:"title,omitempty"`
	DecisionID   string    `json:"decisionID"`
	DecisionDate time.Time `json:"decisionDate"`
	DecisionOf   string    `json:"decisionOf"`
	RelatedItem  string    `json:"relatedItem,omitempty"`
}

type DocumentView struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	DocumentType  string    `json:"documentType,omitempty"`
	Format        string    `json:"format,omitempty"`
	URL           string    `json:"url"`
	DatePublished time.Time `json:"datePublished"`
}

type PeriodView struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

type MoneyView struct {
	Amount                float64 `json:"amount"`
	Currency              string  `json:"currency"`
	ValueAddedTaxIncluded bool    `json:"valueAddedTaxIncluded"`
}

type AuctionView struct {
	ID                     string     `json:"id"`
	TenderAttempts         int        `json:"tenderAttempts"`
	Status                 string     `json:"status"`
	ProcurementMethodType  string     `json:"procurementMethodType"`
	AuctionType            string     `json:"auctionType"`
	DutchSteps             *int       `json:"dutchSteps,omitempty"`
	Value                  *MoneyView `json:"value,omitempty"`
	MinimalStep            *MoneyView `json:"minimalStep,omitempty"`
	Guarantee              *MoneyView `json:"guarantee,omitempty"`
	RegistrationFee        *MoneyView `json:"registrationFee,omitempty"`
	TenderingDuration      *string    `json:"tenderingDuration,omitempty"`
	AuctionPeriodStartDate *time.Time `json:"auctionPeriodStartDate,omitempty"`
}
