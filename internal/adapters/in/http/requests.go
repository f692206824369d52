package http

import (
	"errors"
	"time"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/core/domain/services"
	"lots/internal/pkg/errs"
)

type moneyRequest struct {
	Amount                float64 `json:"amount"                validate:"gte=0"`
	Currency              string  `json:"currency"              validate:"omitempty,len=3,uppercase"`
	ValueAddedTaxIncluded *bool   `json:"valueAddedTaxIncluded"`
}

// toDomain defaults the currency to UAH and VAT to included.
func (r *moneyRequest) toDomain(field string) (*kernel.Money, error) {
	if r == nil {
		return nil, nil //nolint:nilnil // absent term
	}
	currency := r.Currency
	if currency == "" {
		currency = kernel.DefaultCurrency
	}
	vat := true
	if r.ValueAddedTaxIncluded != nil {
		vat = *r.ValueAddedTaxIncluded
	}
	m, err := kernel.NewMoney(r.Amount, currency, vat)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	return &m, nil
}

type auctionPeriodRequest struct {
	StartDate *time.Time `json:"startDate"`
}

type auctionParametersRequest struct {
	DutchSteps *int `json:"dutchSteps"`
}

type auctionTermsRequest struct {
	Value             *moneyRequest             `json:"value"`
	MinimalStep       *moneyRequest             `json:"minimalStep"`
	Guarantee         *moneyRequest             `json:"guarantee"`
	RegistrationFee   *moneyRequest             `json:"registrationFee"`
	TenderingDuration *string                   `json:"tenderingDuration" validate:"omitempty,startswith=P"`
	AuctionPeriod     *auctionPeriodRequest     `json:"auctionPeriod"`
	AuctionParameters *auctionParametersRequest `json:"auctionParameters"`
}

func (r auctionTermsRequest) isEmpty() bool {
	return r.Value == nil && r.MinimalStep == nil && r.Guarantee == nil && r.RegistrationFee == nil &&
		r.TenderingDuration == nil && r.AuctionPeriod == nil && r.AuctionParameters == nil
}

func (r auctionTermsRequest) toDomain() (lot.AuctionTerms, error) {
	var terms lot.AuctionTerms
	var err error
	var mErr error

	terms.Value, mErr = r.Value.toDomain("value")
	err = errors.Join(err, mErr)
	terms.MinimalStep, mErr = r.MinimalStep.toDomain("minimalStep")
	err = errors.Join(err, mErr)
	terms.Guarantee, mErr = r.Guarantee.toDomain("guarantee")
	err = errors.Join(err, mErr)
	terms.RegistrationFee, mErr = r.RegistrationFee.toDomain("registrationFee")
	err = errors.Join(err, mErr)

	if r.TenderingDuration != nil {
		d, dErr := kernel.ParseDuration(*r.TenderingDuration)
		if dErr != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("tenderingDuration", dErr))
		} else {
			terms.TenderingDuration = &d
		}
	}
	if r.AuctionPeriod != nil {
		terms.AuctionPeriodStartDate = r.AuctionPeriod.StartDate
	}
	if r.AuctionParameters != nil {
		terms.DutchSteps = r.AuctionParameters.DutchSteps
	}

	return terms, err
}

type relatedProcessRequest struct {
	RelatedProcessID string `json:"relatedProcessID" validate:"required,len=32,hexadecimal"`
	Identifier       string `json:"identifier"`
}

type relatedProcessPatchRequest struct {
	RelatedProcessID *string `json:"relatedProcessID" validate:"omitempty,len=32,hexadecimal"`
	Identifier       *string `json:"identifier"`
}

type contractRequest struct {
	ContractID       string `json:"contractID"       validate:"required"`
	RelatedProcessID string `json:"relatedProcessID"`
}

type contractPatchRequest struct {
	ContractID       *string `json:"contractID"       validate:"omitempty,min=1"`
	RelatedProcessID *string `json:"relatedProcessID"`
	Status           *string `json:"status"`
}

func (r contractPatchRequest) toDomain() (lot.ContractPatch, error) {
	patch := lot.ContractPatch{ContractID: r.ContractID, RelatedProcessID: r.RelatedProcessID}
	if r.Status != nil {
		status, err := lot.ParseContractStatus(*r.Status)
		if err != nil {
			return lot.ContractPatch{}, err
		}
		patch.Status = &status
	}
	return patch, nil
}

type decisionRequest struct {
	ID           string    `json:"id"           validate:"omitempty,uuid"`
	Title        string    `json:"title"`
	DecisionID   string    `json:"decisionID"   validate:"required"`
	DecisionDate time.Time `json:"decisionDate" validate:"required"`
	DecisionOf   string    `json:"decisionOf"   validate:"omitempty,oneof=lot asset"`
	RelatedItem  string    `json:"relatedItem"`
}

func (r decisionRequest) toDomain() (lot.Decision, error) {
	id := kernel.NewUUID()
	if r.ID != "" {
		parsed, err := kernel.UUIDFromString(r.ID)
		if err != nil {
			return lot.Decision{}, errs.NewValueIsInvalidErrorWithCause("decisions.id", err)
		}
		id = parsed
	}
	of, err := lot.ParseDecisionOf(r.DecisionOf)
	if err != nil {
		return lot.Decision{}, err
	}
	return lot.NewDecision(id, r.Title, r.DecisionID, r.DecisionDate, of, r.RelatedItem)
}

func decisionsToDomain(requests []decisionRequest) ([]lot.Decision, error) {
	decisions := make([]lot.Decision, 0, len(requests))
	var err error
	for _, r := range requests {
		d, dErr := r.toDomain()
		if dErr != nil {
			err = errors.Join(err, dErr)
			continue
		}
		decisions = append(decisions, d)
	}
	return decisions, err
}

type documentRequest struct {
	Title        string `json:"title"        validate:"required"`
	DocumentType string `json:"documentType"`
	Format       string `json:"format"`
	URL          string `json:"url"          validate:"required,url"`
}

func (r documentRequest) toDomain(now time.Time) (lot.Document, error) {
	return lot.NewDocument(kernel.NewUUID(), r.Title, r.DocumentType, r.Format, r.URL, now)
}

func documentsToDomain(requests []documentRequest, now time.Time) ([]lot.Document, error) {
	documents := make([]lot.Document, 0, len(requests))
	var err error
	for _, r := range requests {
		d, dErr := r.toDomain(now)
		if dErr != nil {
			err = errors.Join(err, dErr)
			continue
		}
		documents = append(documents, d)
	}
	return documents, err
}

type periodRequest struct {
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate"   validate:"required,gtfield=StartDate"`
}

type createLotRequest struct {
	Title            string                  `json:"title"            validate:"required"`
	Description      string                  `json:"description"`
	RelatedProcesses []relatedProcessRequest `json:"relatedProcesses" validate:"required,len=1,dive"`
	Decisions        []decisionRequest       `json:"decisions"        validate:"max=1,dive"`
	Documents        []documentRequest       `json:"documents"        validate:"dive"`
	Auctions         []auctionTermsRequest   `json:"auctions"         validate:"max=1,dive"`
}

type lotPatchRequest struct {
	Status              *string            `json:"status"`
	Title               *string            `json:"title"               validate:"omitempty,min=1"`
	Description         *string            `json:"description"`
	Decisions           *[]decisionRequest `json:"decisions"           validate:"omitempty,max=2,dive"`
	Documents           []documentRequest  `json:"documents"           validate:"dive"`
	RectificationPeriod *periodRequest     `json:"rectificationPeriod"`
}

func (r lotPatchRequest) toDomain(now time.Time) (services.LotPatch, error) {
	var patch services.LotPatch
	var err error

	if r.Status != nil {
		status, sErr := lot.ParseStatus(*r.Status)
		err = errors.Join(err, sErr)
		patch.Status = &status
	}
	patch.Title = r.Title
	patch.Description = r.Description
	if r.Decisions != nil {
		decisions, dErr := decisionsToDomain(*r.Decisions)
		err = errors.Join(err, dErr)
		patch.Decisions = &decisions
	}
	if len(r.Documents) > 0 {
		documents, dErr := documentsToDomain(r.Documents, now)
		err = errors.Join(err, dErr)
		patch.Documents = documents
	}
	if r.RectificationPeriod != nil {
		period, pErr := kernel.NewPeriod(r.RectificationPeriod.StartDate, r.RectificationPeriod.EndDate)
		if pErr != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("rectificationPeriod", pErr))
		} else {
			patch.RectificationPeriod = &period
		}
	}

	return patch, err
}

type auctionPatchRequest struct {
	auctionTermsRequest

	Status *string `json:"status"`
}

var errMixedAuctionPatch = errs.NewValueIsInvalidErrorWithCause(
	"status", errors.New("auction status and auction terms can't be changed in one request"))
