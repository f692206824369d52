package http

import (
	"errors"
	"fmt"
	"net/http"

	"lots/internal/core/application/usecases/queries"
	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"

	"github.com/go-playground/validator/v10"
)

type dataResponse struct {
	Data any `json:"data"`
}

type accessResponse struct {
	Token string `json:"token"`
}

type createdLotResponse struct {
	Data   queries.GetLotQueryResponse `json:"data"`
	Access accessResponse              `json:"access"`
}

type errorItem struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

type errorResponse struct {
	Status string      `json:"status"`
	Errors []errorItem `json:"errors"`
}

// statusForKind maps an error kind to its HTTP status. Every refusal rooted
// in the lifecycle rules is reported as 403.
func statusForKind(kind lot.ErrorKind) int {
	switch kind {
	case lot.KindForbiddenTransition,
		lot.KindForbidden,
		lot.KindDecisionsRequired,
		lot.KindCancellationDocumentRequired,
		lot.KindRectificationPeriodActive:
		return http.StatusForbidden
	case lot.KindIncompleteAuctionConfiguration, lot.KindValidation:
		return http.StatusUnprocessableEntity
	case lot.KindConflict:
		return http.StatusConflict
	case lot.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// newErrorResponse lists joined errors one by one. Internal errors are not
// described to the caller.
func newErrorResponse(err error) (int, errorResponse) {
	kind := lot.KindOf(err)
	status := statusForKind(kind)
	response := errorResponse{Status: "error"}

	if kind == lot.KindInternal {
		response.Errors = []errorItem{{Kind: string(kind), Description: "internal error"}}
		return status, response
	}

	members := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok { //nolint:errorlint // only the top-level join is split
		members = joined.Unwrap()
	}
	for _, member := range members {
		memberKind := lot.KindOf(member)
		if memberKind == lot.KindInternal {
			memberKind = kind
		}
		response.Errors = append(response.Errors, errorItem{Kind: string(memberKind), Description: member.Error()})
	}
	return status, response
}

// validationErrorResponse describes request shape failures per field.
func validationErrorResponse(err error) errorResponse {
	response := errorResponse{Status: "error"}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		for _, fe := range fieldErrors {
			response.Errors = append(response.Errors, errorItem{
				Kind:        string(lot.KindValidation),
				Description: fmt.Sprintf("%s: failed on '%s'", fe.Namespace(), fe.Tag()),
			})
		}
		return response
	}

	response.Errors = []errorItem{{Kind: string(lot.KindValidation), Description: err.Error()}}
	return response
}

func moneyView(m *kernel.Money) *queries.MoneyView {
	if m == nil {
		return nil
	}
	return &queries.MoneyView{
		Amount:                m.Amount(),
		Currency:              m.Currency(),
		ValueAddedTaxIncluded: m.ValueAddedTaxIncluded(),
	}
}

func documentView(d lot.Document) queries.DocumentView {
	return queries.DocumentView{
		ID:            d.ID().String(),
		Title:         d.Title(),
		DocumentType:  d.DocumentType(),
		Format:        d.Format(),
		URL:           d.URL(),
		DatePublished: d.DatePublished().UTC(),
	}
}

func relatedProcessView(rp lot.RelatedProcess) queries.RelatedProcessView {
	return queries.RelatedProcessView{
		ID:               rp.ID().String(),
		RelatedProcessID: rp.RelatedProcessID(),
		Type:             rp.Type(),
		Identifier:       rp.Identifier(),
	}
}

func contractView(c lot.Contract) queries.ContractView {
	return queries.ContractView{
		ID:               c.ID().String(),
		ContractID:       c.ContractID(),
		RelatedProcessID: c.RelatedProcessID(),
		Type:             c.Type(),
		Status:           c.Status().String(),
	}
}

// lotView renders an aggregate in the same shape the read side returns.
func lotView(l *lot.Lot) queries.GetLotQueryResponse {
	view := queries.GetLotQueryResponse{
		ID:               l.ID().String(),
		Status:           l.Status().String(),
		Title:            l.Title(),
		Description:      l.Description(),
		LotType:          l.LotType(),
		Owner:            l.Owner(),
		RelatedProcesses: make([]queries.RelatedProcessView, 0, len(l.RelatedProcesses())),
		Decisions:        make([]queries.DecisionView, 0, len(l.Decisions())),
		Documents:        make([]queries.DocumentView, 0, len(l.Documents())),
		Contracts:        make([]queries.ContractView, 0, len(l.Contracts())),
		Auctions:         make([]queries.AuctionView, 0, len(l.Auctions())),
		DateCreated:      l.DateCreated().UTC(),
		DateModified:     l.DateModified().UTC(),
		Revision:         l.Revision(),
	}

	for _, rp := range l.RelatedProcesses() {
		view.RelatedProcesses = append(view.RelatedProcesses, relatedProcessView(rp))
	}
	for _, c := range l.Contracts() {
		view.Contracts = append(view.Contracts, contractView(c))
	}
	for _, d := range l.Decisions() {
		view.Decisions = append(view.Decisions, queries.DecisionView{
			ID:           d.ID().String(),
			Title:        d.Title(),
			DecisionID:   d.DecisionID(),
			DecisionDate: d.DecisionDate().UTC(),
			DecisionOf:   d.DecisionOf().String(),
			RelatedItem:  d.RelatedItem(),
		})
	}
	for _, d := range l.Documents() {
		view.Documents = append(view.Documents, documentView(d))
	}
	if rp := l.RectificationPeriod(); rp != nil {
		view.RectificationPeriod = &queries.PeriodView{
			StartDate: rp.StartDate().UTC(),
			EndDate:   rp.EndDate().UTC(),
		}
	}
	for _, a := range l.Auctions() {
		av := queries.AuctionView{
			ID:                     a.ID().String(),
			TenderAttempts:         a.TenderAttempts(),
			Status:                 a.Status().String(),
			ProcurementMethodType:  a.ProcurementMethodType(),
			AuctionType:            a.AuctionType(),
			DutchSteps:             a.DutchSteps(),
			Value:                  moneyView(a.Value()),
			MinimalStep:            moneyView(a.MinimalStep()),
			Guarantee:              moneyView(a.Guarantee()),
			RegistrationFee:        moneyView(a.RegistrationFee()),
			AuctionPeriodStartDate: a.AuctionPeriodStart(),
		}
		if td := a.TenderingDuration(); td != nil {
			s := td.String()
			av.TenderingDuration = &s
		}
		view.Auctions = append(view.Auctions, av)
	}

	return view
}
