package queries

import (
	"errors"
	"time"

	"lots/internal/core/domain/model/lot"
	"lots/internal/pkg/errs"
	"lots/internal/pkg/guard"
)

const (
	DefaultLotsPageSize = 50
	MaxLotsPageSize     = 500
)

var (
	ErrGetLotsByStatusQueryIsNotConstructed = errors.New(
		"GetLotsByStatusQuery must be created via NewGetLotsByStatusQuery constructor",
	)
)

// GetLotsByStatusQuery lists lots in any of the given statuses, most
// recently modified first.
type GetLotsByStatusQuery struct {
	statuses []lot.Status
	limit    int
	guard    guard.ConstructorGuard
}

func NewGetLotsByStatusQuery(statuses []lot.Status, limit int) (GetLotsByStatusQuery, error) {
	var err error
	if len(statuses) == 0 {
		err = errors.Join(err, errs.NewValueIsRequiredError("statuses"))
	}
	for _, s := range statuses {
		if vErr := s.Validate(); vErr != nil {
			err = errors.Join(err, vErr)
		}
	}
	if limit < 1 || limit > MaxLotsPageSize {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxLotsPageSize))
	}
	if err != nil {
		return GetLotsByStatusQuery{}, err
	}

	return GetLotsByStatusQuery{
		statuses: append([]lot.Status(nil), statuses...),
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetLotsByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetLotsByStatusQueryIsNotConstructed)
}

func (q GetLotsByStatusQuery) StatusNames() []string {
	names := make([]string, 0, len(q.statuses))
	for _, s := range q.statuses {
		names = append(names, s.String())
	}
	return names
}

func (q GetLotsByStatusQuery) Limit() int {
	return q.limit
}

// GetLotsByStatusQueryResponse is one row of the listing.
type GetLotsByStatusQueryResponse struct {
	ID                     string     `json:"id"`
	Status                 string     `json:"status"`
	Title                  string     `json:"title"`
	Owner                  string     `json:"owner"`
	RectificationPeriodEnd *time.Time `json:"rectificationPeriodEnd,omitempty"`
	DateModified           time.Time  `json:"dateModified"`
}
