package commands

import (
	"errors"
	"strings"

	"lots/internal/core/domain/model/lot"
	"lots/internal/pkg/errs"
	"lots/internal/pkg/guard"
)

var ErrCreateLotCommandIsNotConstructed = errors.New(
	"CreateLotCommand must be created via NewCreateLotCommand constructor",
)

// CreateLotCommand registers a new lot in draft status together with its
// three auctions.
type CreateLotCommand struct { //nolint:recvcheck //using for validation
	identity       lot.Identity
	title          string
	description    string
	relatedProcess lot.RelatedProcess
	decisions      []lot.Decision
	documents      []lot.Document
	auctionTerms   lot.AuctionTerms

	guard guard.ConstructorGuard
}

// CreateLotParams are the inputs of NewCreateLotCommand. AuctionTerms are the
// terms of the first english auction.
type CreateLotParams struct {
	Identity       lot.Identity
	Title          string
	Description    string
	RelatedProcess lot.RelatedProcess
	Decisions      []lot.Decision
	Documents      []lot.Document
	AuctionTerms   lot.AuctionTerms
}

// NewCreateLotCommand validates the request shape. Lot-level rules are
// checked when the lot is built.
func NewCreateLotCommand(p CreateLotParams) (CreateLotCommand, error) {
	command := CreateLotCommand{
		identity:       p.Identity,
		description:    p.Description,
		relatedProcess: p.RelatedProcess,
		decisions:      p.Decisions,
		documents:      p.Documents,
		auctionTerms:   p.AuctionTerms,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTitle(p.Title),
		command.setRelatedProcess(p.RelatedProcess),
	); err != nil {
		return CreateLotCommand{}, err
	}

	return command, nil
}

func (c CreateLotCommand) Validate() error {
	return c.guard.Validate(ErrCreateLotCommandIsNotConstructed)
}

func (c CreateLotCommand) Identity() lot.Identity             { return c.identity }
func (c CreateLotCommand) Title() string                      { return c.title }
func (c CreateLotCommand) Description() string                { return c.description }
func (c CreateLotCommand) RelatedProcess() lot.RelatedProcess { return c.relatedProcess }
func (c CreateLotCommand) Decisions() []lot.Decision          { return c.decisions }
func (c CreateLotCommand) Documents() []lot.Document          { return c.documents }
func (c CreateLotCommand) AuctionTerms() lot.AuctionTerms     { return c.auctionTerms }

func (c *CreateLotCommand) setTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errs.NewValueIsRequiredError("title")
	}
	c.title = title
	return nil
}

func (c *CreateLotCommand) setRelatedProcess(rp lot.RelatedProcess) error {
	if rp.ID().Validate() != nil || rp.RelatedProcessID() == "" {
		return errs.NewValueIsRequiredError("relatedProcesses")
	}
	return nil
}
