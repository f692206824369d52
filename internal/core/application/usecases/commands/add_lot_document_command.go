package commands

import (
	"errors"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/pkg/guard"
)

var ErrAddLotDocumentCommandIsNotConstructed = errors.New(
	"AddLotDocumentCommand must be created via NewAddLotDocumentCommand constructor",
)

// AddLotDocumentCommand attaches document metadata to a lot. The file itself
// lives in the document service; only its url is stored.
type AddLotDocumentCommand struct { //nolint:recvcheck //using for validation
	lotID    kernel.UUID
	document lot.Document
	identity lot.Identity

	guard guard.ConstructorGuard
}

func NewAddLotDocumentCommand(
	lotID kernel.UUID,
	document lot.Document,
	identity lot.Identity,
) (AddLotDocumentCommand, error) {
	if err := errors.Join(lotID.Validate(), document.ID().Validate()); err != nil {
		return AddLotDocumentCommand{}, err
	}

	return AddLotDocumentCommand{
		lotID:    lotID,
		document: document,
		identity: identity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AddLotDocumentCommand) Validate() error {
	return c.guard.Validate(ErrAddLotDocumentCommandIsNotConstructed)
}

func (c AddLotDocumentCommand) LotID() kernel.UUID     { return c.lotID }
func (c AddLotDocumentCommand) Document() lot.Document { return c.document }
func (c AddLotDocumentCommand) Identity() lot.Identity { return c.identity }
