package lot

import (
	"errors"
	"strings"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/pkg/errs"
)

// RelatedProcessTypeAsset is the only related process kind a lot links to.
const RelatedProcessTypeAsset = "asset"

// RelatedProcess references the asset a lot is built from.
type RelatedProcess struct {
	id               kernel.UUID
	relatedProcessID string
	processType      string
	identifier       string
}

// NewRelatedProcess builds an asset reference. relatedProcessID is the
// asset's identifier in the asset registry.
func NewRelatedProcess(id kernel.UUID, relatedProcessID, identifier string) (RelatedProcess, error) {
	var err error
	if vErr := id.Validate(); vErr != nil {
		err = errors.Join(err, vErr)
	}
	if strings.TrimSpace(relatedProcessID) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("relatedProcessID"))
	}
	if err != nil {
		return RelatedProcess{}, err
	}

	return RelatedProcess{
		id:               id,
		relatedProcessID: relatedProcessID,
		processType:      RelatedProcessTypeAsset,
		identifier:       identifier,
	}, nil
}

// ID returns the entry id within the lot, not the asset id.
func (r RelatedProcess) ID() kernel.UUID { return r.id }

// RelatedProcessID is the 32-character hex id of the asset.
func (r RelatedProcess) RelatedProcessID() string { return r.relatedProcessID }

// Type is always RelatedProcessTypeAsset.
func (r RelatedProcess) Type() string { return r.processType }

// Identifier is the asset's public registry number, empty when unknown.
//
// Example:
//
//	rp, _ := lot.NewRelatedProcess(kernel.NewUUID(), assetID.Hex(), "UA-AR-P-2026-03-01-000001")
//	rp.Identifier() // "UA-AR-P-2026-03-01-000001"
func (r RelatedProcess) Identifier() string { return r.identifier }
