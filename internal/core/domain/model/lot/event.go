package lot

import (
	"time"

	"lots/internal/core/domain/model/kernel"
)

// Message ids of the events emitted by lot operations.
const (
	MessageLotCreate              = "lot_create"
	messageSwitchedLotPrefix      = "switched_lot_"
	messageAuctionStatusPrefix    = "auction_status_"
	MessageRectificationOverride  = "rectification_period_override"
	MessageAuctionTermsUpdated    = "auction_terms_updated"
	MessageLotDocumentAttached    = "lot_document_attached"
	MessageLotDecisionsReplaced   = "lot_decisions_replaced"
	MessageLotDescriptionModified = "lot_description_modified"
	MessageLotContractCreate      = "lot_contract_create"
	MessageLotContractPatch       = "lot_contract_patch"
	MessageRelatedProcessCreate   = "lot_related_process_create"
	MessageRelatedProcessPatch    = "lot_related_process_patch"
	MessageRelatedProcessDelete   = "lot_related_process_delete"
	messageContractStatusPrefix   = "contract_status_"
)

// Event is a structured record of something that happened to a lot. Events
// are returned to callers, which decide where to send them.
//
// AuctionID, ContractID and RelatedProcessID are set only on events about
// that sub-resource. From and To carry the lot status, or the sub-resource
// status for auction and contract switches.
type Event struct {
	MessageID        string
	LotID            kernel.UUID
	AuctionID        *kernel.UUID
	ContractID       *kernel.UUID
	RelatedProcessID *kernel.UUID
	From             string
	To               string
	Role             Role
	At               time.Time
}

// SwitchedLotMessageID returns "switched_lot_<status>".
func SwitchedLotMessageID(to Status) string {
	return messageSwitchedLotPrefix + to.String()
}

// AuctionStatusMessageID returns "auction_status_<status>".
func AuctionStatusMessageID(to AuctionStatus) string {
	return messageAuctionStatusPrefix + to.String()
}

// ContractStatusMessageID returns "contract_status_<status>".
func ContractStatusMessageID(to ContractStatus) string {
	return messageContractStatusPrefix + to.String()
}

// NewStatusChangedEvent records a lot status switch.
func NewStatusChangedEvent(lotID kernel.UUID, from, to Status, role Role, at time.Time) Event {
	return Event{
		MessageID: SwitchedLotMessageID(to),
		LotID:     lotID,
		From:      from.String(),
		To:        to.String(),
		Role:      role,
		At:        at,
	}
}

// NewAuctionStatusChangedEvent records an auction status switch.
func NewAuctionStatusChangedEvent(lotID, auctionID kernel.UUID, from, to AuctionStatus, role Role, at time.Time) Event {
	id := auctionID
	return Event{
		MessageID: AuctionStatusMessageID(to),
		LotID:     lotID,
		AuctionID: &id,
		From:      from.String(),
		To:        to.String(),
		Role:      role,
		At:        at,
	}
}

// NewLotEvent records an event without a status change.
func NewLotEvent(messageID string, lotID kernel.UUID, status Status, role Role, at time.Time) Event {
	return Event{
		MessageID: messageID,
		LotID:     lotID,
		From:      status.String(),
		To:        status.String(),
		Role:      role,
		At:        at,
	}
}

// NewContractStatusChangedEvent records a contract status switch.
func NewContractStatusChangedEvent(lotID, contractID kernel.UUID, from, to ContractStatus, role Role, at time.Time) Event {
	id := contractID
	return Event{
		MessageID:  ContractStatusMessageID(to),
		LotID:      lotID,
		ContractID: &id,
		From:       from.String(),
		To:         to.String(),
		Role:       role,
		At:         at,
	}
}

// NewContractEvent records a change to a contract that leaves its status
// alone.
func NewContractEvent(messageID string, lotID, contractID kernel.UUID, status Status, role Role, at time.Time) Event {
	event := NewLotEvent(messageID, lotID, status, role, at)
	id := contractID
	event.ContractID = &id
	return event
}

// NewRelatedProcessEvent records a change to one of the lot's asset
// references.
func NewRelatedProcessEvent(messageID string, lotID, processID kernel.UUID, status Status, role Role, at time.Time) Event {
	event := NewLotEvent(messageID, lotID, status, role, at)
	id := processID
	event.RelatedProcessID = &id
	return event
}
