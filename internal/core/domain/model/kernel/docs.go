// Package kernel holds the value objects shared by the lot registry domain.
//
// The package includes:
//   - UUID: identifier for lots, auctions, decisions and documents
//   - Money: amounts used for auction value, minimal step, guarantee and registration fee
//   - Period: a start/end window, used for rectification periods
//   - Duration: an ISO 8601 duration, used for auction tendering duration
//
// Every value object has an invalid zero value and must be built through its
// constructor. Values are immutable and safe for concurrent use.
package kernel
