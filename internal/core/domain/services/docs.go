// Package services holds domain services that coordinate the lot aggregate
// with the rules around it.
//
// The package includes:
//   - LotStateMachine: validates and applies lot patches, auction status
//     changes, auction term edits and document uploads, and reports the
//     resulting events
//   - the same machine also manages sale contracts and the related asset
//     process, see lot_sub_resources.go
//
// Services are pure: they take a lot snapshot and a timestamp and return a
// new snapshot. Persistence and publishing are left to the caller.
package services
