// Package domain defines the core entities for ragdesk.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A stored text document identified by a server-assigned id
//   - PageCursor: The offset/limit window over the stored collection
//   - Hit: A ranked supporting context returned by search or ask
//   - ChatTurn: The live question, its answer and supporting contexts
//   - Toast: A transient, auto-expiring notification
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
