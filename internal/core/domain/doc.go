// Package domain defines the core business entities for plaza.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchResult: A profile or content hit with optional ranking signals
//   - Category: Which source list a result came from
//   - RankingStrategy: The closed set of orderings a user can pick
//   - TrustLevel: A coarse web-of-trust bucket
//   - Event, Profile, Note: Imported social records
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
