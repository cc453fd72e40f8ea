// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - EventStore: Persists imported profiles, notes and graph edges
//   - ProfileIndex: Substring search over profiles with derived counters
//   - ContentIndex: Substring search over notes with engagement counters
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - FollowGraph: Follow and mute edges. Without it, web-of-trust is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
