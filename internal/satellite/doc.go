// Package satellite manages the registry of voice satellites: the speaker
// devices timers are created from and announced on.
//
// A satellite record carries the entity id used as the timer owner
// reference plus per-device speech preferences (language, clock style)
// applied when no explicit values arrive with a request.
//
// The Registry wraps the SQLite repository with an in-memory cache,
// refreshed on startup and kept in sync by the CRUD methods. All public
// methods are safe for concurrent use.
package satellite
