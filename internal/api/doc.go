// Package api implements the HTTP REST API and WebSocket server for VoxTime Core.
//
// This package provides:
//   - REST endpoints for timer creation, listing, snoozing, and cancellation
//   - Satellite registry CRUD endpoints
//   - WebSocket hub for live timer list broadcasts
//   - JWT authentication with ticket-based WebSocket auth
//   - Middleware stack (request ID, logging, recovery, CORS)
//   - TLS support for production deployments
//
// # Architecture
//
// The API server sits between voice front-ends (satellites, dashboards,
// the home-automation controller) and the timer store. Spoken sentences
// arrive as POST /api/v1/timers requests, are decoded into intervals or
// absolute times, and become armed timers. Lifecycle events flow out over
// MQTT; live list snapshots flow to WebSocket clients subscribed to the
// "timers" channel.
//
// # Security
//
// Authentication uses JWT tokens signed with the shared secret from
// config (HS256). Callers obtain tokens from the controlling system; the
// API only validates them. WebSocket connections use single-use tickets
// to prevent token leakage in URLs.
//
// # Graceful Degradation
//
// The server operates without MQTT — timer operations and WebSocket
// connections work, only broker event fan-out is lost.
package api
