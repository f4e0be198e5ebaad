// Package api implements the HTTP REST API and WebSocket server for Hearth.
//
// This package provides:
//   - REST endpoints for the appliance roster, bulk home operations, and
//     the execution journal
//   - WebSocket hub for real-time announcement and execution broadcasts
//   - JWT authentication with ticket-based WebSocket auth
//   - Middleware stack (request ID, logging, recovery, CORS, body limit)
//   - TLS support for production deployments
//
// # Architecture
//
// The API server sits between user interfaces (wall panels, mobile apps,
// the CLI) and the home coordinator. POST /home/activate and
// /home/deactivate run the coordinator synchronously and return the
// execution summary; appliance announcements and finish events reach
// WebSocket clients through the hub.
//
// # Security
//
// Mutating routes require a bearer token from POST /auth/login; reads are
// open on the trusted LAN. WebSocket connections use single-use tickets
// to keep tokens out of URLs.
//
// # Graceful Degradation
//
// MQTT, the scheduler, and InfluxDB are all optional dependencies — the
// system status endpoint reports what is wired, and everything else
// keeps working without them.
package api
