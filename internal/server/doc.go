// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	POST /v1/layout           diagram JSON → layout JSON
//	POST /v1/render/{format}  diagram JSON → json, dot or svg artifact
//	POST /v1/validate         diagram JSON → lint report and statistics
//	GET  /healthz             liveness
//	GET  /metrics             Prometheus exposition
//
// Request bodies are either a bare diagram document or an envelope
// {"diagram": {...}, "options": {...}, "refresh": false}. Errors are
// reported as {"error": {"code": ..., "message": ...}} with a status
// derived from the error category: validation and structural problems in
// the diagram are 422, rejected layout options are 400, malformed bodies
// are 400, anything else is 500.
package server
