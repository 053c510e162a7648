// Package devtools serves an HTTP inspector for a live router.
//
// Endpoints:
//
//	GET  /healthz      liveness probe
//	GET  /api/state    JSON snapshot of the path, params and route phases
//	POST /api/navigate {"path": "/users/42"}; responds with the new snapshot
//	GET  /api/match    ?pattern=/users/:id&path=/users/42
//	GET  /ws           WebSocket stream of router events as JSON
//	GET  /metrics      Prometheus metrics
//
// Handlers that touch the store run through the Dispatcher so that the
// router is only ever mutated on its UI loop.
//
// Every request gets a server span; a navigation it triggers is traced as
// a child of that span. With Options.Registerer set, request counts and
// latencies are exported as vroute_devtools_requests_total and
// vroute_devtools_request_duration_seconds.
package devtools
