// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit in front of the static file stages.
//
// # Components
//
//   - Isolation: Sets the Cross-Origin-Opener-Policy and Cross-Origin-Embedder-Policy
//     headers that browsers require before enabling SharedArrayBuffer for WebAssembly threads.
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//   - AccessLog: Logs every request with its status and duration through Zap.
//
// The server registers these as the leading stages of its pipeline, isolation first,
// so every response carries the isolation headers regardless of what follows.
package middleware
