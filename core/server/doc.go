// Package server builds and runs the HTTP server that exposes the document root.
//
// # Pipeline
//
// Requests flow through an explicit, ordered Pipeline of named Stages. New mounts
// the leading stages:
//
//  1. isolation: sets Cross-Origin-Opener-Policy and Cross-Origin-Embedder-Policy
//  2. rayid: tags the request with a RayID
//  3. access-log: logs the request once a response exists
//
// Features append their own stages (root document, static file, not found) with Use.
// A stage either writes the response or calls c.Next().
//
// # Errors
//
// Stages return ErrNotFound (404), ErrAccess (403) or any other error (500). The
// Fiber error handler maps them with StatusCode and re-applies the isolation headers,
// so error responses carry them too. Start returns *StartupError when the port
// cannot be bound.
//
// # Usage
//
//	srv := server.New(cfg.Server, logg)
//	srv.Use(server.Stage{Name: "hello", Handler: h})
//	if err := srv.Start(); err != nil {
//	    return err
//	}
//	defer srv.Shutdown()
package server
