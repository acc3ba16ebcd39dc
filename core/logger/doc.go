// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID assigned by the rayid middleware from a Fiber
// context and attaches it to the log entry, so every line about a request can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//   - Output: stdout (default), stderr or a file path
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started", zap.Int("port", 8080))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Failed to read file", zap.Error(err))
package logger
