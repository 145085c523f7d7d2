// Package logger provides a structured logging facility based on Zap.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: console (coloured, ISO8601 timestamps) or json
//
// Output always goes to stderr; the CLI prints pack reports on stdout.
//
// # Context Awareness
//
// WithRayID extracts the request ID stored by the rayid middleware and attaches it
// to the logger so all lines of one API request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Pack created", zap.String("path", dst))
package logger
