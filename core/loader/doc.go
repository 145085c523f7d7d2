// Package loader registers the HTTP features mounted by the "start" command.
//
// A feature is a named group of routes that can be switched off:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager keeps features in registration order. LoadAll mounts every enabled one
// and stops at the first failure, naming the feature in the returned error.
// The application registers two: "pack" (find, build, session) and "integrity".
package loader
