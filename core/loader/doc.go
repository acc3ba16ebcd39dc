// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface and appends its stages to the
// server pipeline when loaded.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(s Stager) error
//	}
//
// # Manager
//
// The Manager struct holds the registry of available features. It handles:
//   - Registration of features via Register()
//   - Loading of enabled features, in registration order, via LoadAll()
//
// Registration order is pipeline order, so a feature registered later only sees
// requests the earlier ones passed on.
package loader
