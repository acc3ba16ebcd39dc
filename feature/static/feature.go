package static

import (
	"isoserve/core/loader"
	"isoserve/core/server"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Feature plugs static file serving into the loader.
type Feature struct {
	handler *Handler
}

// NewFeature creates the static feature for the given config.
func NewFeature(fs afero.Fs, cfg server.Config, logger *zap.Logger) *Feature {
	svc := NewService(fs, cfg.RootDocument, logger)
	return &Feature{handler: NewHandler(svc)}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "static"
}

// IsEnabled reports whether the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load appends the static stages to the pipeline.
func (f *Feature) Load(s loader.Stager) error {
	s.Use(f.handler.Stages()...)
	return nil
}
