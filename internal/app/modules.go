package app

import (
	"github.com/nfrund/clubportal/internal/module"
	"github.com/nfrund/clubportal/internal/modules/admin"
	"github.com/nfrund/clubportal/internal/modules/bytereg"
	"github.com/nfrund/clubportal/internal/modules/eventreg"
	"github.com/nfrund/clubportal/internal/modules/profile"
)

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
func NewModules() []module.Module {
	return []module.Module{
		// Add new application modules here.
		bytereg.New(),
		eventreg.New(),
		profile.New(),
		admin.New(),
	}
}
