package config

import (
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool   // enable dev mode for development
	Seed      bool   // seed default collections for absent keys on start
	Actor     string // identity written to every audit entry
	DB        DB
	Store     Store
	Log       logger.Log
	Title     string
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic bool   // enable static file browsing (for development purposes only)
	Port         int    // listening port for the webserver
	ShutDownTime int    // wait time for shutdown
	URL          string // base url for the webserver
}
