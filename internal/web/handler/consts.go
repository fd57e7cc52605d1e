package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// ErrNilACRFatalLogMsg is used if app or cfg or rbac service pointer is nil.
	ErrNilACRFatalLogMsg = "app, cfg or rbac service is nil"

	// BulkActivate is the bulk form action activating the selection.
	BulkActivate = "activate"
	// BulkDeactivate is the bulk form action deactivating the selection.
	BulkDeactivate = "deactivate"
	// BulkDelete is the bulk form action deleting the selection.
	BulkDelete = "delete"
)
