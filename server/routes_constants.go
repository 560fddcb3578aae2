package server

// Server-only route patterns. Page destinations shared with the guard live in the routes package.
const (
	RouteStatic  = "/static/{file...}"
	RouteHealthz = "/healthz"
)

// Query parameters carried on redirects back to a page
const (
	queryError  = "error"
	queryNotice = "notice"
	queryEmail  = "email"
)
