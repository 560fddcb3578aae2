package server

import "net/http"

// IndexHandler renders the landing page. It is public and never redirects,
// a logged in user gets a link back to their dashboard instead.
func (s *Server) IndexHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, tmpl, http.StatusOK, s.newPageData(r, "Welcome"))
	}
}
