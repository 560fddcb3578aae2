package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/jrsteele09/hospital-portal/internal/utils"
	"github.com/jrsteele09/hospital-portal/internal/validation"
	"github.com/jrsteele09/hospital-portal/routes"
	"github.com/jrsteele09/hospital-portal/session"
	"github.com/rs/zerolog/log"
)

const contentTypeHTML = "text/html; charset=utf-8"

//go:embed templates/*
var templateFiles embed.FS

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

var templateFuncs = template.FuncMap{
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"deref":    derefNumber,
	"link":     link,
	"weekdays": func() []string { return weekdays },
}

var pageLinks = map[string]string{
	"home":             routes.Home,
	"doctor":           routes.DoctorHome,
	"patient":          routes.PatientHome,
	"health_goals":     routes.HealthGoals,
	"doctor_login":     routes.DoctorLogin,
	"doctor_register":  routes.DoctorRegister,
	"patient_login":    routes.PatientLogin,
	"patient_register": routes.PatientRegister,
	"logout":           routes.Logout,
	"availability":     routes.DoctorAvailability,
	"toggle_status":    routes.DoctorToggleStatus,
	"patient_view":     routes.DoctorPatientView,
	"doctor_book":      routes.DoctorBookAppointment,
	"check":            routes.PatientCheckAvailability,
	"book":             routes.PatientBookAppointment,
	"cancel":           routes.CancelAppointment,
	"health_track":     routes.HealthTrack,
	"medical_tests":    routes.HealthMedicalTests,
	"checkups":         routes.HealthPreventiveCheckup,
}

// link resolves a named route for templates, filling path parameters from pairs
func link(name string, pairs ...string) (string, error) {
	pattern, ok := pageLinks[name]
	if !ok {
		return "", fmt.Errorf("unknown link %q", name)
	}
	return routes.Expand(pattern, pairs...), nil
}

func derefNumber(v any) any {
	switch n := v.(type) {
	case *int:
		if n == nil {
			return "-"
		}
		return utils.Value(n)
	case *float64:
		if n == nil {
			return "-"
		}
		return utils.Value(n)
	default:
		return v
	}
}

// ParseTemplate parses a page together with the shared layout and record tables. Pages define a "content" block.
func ParseTemplate(name string) (*template.Template, error) {
	return template.New(name).Funcs(templateFuncs).ParseFS(TemplateFilesFS(), "layout.html", "records.html", name)
}

// mustParseTemplate is for handler constructors, a broken embedded template is a build defect
func mustParseTemplate(name string) *template.Template {
	tmpl, err := ParseTemplate(name)
	if err != nil {
		panic("Failed to parse " + name + " template: " + err.Error())
	}
	return tmpl
}

// PageData is the model every page template receives
type PageData struct {
	AppName string
	Title   string
	Session session.Snapshot
	Error   string
	Notice  string
	Fields  validation.FieldErrors
	Form    map[string]string
	Data    any
}

// newPageData fills the fields common to every page from the request
func (s *Server) newPageData(r *http.Request, title string) PageData {
	return PageData{
		AppName: s.appName,
		Title:   title,
		Session: s.session.Snapshot(),
		Error:   r.URL.Query().Get(queryError),
		Notice:  r.URL.Query().Get(queryNotice),
		Form:    map[string]string{},
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, status int, data PageData) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		log.Err(err).Str("request_id", RequestID(r.Context())).Str("template", tmpl.Name()).Msg("Failed to render template")
	}
}
