package server

import (
	"html/template"
	"net/http"

	"github.com/jrsteele09/hospital-portal/backend"
	apperrors "github.com/jrsteele09/hospital-portal/internal/errors"
	"github.com/jrsteele09/hospital-portal/internal/validation"
	"github.com/jrsteele09/hospital-portal/roles"
	"github.com/jrsteele09/hospital-portal/routes"
	"github.com/rs/zerolog/log"
)

const msgFixFields = "Please correct the highlighted fields"

// AuthPage is the Data of the login and register pages
type AuthPage struct {
	Role         roles.Role
	LoginPath    string
	RegisterPath string
	OtherRole    roles.Role
	OtherLogin   string
}

func authPage(role roles.Role) AuthPage {
	page := AuthPage{
		Role:         role,
		LoginPath:    routes.PatientLogin,
		RegisterPath: routes.PatientRegister,
		OtherRole:    roles.Doctor,
		OtherLogin:   routes.DoctorLogin,
	}
	if role == roles.Doctor {
		page.LoginPath = routes.DoctorLogin
		page.RegisterPath = routes.DoctorRegister
		page.OtherRole = roles.Patient
		page.OtherLogin = routes.PatientLogin
	}
	return page
}

// LoginPageHandler displays the login form for a role (GET /doctor-login, /patient-login)
func (s *Server) LoginPageHandler(role roles.Role) http.HandlerFunc {
	tmpl := mustParseTemplate("login.html")

	return func(w http.ResponseWriter, r *http.Request) {
		data := s.newPageData(r, role.String()+" login")
		data.Data = authPage(role)
		data.Form["email"] = r.URL.Query().Get(queryEmail)
		s.render(w, r, tmpl, http.StatusOK, data)
	}
}

// LoginSubmissionHandler processes the login form. On success the session is
// started and the user lands on the role's home page.
func (s *Server) LoginSubmissionHandler(role roles.Role) http.HandlerFunc {
	tmpl := mustParseTemplate("login.html")

	return func(w http.ResponseWriter, r *http.Request) {
		p, err := newFormParser(r)
		if err != nil {
			http.Error(w, msgInvalidForm, http.StatusBadRequest)
			return
		}

		data := s.newPageData(r, role.String()+" login")
		data.Data = authPage(role)
		data.Form = p.values("email")

		req := backend.LoginRequest{Email: p.str("email"), Password: p.secret("password")}
		if err := s.checkForm(p, req); err != nil {
			s.renderFormError(w, r, tmpl, data, err)
			return
		}

		result, err := s.backend.Login(r.Context(), role, req)
		if err != nil {
			log.Err(err).Str("role", role.String()).Str("request_id", RequestID(r.Context())).Msg("Login failed")
			s.renderFormError(w, r, tmpl, data, err)
			return
		}

		s.session.Login(r.Context(), result.Profile, result.Tokens, role)
		redirectSuccess(w, r, routes.RoleHome(role))
	}
}

// RegisterPageHandler displays the registration form for a role
func (s *Server) RegisterPageHandler(role roles.Role) http.HandlerFunc {
	tmpl := mustParseTemplate("register.html")

	return func(w http.ResponseWriter, r *http.Request) {
		data := s.newPageData(r, role.String()+" registration")
		data.Data = authPage(role)
		s.render(w, r, tmpl, http.StatusOK, data)
	}
}

// RegisterSubmissionHandler creates the account and logs straight in with the returned tokens
func (s *Server) RegisterSubmissionHandler(role roles.Role) http.HandlerFunc {
	tmpl := mustParseTemplate("register.html")

	return func(w http.ResponseWriter, r *http.Request) {
		p, err := newFormParser(r)
		if err != nil {
			http.Error(w, msgInvalidForm, http.StatusBadRequest)
			return
		}

		data := s.newPageData(r, role.String()+" registration")
		data.Data = authPage(role)

		var body any
		if role == roles.Doctor {
			body = p.doctorRegistration()
			data.Form = p.values("email", "first_name", "last_name", "phone_number",
				"specialization", "license_number", "years_of_experience", "bio")
		} else {
			body = p.patientRegistration()
			data.Form = p.values("email", "first_name", "last_name", "phone_number",
				"date_of_birth", "address", "emergency_contact")
		}

		if err := s.checkForm(p, body); err != nil {
			s.renderFormError(w, r, tmpl, data, err)
			return
		}

		result, err := s.backend.Register(r.Context(), role, body)
		if err != nil {
			log.Err(err).Str("role", role.String()).Str("request_id", RequestID(r.Context())).Msg("Registration failed")
			s.renderFormError(w, r, tmpl, data, err)
			return
		}

		s.session.Login(r.Context(), result.Profile, result.Tokens, role)
		redirectSuccess(w, r, routes.RoleHome(role))
	}
}

// LogoutHandler ends the session and returns to the landing page. Logging out with no session is fine.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.session.Logout(r.Context())
		redirectSuccess(w, r, routes.Home)
	}
}

// renderFormError re-renders a form page with the failure explained
func (s *Server) renderFormError(w http.ResponseWriter, r *http.Request, tmpl *template.Template, data PageData, err error) {
	status := http.StatusBadGateway

	var fields validation.FieldErrors
	var apiErr *backend.APIError
	switch {
	case apperrors.As(err, &fields):
		status = http.StatusUnprocessableEntity
		data.Fields = fields
		data.Error = msgFixFields
	case apperrors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError:
		status = apiErr.StatusCode
		data.Error = apiErr.Message
	default:
		data.Error = userMessage(err)
	}

	s.render(w, r, tmpl, status, data)
}
