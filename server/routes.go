package server

import (
	"net/http"

	"github.com/jrsteele09/hospital-portal/roles"
	"github.com/jrsteele09/hospital-portal/routes"
	"github.com/rs/zerolog/log"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+routes.Home+"{$}", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))

	// LOGIN / REGISTER
	s.RegisterRouteHandler("GET "+routes.DoctorLogin, ChainMiddleware(s.LoginPageHandler(roles.Doctor), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+routes.DoctorLogin, ChainMiddleware(s.LoginSubmissionHandler(roles.Doctor), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+routes.PatientLogin, ChainMiddleware(s.LoginPageHandler(roles.Patient), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+routes.PatientLogin, ChainMiddleware(s.LoginSubmissionHandler(roles.Patient), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+routes.DoctorRegister, ChainMiddleware(s.RegisterPageHandler(roles.Doctor), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+routes.DoctorRegister, ChainMiddleware(s.RegisterSubmissionHandler(roles.Doctor), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+routes.PatientRegister, ChainMiddleware(s.RegisterPageHandler(roles.Patient), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+routes.PatientRegister, ChainMiddleware(s.RegisterSubmissionHandler(roles.Patient), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+routes.Logout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// DOCTOR
	doctorOnly := s.HTMLMiddleWare(s.RequireRole(roles.Doctor))
	s.RegisterRouteHandler("GET "+routes.DoctorHome, ChainMiddleware(s.DoctorDashboardHandler(), doctorOnly...))
	s.RegisterRouteHandler("POST "+routes.DoctorAvailability, ChainMiddleware(s.DoctorAvailabilityHandler(), doctorOnly...))
	s.RegisterRouteHandler("POST "+routes.DoctorToggleStatus, ChainMiddleware(s.DoctorToggleStatusHandler(), doctorOnly...))
	s.RegisterRouteHandler("POST "+routes.DoctorBookAppointment, ChainMiddleware(s.DoctorBookAppointmentHandler(), doctorOnly...))
	s.RegisterRouteHandler("GET "+routes.DoctorPatientView, ChainMiddleware(s.DoctorPatientViewHandler(), doctorOnly...))

	// PATIENT
	patientOnly := s.HTMLMiddleWare(s.RequireRole(roles.Patient))
	s.RegisterRouteHandler("GET "+routes.PatientHome, ChainMiddleware(s.PatientDashboardHandler(), patientOnly...))
	s.RegisterRouteHandler("GET "+routes.PatientCheckAvailability, ChainMiddleware(s.PatientCheckAvailabilityHandler(), patientOnly...))
	s.RegisterRouteHandler("POST "+routes.PatientBookAppointment, ChainMiddleware(s.PatientBookAppointmentHandler(), patientOnly...))
	s.RegisterRouteHandler("GET "+routes.HealthGoals, ChainMiddleware(s.HealthGoalsHandler(), patientOnly...))
	s.RegisterRouteHandler("POST "+routes.HealthTrack, ChainMiddleware(s.HealthTrackHandler(), patientOnly...))
	s.RegisterRouteHandler("POST "+routes.HealthMedicalTests, ChainMiddleware(s.HealthMedicalTestHandler(), patientOnly...))
	s.RegisterRouteHandler("POST "+routes.HealthPreventiveCheckup, ChainMiddleware(s.HealthCheckupHandler(), patientOnly...))

	// SHARED
	s.RegisterRouteHandler("POST "+routes.CancelAppointment, ChainMiddleware(s.CancelAppointmentHandler(), s.HTMLMiddleWare(s.RequireRole(roles.None))...))

	// OPS
	s.RegisterRouteHandler("GET "+routes.Metrics, s.metrics.Handler())
	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthzHandler())

	s.RegisterRouteHandler("GET "+RouteStatic, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := r.PathValue("file")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		if err := StreamAsset(w, r, filePath); err != nil {
			logError(http.MethodGet, filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

// HealthzHandler reports whether the persisted session has been loaded
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-s.session.Ready():
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		default:
			http.Error(w, "session not ready", http.StatusServiceUnavailable)
		}
	}
}

func logError(method, path, errMsg string) {
	log.Error().Msgf("[%-19s] %s %s", coloredMethod(method), path, Red+errMsg+ResetColor)
}
