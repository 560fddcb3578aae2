package server

import (
	"net/http"

	"github.com/jrsteele09/hospital-portal/backend"
	"github.com/jrsteele09/hospital-portal/routes"
	"github.com/rs/zerolog/log"
)

// HealthGoalsPage is the Data of the health goals page
type HealthGoalsPage struct {
	Date         string
	Tracking     []backend.HealthEntry
	MedicalTests []backend.MedicalTest
	Checkups     []backend.PreventiveCheckup
}

// HealthGoalsHandler shows the patient's tracked days, medical tests and checkups.
// ?date=YYYY-MM-DD narrows tracking to one day.
func (s *Server) HealthGoalsHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("health_goals.html")

	return func(w http.ResponseWriter, r *http.Request) {
		snap := snapshotFrom(r)
		uid := snap.Profile.UID
		ctx := r.Context()

		page := HealthGoalsPage{Date: r.URL.Query().Get("date")}
		var load pageLoad

		tracking, err := s.backend.ListHealthTracking(ctx, uid, page.Date)
		load.note(err)
		page.Tracking = tracking

		tests, err := s.backend.ListMedicalTests(ctx, uid)
		load.note(err)
		page.MedicalTests = tests

		checkups, err := s.backend.ListPreventiveCheckups(ctx, uid)
		load.note(err)
		page.Checkups = checkups

		if s.endSessionIfRejected(w, r, snap, load.err) {
			return
		}

		data := s.newPageData(r, "Health goals")
		data.Data = page
		if load.err != nil {
			log.Err(load.err).Str("request_id", RequestID(ctx)).Msg("HealthGoals: Failed to load health records")
			data.Error = userMessage(load.err)
		}
		s.render(w, r, tmpl, http.StatusOK, data)
	}
}

func (s *Server) HealthTrackHandler() http.HandlerFunc {
	return s.healthAction(func(r *http.Request, p *formParser, uid string) (string, error) {
		entry := p.healthEntry()
		if err := s.checkForm(p, entry); err != nil {
			return "", err
		}
		return "Health data saved", s.backend.TrackHealth(r.Context(), uid, entry)
	})
}

func (s *Server) HealthMedicalTestHandler() http.HandlerFunc {
	return s.healthAction(func(r *http.Request, p *formParser, uid string) (string, error) {
		test := p.medicalTest()
		if err := s.checkForm(p, test); err != nil {
			return "", err
		}
		return "Medical test added", s.backend.AddMedicalTest(r.Context(), uid, test)
	})
}

func (s *Server) HealthCheckupHandler() http.HandlerFunc {
	return s.healthAction(func(r *http.Request, p *formParser, uid string) (string, error) {
		checkup := p.checkup()
		if err := s.checkForm(p, checkup); err != nil {
			return "", err
		}
		return "Preventive checkup added", s.backend.AddPreventiveCheckup(r.Context(), uid, checkup)
	})
}

// healthAction runs one health goals form submission and returns to the health goals page
func (s *Server) healthAction(submit func(r *http.Request, p *formParser, uid string) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := snapshotFrom(r)
		p, err := newFormParser(r)
		if err != nil {
			redirectWithError(w, r, routes.HealthGoals, msgInvalidForm)
			return
		}

		notice, err := submit(r, p, snap.Profile.UID)
		if err != nil {
			s.handleActionError(w, r, snap, routes.HealthGoals, err)
			return
		}
		redirectWithNotice(w, r, routes.HealthGoals, notice)
	}
}
