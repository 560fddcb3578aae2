package backend

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
)

func (c *Client) TrackHealth(ctx context.Context, patientUID string, entry HealthEntry) error {
	if err := c.post(ctx, "/health-goals/track/"+url.PathEscape(patientUID)+"/", entry, nil); err != nil {
		return errors.Wrap(err, "Client.TrackHealth")
	}
	return nil
}

// ListHealthTracking returns all tracked days, newest first. With a date only that day is returned.
func (c *Client) ListHealthTracking(ctx context.Context, patientUID, date string) ([]HealthEntry, error) {
	path := "/health-goals/track/" + url.PathEscape(patientUID) + "/"
	if date != "" {
		var entry HealthEntry
		if err := c.get(ctx, path, url.Values{"date": []string{date}}, &entry); err != nil {
			return nil, errors.Wrap(err, "Client.ListHealthTracking")
		}
		return []HealthEntry{entry}, nil
	}

	var resp trackingList
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, errors.Wrap(err, "Client.ListHealthTracking")
	}
	return resp.Tracking, nil
}

func (c *Client) AddMedicalTest(ctx context.Context, patientUID string, test MedicalTest) error {
	if err := c.post(ctx, "/health-goals/medical-test/"+url.PathEscape(patientUID)+"/", test, nil); err != nil {
		return errors.Wrap(err, "Client.AddMedicalTest")
	}
	return nil
}

func (c *Client) ListMedicalTests(ctx context.Context, patientUID string) ([]MedicalTest, error) {
	var resp medicalTestList
	if err := c.get(ctx, "/health-goals/medical-tests/"+url.PathEscape(patientUID)+"/", nil, &resp); err != nil {
		return nil, errors.Wrap(err, "Client.ListMedicalTests")
	}
	return resp.Tests, nil
}

func (c *Client) AddPreventiveCheckup(ctx context.Context, patientUID string, checkup PreventiveCheckup) error {
	if err := c.post(ctx, "/health-goals/preventive-checkup/"+url.PathEscape(patientUID)+"/", checkup, nil); err != nil {
		return errors.Wrap(err, "Client.AddPreventiveCheckup")
	}
	return nil
}

func (c *Client) ListPreventiveCheckups(ctx context.Context, patientUID string) ([]PreventiveCheckup, error) {
	var resp checkupList
	if err := c.get(ctx, "/health-goals/preventive-checkups/"+url.PathEscape(patientUID)+"/", nil, &resp); err != nil {
		return nil, errors.Wrap(err, "Client.ListPreventiveCheckups")
	}
	return resp.Checkups, nil
}

// PatientHealthForDoctor returns a patient's health summary and records as a doctor sees them
func (c *Client) PatientHealthForDoctor(ctx context.Context, patientUID string) (*PatientHealth, error) {
	var resp PatientHealth
	if err := c.get(ctx, "/health-goals/doctor-view/"+url.PathEscape(patientUID)+"/", nil, &resp); err != nil {
		return nil, errors.Wrap(err, "Client.PatientHealthForDoctor")
	}
	return &resp, nil
}
