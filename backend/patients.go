package backend

import (
	"context"
	"net/url"

	"github.com/jrsteele09/hospital-portal/profiles"
	"github.com/pkg/errors"
)

func (c *Client) GetPatientProfile(ctx context.Context, uid string) (*profiles.Profile, error) {
	var profile profiles.Profile
	if err := c.get(ctx, "/patients/profile/"+url.PathEscape(uid)+"/", nil, &profile); err != nil {
		return nil, errors.Wrap(err, "Client.GetPatientProfile")
	}
	return &profile, nil
}

func (c *Client) UpdatePatientProfile(ctx context.Context, uid string, profile profiles.Profile) (*profiles.Profile, error) {
	var resp profileResponse
	if err := c.put(ctx, "/patients/profile/"+url.PathEscape(uid)+"/", profile, &resp); err != nil {
		return nil, errors.Wrap(err, "Client.UpdatePatientProfile")
	}
	if resp.Patient == nil {
		return &profile, nil
	}
	return resp.Patient, nil
}

// PatientBookAppointment books a slot as the logged in patient
func (c *Client) PatientBookAppointment(ctx context.Context, doctorUID string, req AppointmentRequest) (*Booking, error) {
	var resp Booking
	if err := c.post(ctx, "/patients/book-appointment/"+url.PathEscape(doctorUID)+"/", req, &resp); err != nil {
		return nil, errors.Wrap(err, "Client.PatientBookAppointment")
	}
	return &resp, nil
}

func (c *Client) ListPatientAppointments(ctx context.Context, patientUID string) ([]Appointment, error) {
	var resp appointmentList
	if err := c.get(ctx, "/patients/appointments/"+url.PathEscape(patientUID)+"/", nil, &resp); err != nil {
		return nil, errors.Wrap(err, "Client.ListPatientAppointments")
	}
	return resp.Appointments, nil
}

// PatientCancelAppointment cancels one of the patient's own bookings
func (c *Client) PatientCancelAppointment(ctx context.Context, bookingID, patientUID string) error {
	body := cancelRequest{PatientUID: patientUID}
	if err := c.post(ctx, "/patients/cancel-appointment/"+url.PathEscape(bookingID)+"/", body, nil); err != nil {
		return errors.Wrap(err, "Client.PatientCancelAppointment")
	}
	return nil
}
