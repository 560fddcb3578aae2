package backend

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/jrsteele09/hospital-portal/profiles"
	"github.com/pkg/errors"
)

func (c *Client) GetDoctorProfile(ctx context.Context, uid string) (*profiles.Profile, error) {
	var profile profiles.Profile
	if err := c.get(ctx, "/doctors/profile/"+url.PathEscape(uid)+"/", nil, &profile); err != nil {
		return nil, errors.Wrap(err, "Client.GetDoctorProfile")
	}
	return &profile, nil
}

// UpdateDoctorProfile sends the editable profile fields and returns the stored result
func (c *Client) UpdateDoctorProfile(ctx context.Context, uid string, profile profiles.Profile) (*profiles.Profile, error) {
	var resp profileResponse
	if err := c.put(ctx, "/doctors/profile/"+url.PathEscape(uid)+"/", profile, &resp); err != nil {
		return nil, errors.Wrap(err, "Client.UpdateDoctorProfile")
	}
	if resp.Doctor == nil {
		return &profile, nil
	}
	return resp.Doctor, nil
}

// ToggleDoctorStatus flips the doctor between online and offline for bookings
func (c *Client) ToggleDoctorStatus(ctx context.Context, uid string) (*StatusToggle, error) {
	var resp StatusToggle
	if err := c.post(ctx, "/doctors/toggle-status/"+url.PathEscape(uid)+"/", nil, &resp); err != nil {
		return nil, errors.Wrap(err, "Client.ToggleDoctorStatus")
	}
	return &resp, nil
}

func (c *Client) ListDoctors(ctx context.Context, activeOnly bool) (*DoctorList, error) {
	query := url.Values{"active_only": []string{strconv.FormatBool(activeOnly)}}
	var resp DoctorList
	if err := c.get(ctx, "/doctors/list/", query, &resp); err != nil {
		return nil, errors.Wrap(err, "Client.ListDoctors")
	}
	return &resp, nil
}

func (c *Client) GetDoctorAvailability(ctx context.Context, uid string) (*Availability, error) {
	var resp Availability
	if err := c.get(ctx, "/doctors/availability/"+url.PathEscape(uid)+"/", nil, &resp); err != nil {
		return nil, errors.Wrap(err, "Client.GetDoctorAvailability")
	}
	return &resp, nil
}

// UpdateDoctorAvailability replaces the doctor's whole weekly availability
func (c *Client) UpdateDoctorAvailability(ctx context.Context, uid string, days []DayAvailability) (*Availability, error) {
	var resp Availability
	body := Availability{Availability: days}
	if err := c.put(ctx, "/doctors/availability/"+url.PathEscape(uid)+"/", body, &resp); err != nil {
		return nil, errors.Wrap(err, "Client.UpdateDoctorAvailability")
	}
	if resp.Availability == nil {
		resp.Availability = days
	}
	return &resp, nil
}

func (c *Client) CheckDoctorAvailability(ctx context.Context, uid, day string) (*DayCheck, error) {
	query := url.Values{"day": []string{strings.ToLower(day)}}
	var resp DayCheck
	if err := c.get(ctx, "/doctors/check-availability/"+url.PathEscape(uid)+"/", query, &resp); err != nil {
		return nil, errors.Wrap(err, "Client.CheckDoctorAvailability")
	}
	return &resp, nil
}

// BookAppointment books a slot on the doctor's side with the patient's contact details
func (c *Client) BookAppointment(ctx context.Context, doctorUID string, req DoctorAppointmentRequest) (*Booking, error) {
	var resp Booking
	if err := c.post(ctx, "/doctors/book-appointment/"+url.PathEscape(doctorUID)+"/", req, &resp); err != nil {
		return nil, errors.Wrap(err, "Client.BookAppointment")
	}
	return &resp, nil
}

func (c *Client) CancelAppointment(ctx context.Context, bookingID string) error {
	if err := c.post(ctx, "/doctors/cancel-appointment/"+url.PathEscape(bookingID)+"/", nil, nil); err != nil {
		return errors.Wrap(err, "Client.CancelAppointment")
	}
	return nil
}

func (c *Client) ListDoctorAppointments(ctx context.Context, doctorUID string) ([]Appointment, error) {
	var resp appointmentList
	if err := c.get(ctx, "/doctors/appointments/"+url.PathEscape(doctorUID)+"/", nil, &resp); err != nil {
		return nil, errors.Wrap(err, "Client.ListDoctorAppointments")
	}
	return resp.Appointments, nil
}
