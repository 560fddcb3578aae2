package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jrsteele09/hospital-portal/backend"
	apperrors "github.com/jrsteele09/hospital-portal/internal/errors"
	"github.com/jrsteele09/hospital-portal/internal/validation"
	"github.com/jrsteele09/hospital-portal/roles"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func loginCmd(opts *rootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:       "login <doctor|patient>",
		Short:     "Log in and persist the session",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(roles.Doctor), string(roles.Patient)},
		RunE: func(cmd *cobra.Command, args []string) error {
			role, ok := roles.Parse(args[0])
			if !ok {
				return apperrors.Wrapf(apperrors.ErrInvalidRole, "login %q", args[0])
			}

			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				read, err := readPassword(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = read
			}

			req := backend.LoginRequest{Email: email, Password: password}
			if err := validation.New().Validate(req); err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), opts.config())
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.backend.Login(cmd.Context(), role, req)
			if err != nil {
				return err
			}
			a.session.Login(cmd.Context(), result.Profile, result.Tokens, role)

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", result.Profile.DisplayName(), role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password, read from stdin when omitted")
	return cmd
}

// readPassword reads one line so the password stays out of shell history and ps
func readPassword(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, "readPassword")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func logoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts.config())
			if err != nil {
				return err
			}
			defer a.Close()

			a.session.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func whoamiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts.config())
			if err != nil {
				return err
			}
			defer a.Close()

			snap := a.session.Snapshot()
			if !snap.Active() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", snap.Profile.DisplayName(), snap.Profile.Email, snap.Role)
			return nil
		},
	}
}

func appointmentsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "appointments",
		Short: "List the logged in user's appointments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts.config())
			if err != nil {
				return err
			}
			defer a.Close()

			snap := a.session.Snapshot()
			if !snap.Active() {
				return apperrors.ErrNotLoggedIn
			}

			var appointments []backend.Appointment
			if snap.Role == roles.Doctor {
				appointments, err = a.backend.ListDoctorAppointments(cmd.Context(), snap.Profile.UID)
			} else {
				appointments, err = a.backend.ListPatientAppointments(cmd.Context(), snap.Profile.UID)
			}
			if backend.IsAuthFailure(err) {
				a.session.Logout(cmd.Context())
				return apperrors.Wrapf(err, "session expired, log in again")
			}
			if err != nil {
				return err
			}

			if len(appointments) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No appointments")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "BOOKING\tDAY\tTIME\tWITH\tSTATUS")
			for _, appt := range appointments {
				with := appt.DoctorName
				if snap.Role == roles.Doctor {
					with = appt.PatientName
					if appt.PatientDetails != nil {
						with = appt.PatientDetails.Name
					}
				}
				fmt.Fprintf(tw, "%s\t%s\t%s-%s\t%s\t%s\n", appt.BookingID, appt.Day, appt.StartTime, appt.EndTime, with, appt.Status)
			}
			return tw.Flush()
		},
	}
}
