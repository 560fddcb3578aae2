package backend

import (
	"context"
	"net/http"

	"github.com/jrsteele09/hospital-portal/credentials"
	apperrors "github.com/jrsteele09/hospital-portal/internal/errors"
	"github.com/jrsteele09/hospital-portal/roles"
	"github.com/pkg/errors"
)

// rolePath is the API prefix owning a role's endpoints
func rolePath(role roles.Role) (string, error) {
	switch role {
	case roles.Doctor:
		return "/doctors", nil
	case roles.Patient:
		return "/patients", nil
	default:
		return "", errors.Wrapf(apperrors.ErrInvalidRole, "role %q", string(role))
	}
}

// Login exchanges email and password for the role's profile and a token pair
func (c *Client) Login(ctx context.Context, role roles.Role, req LoginRequest) (*AuthResult, error) {
	prefix, err := rolePath(role)
	if err != nil {
		return nil, err
	}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, prefix+"/login/", nil, req, &resp, false); err != nil {
		return nil, errors.Wrap(err, "Client.Login")
	}
	return resp.result(role)
}

// Register creates the account and logs straight in. body is a DoctorRegistration or PatientRegistration.
func (c *Client) Register(ctx context.Context, role roles.Role, body any) (*AuthResult, error) {
	prefix, err := rolePath(role)
	if err != nil {
		return nil, err
	}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, prefix+"/register/", nil, body, &resp, false); err != nil {
		return nil, errors.Wrap(err, "Client.Register")
	}
	return resp.result(role)
}

func (c *Client) DoctorLogin(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	return c.Login(ctx, roles.Doctor, req)
}

func (c *Client) PatientLogin(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	return c.Login(ctx, roles.Patient, req)
}

func (c *Client) DoctorRegister(ctx context.Context, req DoctorRegistration) (*AuthResult, error) {
	return c.Register(ctx, roles.Doctor, req)
}

func (c *Client) PatientRegister(ctx context.Context, req PatientRegistration) (*AuthResult, error) {
	return c.Register(ctx, roles.Patient, req)
}

// RefreshTokens trades a refresh token for a new pair at the role's refresh endpoint
func (c *Client) RefreshTokens(ctx context.Context, role roles.Role, refresh string) (credentials.Tokens, error) {
	prefix, err := rolePath(role)
	if err != nil {
		return credentials.Tokens{}, err
	}
	var resp refreshResponse
	if err := c.do(ctx, http.MethodPost, prefix+"/token/refresh/", nil, refreshRequest{RefreshToken: refresh}, &resp, false); err != nil {
		return credentials.Tokens{}, errors.Wrap(err, "Client.RefreshTokens")
	}
	if resp.Tokens.Access == "" {
		return credentials.Tokens{}, errors.Wrap(apperrors.ErrUnauthorized, "Client.RefreshTokens empty access token")
	}
	return resp.Tokens, nil
}

func (r authResponse) result(role roles.Role) (*AuthResult, error) {
	profile := r.Patient
	if role == roles.Doctor {
		profile = r.Doctor
	}
	if profile == nil || r.Tokens.Access == "" {
		return nil, errors.Wrapf(apperrors.ErrBadRequest, "backend %s response missing profile or tokens", role)
	}
	return &AuthResult{Profile: *profile, Tokens: r.Tokens}, nil
}
