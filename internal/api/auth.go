package api

import (
	"context"
	"net/http"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/gateway"
	"spendtrack/internal/notify"
	"spendtrack/internal/session"
	"spendtrack/internal/validator"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Registration is the signup payload.
type Registration struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// ProfileUpdate is the payload for changing the account profile. The password
// pair is optional; setting a new password requires the current one.
type ProfileUpdate struct {
	Name            string `json:"name" validate:"required"`
	CurrentPassword string `json:"currentPassword,omitempty" validate:"required_with=NewPassword"`
	NewPassword     string `json:"newPassword,omitempty" validate:"omitempty,min=8"`
}

// authPayload is the backend's response to login, register, and me.
type authPayload struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         session.User `json:"user"`
}

// AuthService handles the session lifecycle against the backend.
type AuthService struct {
	gw       Doer
	sessions session.Store
	notifier notify.Notifier
}

// NewAuthService creates an AuthService.
func NewAuthService(gw Doer, sessions session.Store, notifier notify.Notifier) *AuthService {
	return &AuthService{gw: gw, sessions: sessions, notifier: notifier}
}

// Login exchanges credentials for a session and persists it.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (*session.Session, error) {
	resp, err := s.gw.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   creds,
		Public: true,
	})
	if err != nil {
		return nil, err
	}

	var payload authPayload
	if err := decodeData(resp, &payload); err != nil {
		return nil, err
	}

	sess := &session.Session{
		Token:        payload.Token,
		RefreshToken: payload.RefreshToken,
		User:         payload.User,
	}
	if err := s.sessions.Save(sess); err != nil {
		return nil, err
	}
	s.notifier.Success("Logged in as " + sess.User.Email)
	return sess, nil
}

// Register creates an account, then persists the returned session.
func (s *AuthService) Register(ctx context.Context, reg Registration) (*session.Session, error) {
	resp, err := s.gw.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body:   reg,
		Public: true,
	})
	if err != nil {
		return nil, err
	}

	var payload authPayload
	if err := decodeData(resp, &payload); err != nil {
		return nil, err
	}

	sess := &session.Session{
		Token:        payload.Token,
		RefreshToken: payload.RefreshToken,
		User:         payload.User,
	}
	if err := s.sessions.Save(sess); err != nil {
		return nil, err
	}
	s.notifier.Success("Account created successfully!")
	return sess, nil
}

// Me fetches the current user profile.
func (s *AuthService) Me(ctx context.Context) (*session.User, error) {
	resp, err := s.gw.Do(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   "/auth/me",
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		User session.User `json:"user"`
	}
	if err := decodeData(resp, &payload); err != nil {
		return nil, err
	}
	return &payload.User, nil
}

// UpdateProfile changes the account profile and mirrors the new name into the
// stored session.
func (s *AuthService) UpdateProfile(ctx context.Context, update ProfileUpdate) (*session.User, error) {
	if err := validator.Get().Struct(update); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	resp, err := s.gw.Do(ctx, gateway.Request{
		Method: http.MethodPut,
		Path:   "/auth/profile",
		Body:   update,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		User session.User `json:"user"`
	}
	if err := decodeData(resp, &payload); err != nil {
		return nil, err
	}
	user := payload.User
	if user.Name == "" {
		user.Name = update.Name
	}

	if sess, err := s.sessions.Current(); err == nil {
		sess.User.Name = user.Name
		if user.Email != "" {
			sess.User.Email = user.Email
		}
		if err := s.sessions.Save(sess); err != nil {
			return nil, err
		}
	}
	s.notifier.Success("Profile updated successfully")
	return &user, nil
}

// Logout clears the local session and notifies the backend on a best-effort
// basis: the local session is gone even when the backend call fails.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(); err != nil {
		return err
	}
	if _, err := s.gw.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/logout",
	}); err != nil {
		return err
	}
	s.notifier.Success("Logged out")
	return nil
}
