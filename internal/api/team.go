package api

import (
	"context"
	"net/http"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/gateway"
	"spendtrack/internal/notify"
	"spendtrack/internal/validator"
)

// TeamMember is a user sharing this account's expense data.
type TeamMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// InviteInput is the payload for inviting a member.
type InviteInput struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=viewer editor admin"`
}

// TeamService wraps the /team resource.
type TeamService struct {
	gw       Doer
	notifier notify.Notifier
}

// NewTeamService creates a TeamService.
func NewTeamService(gw Doer, notifier notify.Notifier) *TeamService {
	return &TeamService{gw: gw, notifier: notifier}
}

// List fetches all team members.
func (s *TeamService) List(ctx context.Context) ([]TeamMember, error) {
	resp, err := s.gw.Do(ctx, gateway.Request{Method: http.MethodGet, Path: "/team"})
	if err != nil {
		return nil, err
	}
	var members []TeamMember
	if err := decodeData(resp, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Invite adds a member by email.
func (s *TeamService) Invite(ctx context.Context, input InviteInput) (*TeamMember, error) {
	if err := validator.Get().Struct(input); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	resp, err := s.gw.Do(ctx, gateway.Request{Method: http.MethodPost, Path: "/team", Body: input})
	if err != nil {
		return nil, err
	}
	var member TeamMember
	if err := decodeData(resp, &member); err != nil {
		return nil, err
	}
	s.notifier.Success("Invitation sent to " + input.Email)
	return &member, nil
}

// Update replaces a member's email and role.
func (s *TeamService) Update(ctx context.Context, id string, input InviteInput) (*TeamMember, error) {
	if err := validator.Get().Struct(input); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	resp, err := s.gw.Do(ctx, gateway.Request{Method: http.MethodPut, Path: "/team/" + id, Body: input})
	if err != nil {
		return nil, err
	}
	var member TeamMember
	if err := decodeData(resp, &member); err != nil {
		return nil, err
	}
	s.notifier.Success("Team member updated successfully")
	return &member, nil
}

// Remove deletes a member.
func (s *TeamService) Remove(ctx context.Context, id string) error {
	resp, err := s.gw.Do(ctx, gateway.Request{Method: http.MethodDelete, Path: "/team/" + id})
	if err != nil {
		return err
	}
	if err := decodeData(resp, nil); err != nil {
		return err
	}
	s.notifier.Success("Team member removed")
	return nil
}
