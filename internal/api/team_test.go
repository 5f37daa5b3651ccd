package api

import (
	"context"
	"net/http"
	"testing"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/gateway"
	"spendtrack/internal/notify"
	"spendtrack/internal/testutil"
)

func TestUpdateTeamMember(t *testing.T) {
	doer := &fakeDoer{handler: func(req gateway.Request) (*gateway.Response, error) {
		return okResponse(`{"success":true,"data":{"id":"m-1","name":"Jamie","email":"jamie@example.com","role":"editor"}}`), nil
	}}
	recorder := notify.NewRecorder()
	svc := NewTeamService(doer, recorder)

	member, err := svc.Update(context.Background(), "m-1", InviteInput{Email: "jamie@example.com", Role: "editor"})
	testutil.AssertNoError(t, err)

	if member.Role != "editor" {
		t.Errorf("unexpected member: %+v", member)
	}
	req := doer.requests[0]
	if req.Method != http.MethodPut || req.Path != "/team/m-1" {
		t.Errorf("unexpected request: %+v", req)
	}

	events := recorder.Events()
	if len(events) != 1 || events[0].Level != "success" {
		t.Errorf("expected one success notification, got %+v", events)
	}
}

func TestUpdateTeamMemberValidatesInput(t *testing.T) {
	tests := []struct {
		name  string
		input InviteInput
	}{
		{"bad email", InviteInput{Email: "not-an-email", Role: "viewer"}},
		{"unknown role", InviteInput{Email: "jamie@example.com", Role: "owner"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &fakeDoer{handler: func(req gateway.Request) (*gateway.Response, error) {
				t.Fatal("no request expected for invalid input")
				return nil, nil
			}}
			svc := NewTeamService(doer, notify.NewRecorder())

			_, err := svc.Update(context.Background(), "m-1", tt.input)
			testutil.AssertKind(t, err, apperrors.KindConfigurationInvalid)
		})
	}
}
