package api

import (
	"context"
	"testing"
	"time"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/gateway"
	"spendtrack/internal/notify"
	"spendtrack/internal/testutil"
)

const reportBody = `{"success":true,"data":{"totalExpenses":1250.5,"expensesByCategory":[{"category":"food","total":400}],"expensesByMonth":[{"month":"2026-07","total":1250.5}],"budgetComparison":[]}}`

func newReportsService(doer Doer, notifier notify.Notifier) (*ReportsService, *[]time.Duration) {
	svc := NewReportsService(doer, notifier)
	var slept []time.Duration
	svc.sleep = func(d time.Duration) { slept = append(slept, d) }
	return svc, &slept
}

func TestFetchReturnsReport(t *testing.T) {
	doer := &fakeDoer{handler: func(req gateway.Request) (*gateway.Response, error) {
		return okResponse(reportBody), nil
	}}
	svc, slept := newReportsService(doer, notify.NewRecorder())

	report, err := svc.Fetch(context.Background(), "2026-07-01", "2026-07-31")
	testutil.AssertNoError(t, err)

	if report.TotalExpenses != 1250.5 {
		t.Errorf("expected total 1250.5, got %.2f", report.TotalExpenses)
	}
	if len(*slept) != 0 {
		t.Errorf("expected no backoff on first success, got %v", *slept)
	}

	req := doer.requests[0]
	if req.Query.Get("startDate") != "2026-07-01" || req.Query.Get("endDate") != "2026-07-31" {
		t.Errorf("unexpected query: %v", req.Query)
	}
}

func TestFetchRetriesNetworkFaultsWithBackoff(t *testing.T) {
	calls := 0
	doer := &fakeDoer{handler: func(req gateway.Request) (*gateway.Response, error) {
		calls++
		if calls < 3 {
			return nil, apperrors.Wrap(apperrors.ErrBackendUnreachable, nil)
		}
		return okResponse(reportBody), nil
	}}
	recorder := notify.NewRecorder()
	svc, slept := newReportsService(doer, recorder)

	_, err := svc.Fetch(context.Background(), "2026-07-01", "2026-07-31")
	testutil.AssertNoError(t, err)

	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}

	// Exponential backoff: 1s then 2s.
	expected := []time.Duration{time.Second, 2 * time.Second}
	if len(*slept) != len(expected) {
		t.Fatalf("expected %d sleeps, got %v", len(expected), *slept)
	}
	for i, d := range expected {
		if (*slept)[i] != d {
			t.Errorf("sleep %d: expected %v, got %v", i, d, (*slept)[i])
		}
	}

	events := recorder.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 retry notifications, got %+v", events)
	}
	if events[0].Message != "Connection issue detected. Retrying... (1/2)" {
		t.Errorf("unexpected retry notification: %q", events[0].Message)
	}
}

func TestFetchStopsAfterRetryBudget(t *testing.T) {
	calls := 0
	doer := &fakeDoer{handler: func(req gateway.Request) (*gateway.Response, error) {
		calls++
		return nil, apperrors.WithStatus(apperrors.ErrServerFault, "upstream exploded", 502)
	}}
	svc, _ := newReportsService(doer, notify.NewRecorder())

	_, err := svc.Fetch(context.Background(), "2026-07-01", "2026-07-31")
	testutil.AssertKind(t, err, apperrors.KindServerFault)

	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestFetchDoesNotRetryValidationErrors(t *testing.T) {
	calls := 0
	doer := &fakeDoer{handler: func(req gateway.Request) (*gateway.Response, error) {
		calls++
		return nil, apperrors.WithStatus(apperrors.ErrValidation, "bad range", 400)
	}}
	svc, slept := newReportsService(doer, notify.NewRecorder())

	_, err := svc.Fetch(context.Background(), "2026-07-01", "2026-07-31")
	testutil.AssertKind(t, err, apperrors.KindValidationRejected)

	if calls != 1 || len(*slept) != 0 {
		t.Errorf("expected a single attempt without backoff, got %d attempts, sleeps %v", calls, *slept)
	}
}

func TestFetchRejectsBadDates(t *testing.T) {
	doer := &fakeDoer{handler: func(req gateway.Request) (*gateway.Response, error) {
		t.Fatal("no request expected for invalid dates")
		return nil, nil
	}}
	svc, _ := newReportsService(doer, notify.NewRecorder())

	if _, err := svc.Fetch(context.Background(), "07/01/2026", "2026-07-31"); err == nil {
		t.Error("expected error for malformed start date")
	}
	if _, err := svc.Fetch(context.Background(), "2026-07-31", "2026-07-01"); !apperrors.IsKind(err, apperrors.KindConfigurationInvalid) {
		t.Errorf("expected configuration error for inverted range, got %v", err)
	}
}
