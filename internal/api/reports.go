package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/gateway"
	"spendtrack/internal/notify"
)

// CategoryTotal is an aggregate of spending within one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// MonthTotal is an aggregate of spending within one calendar month.
type MonthTotal struct {
	Month string  `json:"month"` // YYYY-MM
	Total float64 `json:"total"`
}

// BudgetComparison pairs budgeted against actual spending for a category.
type BudgetComparison struct {
	Category string  `json:"category"`
	Budgeted float64 `json:"budgeted"`
	Spent    float64 `json:"spent"`
}

// Report is the aggregate view returned by the backend for a date range.
type Report struct {
	TotalExpenses      float64            `json:"totalExpenses"`
	ExpensesByCategory []CategoryTotal    `json:"expensesByCategory"`
	ExpensesByMonth    []MonthTotal       `json:"expensesByMonth"`
	BudgetComparison   []BudgetComparison `json:"budgetComparison"`
}

// reportRetries is the number of extra attempts made for network and server
// faults. This is a caller-level policy layered atop the gateway, not a
// gateway guarantee.
const reportRetries = 2

// ReportsService wraps the /reports resource with its own bounded
// exponential-backoff retry.
type ReportsService struct {
	gw       Doer
	notifier notify.Notifier

	// sleep is replaceable in tests.
	sleep func(time.Duration)
}

// NewReportsService creates a ReportsService.
func NewReportsService(gw Doer, notifier notify.Notifier) *ReportsService {
	return &ReportsService{gw: gw, notifier: notifier, sleep: time.Sleep}
}

// Fetch retrieves the aggregate report for [start, end]. Dates use the
// YYYY-MM-DD form. Network and server faults are retried up to two more
// times with exponential backoff; all other errors surface immediately.
func (s *ReportsService) Fetch(ctx context.Context, start, end string) (*Report, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid start date format")
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid end date format")
	}
	if endDate.Before(startDate) {
		return nil, apperrors.ErrInvalidDateRange
	}

	query := url.Values{}
	query.Set("startDate", start)
	query.Set("endDate", end)

	var lastErr error
	for attempt := 0; attempt <= reportRetries; attempt++ {
		if attempt > 0 {
			s.notifier.Info(fmt.Sprintf("Connection issue detected. Retrying... (%d/%d)", attempt, reportRetries))
			s.sleep(time.Second << (attempt - 1))
		}

		resp, err := s.gw.Do(ctx, gateway.Request{
			Method: http.MethodGet,
			Path:   "/reports",
			Query:  query,
		})
		if err != nil {
			kind := apperrors.KindOf(err)
			if kind == apperrors.KindNetworkUnavailable || kind == apperrors.KindServerFault {
				lastErr = err
				continue
			}
			return nil, err
		}

		var report Report
		if err := decodeData(resp, &report); err != nil {
			return nil, err
		}
		return &report, nil
	}
	return nil, lastErr
}
