package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/submissions-dashboard/internal/dashboard"
	"github.com/wolfman30/submissions-dashboard/internal/export"
	"github.com/wolfman30/submissions-dashboard/internal/observability/metrics"
	"github.com/wolfman30/submissions-dashboard/internal/submissions"
	"github.com/wolfman30/submissions-dashboard/internal/whatsapp"
	"github.com/wolfman30/submissions-dashboard/pkg/logging"
)

type stubDashboard struct {
	snap       dashboard.Snapshot
	refreshErr error
}

func (s *stubDashboard) Snapshot() dashboard.Snapshot { return s.snap }

func (s *stubDashboard) Refresh(ctx context.Context) (dashboard.Snapshot, error) {
	if s.refreshErr != nil {
		s.snap.Status = dashboard.Status{Kind: dashboard.StatusError, Message: submissions.Describe(s.refreshErr)}
	}
	return s.snap, s.refreshErr
}

type recordingArchiver struct {
	files []export.File
	err   error
}

func (a *recordingArchiver) Archive(ctx context.Context, f export.File, at time.Time) (string, error) {
	a.files = append(a.files, f)
	return "exports/" + f.Name, a.err
}

var handlerNow = time.Date(2024, 5, 2, 12, 0, 30, 0, time.UTC)

func newSubmissionsHandler(svc dashboardService, archiver exportArchiver) *SubmissionsHandler {
	m := metrics.NewDashboardMetrics(prometheus.NewRegistry())
	h := NewSubmissionsHandler(svc, whatsapp.Builder{}, archiver, m, logging.New("error"))
	h.now = func() time.Time { return handlerNow }
	return h
}

func loadedSnapshot() dashboard.Snapshot {
	return dashboard.Snapshot{
		Records: []submissions.Submission{
			{Timestamp: "2024-05-02 09:00:00", Name: "Alice", ContactNumber: "0771234567"},
			{Name: "Bob"},
		},
		Stats:     submissions.Stats{Total: 2, Today: 1},
		Status:    dashboard.Status{Kind: dashboard.StatusConnected, Message: "Connected - 2 records loaded"},
		UpdatedAt: handlerNow.Add(-30 * time.Second),
	}
}

func TestListSubmissions(t *testing.T) {
	h := newSubmissionsHandler(&stubDashboard{snap: loadedSnapshot()}, nil)
	rec := httptest.NewRecorder()
	h.ListSubmissions(rec, httptest.NewRequest(http.MethodGet, "/admin/submissions", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp SubmissionsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, dashboard.StatusConnected, resp.Status)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 1, resp.Stats.Today)
	require.NotNil(t, resp.DataAgeSeconds)
	assert.EqualValues(t, 30, *resp.DataAgeSeconds)
	assert.True(t, strings.HasPrefix(resp.Records[0].WhatsAppLink, "https://wa.me/94771234567?text="))
	assert.False(t, resp.Records[1].HasContact)
}

func TestListSubmissionsBeforeFirstFetch(t *testing.T) {
	h := newSubmissionsHandler(&stubDashboard{snap: dashboard.Snapshot{Status: dashboard.Status{Kind: dashboard.StatusLoading}}}, nil)
	rec := httptest.NewRecorder()
	h.ListSubmissions(rec, httptest.NewRequest(http.MethodGet, "/admin/submissions", nil))

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.NotContains(t, body, "data_age_seconds")
	assert.Equal(t, "loading", body["status"])
}

func TestRefreshFailureReturnsBadGateway(t *testing.T) {
	h := newSubmissionsHandler(&stubDashboard{snap: loadedSnapshot(), refreshErr: &submissions.HTTPError{StatusCode: 503}}, nil)
	rec := httptest.NewRecorder()
	h.Refresh(rec, httptest.NewRequest(http.MethodPost, "/admin/submissions/refresh", nil))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var resp SubmissionsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Server error: HTTP Error: 503", resp.Message)
	assert.Equal(t, 2, resp.Count)
}

func TestWhatsAppLink(t *testing.T) {
	h := newSubmissionsHandler(&stubDashboard{}, nil)

	q := url.Values{"phone": {"0771234567"}, "name": {"Alice"}}
	rec := httptest.NewRecorder()
	h.WhatsAppLink(rec, httptest.NewRequest(http.MethodGet, "/admin/whatsapp-link?"+q.Encode(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, strings.HasPrefix(body["link"], "https://wa.me/94771234567?text=Hello%20Alice!"))

	rec = httptest.NewRecorder()
	h.WhatsAppLink(rec, httptest.NewRequest(http.MethodGet, "/admin/whatsapp-link?phone=123&name=Bob", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), InvalidPhoneMessage)
}

func TestExportCSV(t *testing.T) {
	archiver := &recordingArchiver{}
	h := newSubmissionsHandler(&stubDashboard{snap: loadedSnapshot()}, archiver)
	rec := httptest.NewRecorder()
	h.ExportCSV(rec, httptest.NewRequest(http.MethodGet, "/admin/export/csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv;charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="submissions_1714651230000.csv"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Timestamp,Name,Email,Contact Number,Complete Address,Notes\n"))
	require.Len(t, archiver.files, 1)
}

func TestExportPDFArchiveFailureStillServes(t *testing.T) {
	archiver := &recordingArchiver{err: errors.New("s3 down")}
	h := newSubmissionsHandler(&stubDashboard{snap: loadedSnapshot()}, archiver)
	rec := httptest.NewRecorder()
	h.ExportPDF(rec, httptest.NewRequest(http.MethodGet, "/admin/export/pdf", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestExportEmpty(t *testing.T) {
	h := newSubmissionsHandler(&stubDashboard{}, nil)
	for _, serve := range []http.HandlerFunc{h.ExportCSV, h.ExportPDF} {
		rec := httptest.NewRecorder()
		serve(rec, httptest.NewRequest(http.MethodGet, "/admin/export", nil))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), NoDataMessage)
	}
}
