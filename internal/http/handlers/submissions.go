package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/submissions-dashboard/internal/dashboard"
	"github.com/wolfman30/submissions-dashboard/internal/export"
	"github.com/wolfman30/submissions-dashboard/internal/observability/metrics"
	"github.com/wolfman30/submissions-dashboard/internal/submissions"
	"github.com/wolfman30/submissions-dashboard/pkg/logging"
)

var exportTracer = otel.Tracer("submissions.internal.http.export")

// InvalidPhoneMessage is shown when a contact number cannot be turned into a link.
const InvalidPhoneMessage = "Invalid phone number format. Please check the contact number."

// NoDataMessage is shown when an export is requested before any records exist.
const NoDataMessage = "No data available to export"

type dashboardService interface {
	Snapshot() dashboard.Snapshot
	Refresh(ctx context.Context) (dashboard.Snapshot, error)
}

type exportArchiver interface {
	Archive(ctx context.Context, f export.File, at time.Time) (string, error)
}

// SubmissionsHandler serves the admin dashboard API.
type SubmissionsHandler struct {
	svc      dashboardService
	links    dashboard.LinkBuilder
	archiver exportArchiver
	metrics  *metrics.DashboardMetrics
	logger   *logging.Logger
	now      func() time.Time
}

// NewSubmissionsHandler wires the handler. archiver and m may be nil.
func NewSubmissionsHandler(svc dashboardService, links dashboard.LinkBuilder, archiver exportArchiver, m *metrics.DashboardMetrics, logger *logging.Logger) *SubmissionsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &SubmissionsHandler{
		svc:      svc,
		links:    links,
		archiver: archiver,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// SubmissionsResponse is the table payload.
type SubmissionsResponse struct {
	Status         dashboard.StatusKind `json:"status"`
	Message        string               `json:"message"`
	Records        []dashboard.Row      `json:"records"`
	Count          int                  `json:"count"`
	Stats          submissions.Stats    `json:"stats"`
	UpdatedAt      *time.Time           `json:"updated_at,omitempty"`
	DataAgeSeconds *int64               `json:"data_age_seconds,omitempty"`
}

func (h *SubmissionsHandler) response(snap dashboard.Snapshot) SubmissionsResponse {
	resp := SubmissionsResponse{
		Status:  snap.Status.Kind,
		Message: snap.Status.Message,
		Records: dashboard.BuildRows(snap.Records, h.links),
		Count:   len(snap.Records),
		Stats:   snap.Stats,
	}
	if age, ok := snap.DataAge(h.now()); ok {
		updated := snap.UpdatedAt
		resp.UpdatedAt = &updated
		resp.DataAgeSeconds = &age
	}
	return resp
}

// ListSubmissions handles GET /admin/submissions.
func (h *SubmissionsHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.response(h.svc.Snapshot()))
}

// Refresh handles POST /admin/submissions/refresh. A failed fetch answers 502
// with the same payload so the status line can still be rendered.
func (h *SubmissionsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Refresh(r.Context())
	status := http.StatusOK
	if err != nil {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, h.response(snap))
}

// WhatsAppLink handles GET /admin/whatsapp-link?phone=&name=.
func (h *SubmissionsHandler) WhatsAppLink(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	link, ok := h.links.BuildLink(q.Get("phone"), q.Get("name"))
	h.metrics.ObserveLink(ok)
	if !ok {
		http.Error(w, InvalidPhoneMessage, http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"link": link})
}

// ExportCSV handles GET /admin/export/csv.
func (h *SubmissionsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.serveExport(w, r, export.FormatCSV, export.CSV)
}

// ExportPDF handles GET /admin/export/pdf.
func (h *SubmissionsHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.serveExport(w, r, export.FormatPDF, export.PDF)
}

func (h *SubmissionsHandler) serveExport(w http.ResponseWriter, r *http.Request, format export.Format, render func([]submissions.Submission, time.Time) (export.File, error)) {
	ctx, span := exportTracer.Start(r.Context(), "export."+string(format))
	defer span.End()

	snap := h.svc.Snapshot()
	span.SetAttributes(attribute.Int("submissions.records", len(snap.Records)))

	at := h.now()
	file, err := render(snap.Records, at)
	if errors.Is(err, export.ErrNoData) {
		h.metrics.ObserveExport(string(format), "empty")
		http.Error(w, NoDataMessage, http.StatusConflict)
		return
	}
	if err != nil {
		span.RecordError(err)
		h.metrics.ObserveExport(string(format), "error")
		h.logger.Error("export failed", "error", err, "format", format)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	if h.archiver != nil {
		if _, err := h.archiver.Archive(ctx, file, at); err != nil {
			h.logger.Warn("export archive failed", "error", err, "file", file.Name)
		}
	}

	h.metrics.ObserveExport(string(format), "ok")
	h.logger.Info("export generated", "format", format, "file", file.Name, "records", len(snap.Records))

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, strings.ReplaceAll(file.Name, `"`, "")))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}
