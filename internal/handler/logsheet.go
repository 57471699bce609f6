package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapitypes "github.com/oapi-codegen/runtime/types"

	"github.com/pmillerd/hauliq/internal/domain"
	"github.com/pmillerd/hauliq/internal/middleware"
	"github.com/pmillerd/hauliq/internal/service"
)

// logSheetResponse is the wire form of a log sheet. Date is rendered as a
// plain calendar date ("2025-07-14"), not an RFC 3339 timestamp.
type logSheetResponse struct {
	ID            uuid.UUID         `json:"id"`
	TripID        uuid.UUID         `json:"trip_id"`
	UserID        uuid.UUID         `json:"user_id"`
	Date          openapitypes.Date `json:"date"`
	Status        domain.LogStatus  `json:"status"`
	VehicleNumber string            `json:"vehicle_number,omitempty"`
	TrailerNumber string            `json:"trailer_number,omitempty"`
	VisualData    json.RawMessage   `json:"visual_log_data,omitempty"`
	CertifiedBy   *uuid.UUID        `json:"certified_by,omitempty"`
	CertifiedAt   *time.Time        `json:"certified_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func toLogSheetResponse(s domain.LogSheet) logSheetResponse {
	return logSheetResponse{
		ID:            s.ID,
		TripID:        s.TripID,
		UserID:        s.UserID,
		Date:          openapitypes.Date{Time: s.Date},
		Status:        s.Status,
		VehicleNumber: s.VehicleNumber,
		TrailerNumber: s.TrailerNumber,
		VisualData:    s.VisualData,
		CertifiedBy:   s.CertifiedBy,
		CertifiedAt:   s.CertifiedAt,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func toLogSheetResponses(sheets []domain.LogSheet) []logSheetResponse {
	out := make([]logSheetResponse, len(sheets))
	for i, s := range sheets {
		out[i] = toLogSheetResponse(s)
	}
	return out
}

// generateRequest is the body of POST /api/logs/generate.
type generateRequest struct {
	TripID        uuid.UUID          `json:"trip_id"`
	StartDate     *openapitypes.Date `json:"start_date,omitempty"`
	VehicleNumber string             `json:"vehicle_number,omitempty"`
	TrailerNumber string             `json:"trailer_number,omitempty"`
}

// GenerateLogs handles POST /api/logs/generate.
func (s *Server) GenerateLogs(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeBody(r, &req); err != nil {
		requestError(w, err.Error())
		return
	}
	if req.TripID == uuid.Nil {
		requestError(w, "trip_id is required")
		return
	}

	in := service.GenerateInput{
		UserID:        middleware.UserIDFrom(r.Context()),
		TripID:        req.TripID,
		VehicleNumber: req.VehicleNumber,
		TrailerNumber: req.TrailerNumber,
	}
	if req.StartDate != nil {
		in.StartDate = req.StartDate.Time
	}

	result, err := s.logs.Generate(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"log_sheets": toLogSheetResponses(result.Sheets),
		"created":    result.Created,
	})
}

// ListLogs handles GET /api/logs. An optional trip_id query parameter
// narrows the listing to one trip.
func (s *Server) ListLogs(w http.ResponseWriter, r *http.Request) {
	var tripID *uuid.UUID
	if raw := r.URL.Query().Get("trip_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			requestError(w, "invalid trip_id")
			return
		}
		tripID = &id
	}

	sheets, err := s.logs.List(r.Context(), middleware.UserIDFrom(r.Context()), tripID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"log_sheets": toLogSheetResponses(sheets)})
}

// GetLog handles GET /api/logs/{sheetID}.
func (s *Server) GetLog(w http.ResponseWriter, r *http.Request) {
	sheetID, err := pathUUID(r, "sheetID")
	if err != nil {
		requestError(w, "invalid log sheet id")
		return
	}

	detail, err := s.logs.Get(r.Context(), sheetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"log_sheet":           toLogSheetResponse(detail.Sheet),
		"duty_status_changes": detail.Changes,
	})
}

// CertifyLog handles POST /api/logs/{sheetID}/certify.
func (s *Server) CertifyLog(w http.ResponseWriter, r *http.Request) {
	sheetID, err := pathUUID(r, "sheetID")
	if err != nil {
		requestError(w, "invalid log sheet id")
		return
	}

	sheet, err := s.logs.Certify(r.Context(), middleware.UserIDFrom(r.Context()), sheetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLogSheetResponse(sheet))
}

// visualRequest is the body of PUT /api/logs/{sheetID}/visual.
type visualRequest struct {
	VisualLogData json.RawMessage `json:"visual_log_data"`
}

// UpdateLogVisual handles PUT /api/logs/{sheetID}/visual.
func (s *Server) UpdateLogVisual(w http.ResponseWriter, r *http.Request) {
	sheetID, err := pathUUID(r, "sheetID")
	if err != nil {
		requestError(w, "invalid log sheet id")
		return
	}

	var req visualRequest
	if err := decodeBody(r, &req); err != nil {
		requestError(w, err.Error())
		return
	}

	sheet, err := s.logs.UpdateVisualData(r.Context(), sheetID, req.VisualLogData)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLogSheetResponse(sheet))
}

// GetLogGrid handles GET /api/logs/{sheetID}/grid.
func (s *Server) GetLogGrid(w http.ResponseWriter, r *http.Request) {
	sheetID, err := pathUUID(r, "sheetID")
	if err != nil {
		requestError(w, "invalid log sheet id")
		return
	}

	grid, err := s.logs.Grid(r.Context(), sheetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

// GetLogPDF handles GET /api/logs/{sheetID}/pdf.
func (s *Server) GetLogPDF(w http.ResponseWriter, r *http.Request) {
	sheetID, err := pathUUID(r, "sheetID")
	if err != nil {
		requestError(w, "invalid log sheet id")
		return
	}

	pdf, err := s.logs.RenderPDF(r.Context(), sheetID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "daily-log-"+sheetID.String()+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
