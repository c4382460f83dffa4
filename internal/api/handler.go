package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"unit-convert-service/internal/convert"
	"unit-convert-service/internal/metrics"
)

// ConvertRequest is the body of POST /api/v1/convert.
type ConvertRequest struct {
	From     convert.Unit `json:"from"`
	To       convert.Unit `json:"to"`
	Quantity float64      `json:"quantity"`
}

// ConvertResponse carries the rounded conversion result.
type ConvertResponse struct {
	Result float64 `json:"result"`
}

// UnitInfo describes one supported unit in GET /api/v1/units.
type UnitInfo struct {
	Code   string `json:"code"`
	Metric bool   `json:"metric"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the conversion API on top of a completed table.
type Handler struct {
	table   *convert.Table
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHandler(table *convert.Table, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		table:   table,
		logger:  logger,
		metrics: m,
	}
}

// Convert handles POST /api/v1/convert.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var unknown *convert.UnknownUnitError
		if errors.As(err, &unknown) {
			h.metrics.ConversionErrors.WithLabelValues("unknown_unit").Inc()
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: unknown.Error()})
			return
		}

		h.metrics.ConversionErrors.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.From == "" || req.To == "" {
		h.metrics.ConversionErrors.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "both from and to units are required"})
		return
	}

	result := h.table.Convert(req.From, req.To, req.Quantity)

	h.metrics.ConversionsTotal.WithLabelValues(req.From.String(), req.To.String()).Inc()
	h.logger.Debug("conversion executed",
		"from", req.From.String(),
		"to", req.To.String(),
		"quantity", req.Quantity,
		"result", result,
	)

	writeJSON(w, http.StatusOK, ConvertResponse{Result: result})
}

// Units handles GET /api/v1/units.
func (h *Handler) Units(w http.ResponseWriter, _ *http.Request) {
	units := convert.Units()
	infos := make([]UnitInfo, 0, len(units))
	for _, unit := range units {
		infos = append(infos, UnitInfo{Code: unit.String(), Metric: unit.Metric()})
	}

	writeJSON(w, http.StatusOK, map[string][]UnitInfo{"units": infos})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
