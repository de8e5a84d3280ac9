package api

import (
	"net/http"

	"github.com/2beens/groove/internal/groove"
	"github.com/2beens/groove/internal/telemetry/tracing"
	"github.com/2beens/groove/pkg"
)

type AddWalkSecondsRequest struct {
	Seconds int `json:"seconds"`
}

type WalkNotesRequest struct {
	Notes string `json:"notes"`
}

type WalkTimerResponse struct {
	Running bool `json:"running"`
	// Seconds persisted by the stop call
	Seconds int `json:"seconds"`
}

func (handler *Handler) HandleAddWalkSeconds(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.walks.add")
	defer span.End()

	var req AddWalkSecondsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, "add walk seconds", err)
		return
	}

	walk, err := handler.service.AddWalkSeconds(ctx, req.Seconds)
	if err != nil {
		writeError(w, "add walk seconds", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, walk)
}

func (handler *Handler) HandleSetWalkNotes(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.walks.notes")
	defer span.End()

	var req WalkNotesRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, "set walk notes", err)
		return
	}

	walk, err := handler.service.SetWalkNotes(ctx, req.Notes)
	if err != nil {
		writeError(w, "set walk notes", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, walk)
}

func (handler *Handler) HandleWalkStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.walks.stats")
	defer span.End()

	walkRange, err := groove.ParseWalkRange(r.URL.Query().Get("range"))
	if err != nil {
		writeError(w, "walk stats", err)
		return
	}

	report, err := handler.service.WalkStats(ctx, walkRange)
	if err != nil {
		writeError(w, "walk stats", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, report)
}

func (handler *Handler) HandleStartWalkTimer(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.walks.timer.start")
	defer span.End()

	if !handler.service.StartWalkTimer(ctx) {
		http.Error(w, "error, walk timer already running", http.StatusConflict)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, WalkTimerResponse{Running: true})
}

func (handler *Handler) HandleStopWalkTimer(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.walks.timer.stop")
	defer span.End()

	seconds, err := handler.service.StopWalkTimer(ctx)
	if err != nil {
		writeError(w, "stop walk timer", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, WalkTimerResponse{Seconds: seconds})
}
