package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/groove/internal/telemetry/tracing"
	"github.com/2beens/groove/pkg"

	"github.com/gorilla/mux"
)

type RefreshResponse struct {
	Refreshed bool `json:"refreshed"`
}

func (handler *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.today.get")
	defer span.End()

	pkg.WriteJSON(w, http.StatusOK, handler.service.TodaySchedule(ctx))
}

func (handler *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.today.refresh")
	defer span.End()

	refreshed, err := handler.service.DailyRefresh(ctx)
	if err != nil {
		writeError(w, "daily refresh", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, RefreshResponse{Refreshed: refreshed})
}

func (handler *Handler) HandleReschedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.today.reschedule")
	defer span.End()

	if _, err := handler.service.Reschedule(ctx); err != nil {
		writeError(w, "reschedule", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, handler.service.TodaySchedule(ctx))
}

func (handler *Handler) HandleShuffle(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.today.shuffle")
	defer span.End()

	if _, err := handler.service.Shuffle(ctx); err != nil {
		writeError(w, "shuffle", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, handler.service.TodaySchedule(ctx))
}

// HandleSnooze takes an optional ?minutes= param, the configured snooze duration otherwise.
func (handler *Handler) HandleSnooze(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.today.snooze")
	defer span.End()

	notificationID, err := strconv.Atoi(mux.Vars(r)["notificationId"])
	if err != nil {
		http.Error(w, "error, notification id NaN", http.StatusBadRequest)
		return
	}

	var d time.Duration
	if minutesStr := r.URL.Query().Get("minutes"); minutesStr != "" {
		minutes, err := strconv.Atoi(minutesStr)
		if err != nil || minutes <= 0 {
			http.Error(w, fmt.Sprintf("error, invalid minutes [%s]", minutesStr), http.StatusBadRequest)
			return
		}
		d = time.Duration(minutes) * time.Minute
	}

	snoozed, err := handler.service.Snooze(ctx, notificationID, d)
	if err != nil {
		writeError(w, "snooze", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, snoozed)
}
