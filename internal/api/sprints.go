package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/groove/internal/telemetry/tracing"
	"github.com/2beens/groove/pkg"

	"github.com/gorilla/mux"
)

func (handler *Handler) HandleSprints(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sprints.list")
	defer span.End()

	pkg.WriteJSON(w, http.StatusOK, handler.service.Sprints(ctx))
}

func (handler *Handler) HandleSprintStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sprints.stats")
	defer span.End()

	pkg.WriteJSON(w, http.StatusOK, handler.service.SprintStats(ctx))
}

func (handler *Handler) HandleCompleteTodaysSprint(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sprints.complete")
	defer span.End()

	session, err := handler.service.CompleteTodaysSprint(ctx)
	if err != nil {
		writeError(w, "complete sprint", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, session)
}

func (handler *Handler) HandleUncompleteSprint(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sprints.uncomplete")
	defer span.End()

	date, err := handler.parseDate(mux.Vars(r)["date"])
	if err != nil {
		writeError(w, "uncomplete sprint", err)
		return
	}

	session, err := handler.service.UncompleteSprint(ctx, date)
	if err != nil {
		writeError(w, "uncomplete sprint", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, session)
}

// HandleRescheduleSprint moves the session at {date} to the ?to= date.
func (handler *Handler) HandleRescheduleSprint(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sprints.reschedule")
	defer span.End()

	from, err := handler.parseDate(mux.Vars(r)["date"])
	if err != nil {
		writeError(w, "reschedule sprint", err)
		return
	}
	to, err := handler.parseDate(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, "reschedule sprint", err)
		return
	}

	session, err := handler.service.RescheduleSprint(ctx, from, to)
	if err != nil {
		writeError(w, "reschedule sprint", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, session)
}

func (handler *Handler) parseDate(s string) (time.Time, error) {
	date, err := pkg.ParseDate(s, handler.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return date, nil
}
