package api

import (
	"net/http"

	"github.com/2beens/groove/internal/settings"
	"github.com/2beens/groove/internal/telemetry/tracing"
	"github.com/2beens/groove/pkg"
)

func (handler *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.get")
	defer span.End()

	pkg.WriteJSON(w, http.StatusOK, handler.service.Settings(ctx))
}

// HandleUpdateSettings stores the posted settings. Missing fields take their defaults.
func (handler *Handler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.update")
	defer span.End()

	var updated settings.AppSettings
	if err := decodeBody(r, &updated); err != nil {
		writeError(w, "update settings", err)
		return
	}

	stored, err := handler.service.UpdateSettings(ctx, updated)
	if err != nil {
		writeError(w, "update settings", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, stored)
}

func (handler *Handler) HandleCompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.onboarding")
	defer span.End()

	stored, err := handler.service.CompleteOnboarding(ctx)
	if err != nil {
		writeError(w, "complete onboarding", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, stored)
}
