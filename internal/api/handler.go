package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/groove/internal/exercises"
	"github.com/2beens/groove/internal/groove"
	"github.com/2beens/groove/internal/schedule"
	"github.com/2beens/groove/internal/sprint"
	"github.com/2beens/groove/internal/store"
	"github.com/2beens/groove/internal/walk"
	"github.com/2beens/groove/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

var errBadRequest = errors.New("bad request")

type Handler struct {
	service *groove.Service
	// location the date path params are parsed in
	loc *time.Location
}

func NewHandler(service *groove.Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		service: service,
		loc:     loc,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/today", handler.HandleToday).Methods("GET")
	r.HandleFunc("/today/refresh", handler.HandleRefresh).Methods("POST")
	r.HandleFunc("/today/reschedule", handler.HandleReschedule).Methods("POST")
	r.HandleFunc("/today/shuffle", handler.HandleShuffle).Methods("POST")
	r.HandleFunc("/today/snooze/{notificationId}", handler.HandleSnooze).Methods("POST")

	r.HandleFunc("/exercises", handler.HandleListExercises).Methods("GET")
	r.HandleFunc("/exercises", handler.HandleAddExercise).Methods("POST")
	r.HandleFunc("/exercises/{id}", handler.HandleGetExercise).Methods("GET")
	r.HandleFunc("/exercises/{id}", handler.HandleRemoveExercise).Methods("DELETE")
	r.HandleFunc("/exercises/{id}/enabled", handler.HandleSetEnabled).Methods("PUT")
	r.HandleFunc("/exercises/{id}/reps", handler.HandleAdjustReps).Methods("PUT")
	r.HandleFunc("/exercises/{id}/reset", handler.HandleResetExercise).Methods("POST")
	r.HandleFunc("/exercises/{id}/complete", handler.HandleCompleteSession).Methods("POST")
	r.HandleFunc("/exercises/{id}/performed", handler.HandleMarkAsPerformed).Methods("POST")

	r.HandleFunc("/settings", handler.HandleGetSettings).Methods("GET")
	r.HandleFunc("/settings", handler.HandleUpdateSettings).Methods("PUT")
	r.HandleFunc("/settings/onboarding", handler.HandleCompleteOnboarding).Methods("POST")

	r.HandleFunc("/walks/today", handler.HandleAddWalkSeconds).Methods("POST")
	r.HandleFunc("/walks/today/notes", handler.HandleSetWalkNotes).Methods("PUT")
	r.HandleFunc("/walks/stats", handler.HandleWalkStats).Methods("GET")
	r.HandleFunc("/walks/timer/start", handler.HandleStartWalkTimer).Methods("POST")
	r.HandleFunc("/walks/timer/stop", handler.HandleStopWalkTimer).Methods("POST")

	r.HandleFunc("/sprints", handler.HandleSprints).Methods("GET")
	r.HandleFunc("/sprints/stats", handler.HandleSprintStats).Methods("GET")
	r.HandleFunc("/sprints/today/complete", handler.HandleCompleteTodaysSprint).Methods("POST")
	r.HandleFunc("/sprints/{date}/uncomplete", handler.HandleUncompleteSprint).Methods("POST")
	r.HandleFunc("/sprints/{date}/reschedule", handler.HandleRescheduleSprint).Methods("POST")
}

// decodeBody reads a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, pkg.ContentType.JSON) {
		return fmt.Errorf("%w: invalid content type [%s]", errBadRequest, ct)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %w", errBadRequest, err)
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, exercises.ErrExerciseNotFound),
		errors.Is(err, schedule.ErrScheduledNotFound),
		errors.Is(err, sprint.ErrNoSprintToday),
		errors.Is(err, sprint.ErrSessionNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, exercises.ErrInvalidExercise),
		errors.Is(err, groove.ErrInvalidWalkRange),
		errors.Is(err, walk.ErrNegativeSeconds),
		errors.Is(err, sprint.ErrOtherMonth):
		return http.StatusBadRequest
	case errors.Is(err, exercises.ErrDuplicateID),
		errors.Is(err, sprint.ErrAlreadyCompleted),
		errors.Is(err, sprint.ErrDateTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status code. Only server side failures are logged as errors.
func writeError(w http.ResponseWriter, operation string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Errorf("%s: %s", operation, err)
		pkg.WriteResponse(w, pkg.ContentType.Text, fmt.Sprintf("error, %s failed", operation), status)
		return
	}
	log.Debugf("%s: %s", operation, err)
	pkg.WriteResponse(w, pkg.ContentType.Text, err.Error(), status)
}
