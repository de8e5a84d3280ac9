package api

import (
	"fmt"
	"net/http"

	"github.com/2beens/groove/internal/exercises"
	"github.com/2beens/groove/internal/progression"
	"github.com/2beens/groove/internal/telemetry/tracing"
	"github.com/2beens/groove/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ExercisesListResponse struct {
	Exercises []exercises.Exercise `json:"exercises"`
	Total     int                  `json:"total"`
}

type SetEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

type AdjustRepsRequest struct {
	Reps int `json:"reps"`
}

type CompleteSessionRequest struct {
	ActualReps int  `json:"actualReps"`
	WasEasy    bool `json:"wasEasy"`
}

type CompleteSessionResponse struct {
	Exercise exercises.Exercise `json:"exercise"`
	Result   progression.Result `json:"result"`
}

type DeleteExerciseResponse struct {
	DeletedID string `json:"deletedId"`
}

func (handler *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	var exType exercises.Type
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		exType = exercises.Type(typeStr)
		if !exType.IsValid() {
			http.Error(w, fmt.Sprintf("error, unknown exercise type [%s]", typeStr), http.StatusBadRequest)
			return
		}
	}

	list, err := handler.service.Exercises(ctx, exType)
	if err != nil {
		writeError(w, "list exercises", err)
		return
	}
	if list == nil {
		list = []exercises.Exercise{}
	}
	pkg.WriteJSON(w, http.StatusOK, ExercisesListResponse{
		Exercises: list,
		Total:     len(list),
	})
}

func (handler *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.add")
	defer span.End()

	var ex exercises.Exercise
	if err := decodeBody(r, &ex); err != nil {
		writeError(w, "add exercise", err)
		return
	}

	added, err := handler.service.AddExercise(ctx, ex)
	if err != nil {
		writeError(w, "add exercise", err)
		return
	}

	log.Debugf("new exercise added: [%s] [%s]", added.ID, added.Name)
	pkg.WriteJSON(w, http.StatusCreated, added)
}

func (handler *Handler) HandleGetExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.get")
	defer span.End()

	ex, err := handler.service.Exercise(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "get exercise", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, ex)
}

func (handler *Handler) HandleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if err := handler.service.RemoveExercise(ctx, id); err != nil {
		writeError(w, "remove exercise", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, DeleteExerciseResponse{DeletedID: id})
}

func (handler *Handler) HandleSetEnabled(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.enabled")
	defer span.End()

	var req SetEnabledRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, "set exercise enabled", err)
		return
	}

	ex, err := handler.service.SetExerciseEnabled(ctx, mux.Vars(r)["id"], req.Enabled)
	if err != nil {
		writeError(w, "set exercise enabled", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, ex)
}

func (handler *Handler) HandleAdjustReps(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.reps")
	defer span.End()

	var req AdjustRepsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, "adjust reps", err)
		return
	}

	ex, err := handler.service.AdjustReps(ctx, mux.Vars(r)["id"], req.Reps)
	if err != nil {
		writeError(w, "adjust reps", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, ex)
}

func (handler *Handler) HandleResetExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.reset")
	defer span.End()

	ex, err := handler.service.ResetExercise(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "reset exercise", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, ex)
}

func (handler *Handler) HandleCompleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.complete")
	defer span.End()

	var req CompleteSessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, "complete session", err)
		return
	}

	ex, result, err := handler.service.CompleteSession(ctx, mux.Vars(r)["id"], req.ActualReps, req.WasEasy)
	if err != nil {
		writeError(w, "complete session", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, CompleteSessionResponse{
		Exercise: ex,
		Result:   result,
	})
}

func (handler *Handler) HandleMarkAsPerformed(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.performed")
	defer span.End()

	ex, err := handler.service.MarkAsPerformed(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "mark as performed", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, ex)
}
