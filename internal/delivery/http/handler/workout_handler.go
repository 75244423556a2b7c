package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wellgym/wellgym-backend/internal/domain"
	"github.com/wellgym/wellgym-backend/internal/usecase/workout"
)

const defaultRangeDays = 30

type WorkoutHandler struct {
	workoutUseCase *workout.UseCase
}

func NewWorkoutHandler(workoutUseCase *workout.UseCase) *WorkoutHandler {
	return &WorkoutHandler{workoutUseCase: workoutUseCase}
}

type saveSetResponse struct {
	Status  domain.SaveStatus `json:"status"`
	Workout *domain.Workout   `json:"workout"`
}

// SaveSet handles POST /workouts. Degraded persistence (optional columns
// dropped) is still a 201, distinguished by the status field.
func (h *WorkoutHandler) SaveSet(c *gin.Context) {
	var req workout.SaveSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	w, status, err := h.workoutUseCase.SaveSet(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saveSetResponse{Status: status, Workout: w})
}

// History handles GET /workouts?days=N.
func (h *WorkoutHandler) History(c *gin.Context) {
	workouts, err := h.workoutUseCase.History(c.Request.Context(), rangeDays(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// Progress handles GET /progress?days=N.
func (h *WorkoutHandler) Progress(c *gin.Context) {
	progress, err := h.workoutUseCase.GetProgress(c.Request.Context(), rangeDays(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// ExportCSV handles GET /progress/export: the raw records for the range as a
// downloadable CSV.
func (h *WorkoutHandler) ExportCSV(c *gin.Context) {
	days := rangeDays(c)
	workouts, err := h.workoutUseCase.History(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="progress_%dd.csv"`, days))

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"performed_at", "exercise", "duration_sec", "reps", "calories", "weight_used"})
	for _, rec := range workouts {
		_ = w.Write([]string{
			rec.PerformedAt.Format(time.RFC3339),
			rec.Exercise,
			strconv.Itoa(rec.Duration),
			strconv.Itoa(rec.Reps),
			formatNullable(rec.Calories),
			formatNullable(rec.WeightUsed),
		})
	}
	w.Flush()
}

func rangeDays(c *gin.Context) int {
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(defaultRangeDays)))
	if err != nil || days <= 0 {
		return defaultRangeDays
	}
	return days
}

func formatNullable(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
