package calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dentio/dentio/internal/platform/auth"
	"github.com/dentio/dentio/internal/schedule"
	"github.com/dentio/dentio/pkg/pagination"
)

const dateLayout = "2006-01-02"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Read endpoints – admin, doctor, assistant
	readGroup := api.Group("", auth.RequireRole("admin", "doctor", "assistant"))
	readGroup.GET("/activities", h.ListActivities)
	readGroup.GET("/activities/:id", h.GetActivity)
	readGroup.GET("/calendar/day", h.DayView)
	readGroup.GET("/calendar/week", h.WeekView)
	readGroup.GET("/calendar/month", h.MonthView)

	// Write endpoints – admin, doctor, assistant
	writeGroup := api.Group("", auth.RequireRole("admin", "doctor", "assistant"))
	writeGroup.POST("/activities", h.CreateActivity)
	writeGroup.PUT("/activities/:id", h.UpdateActivity)
	writeGroup.DELETE("/activities/:id", h.DeleteActivity)
	writeGroup.POST("/activities/:id/status", h.ChangeStatus)
}

// conflictResponse is returned with 409 when a create or update collides
// with an existing activity or the past-date rule.
type conflictResponse struct {
	Conflict *schedule.Conflict `json:"conflict"`
}

// serviceError maps service failures onto HTTP status codes: bad input is
// the caller's fault, a missing row is 404, anything else is a storage or
// infrastructure failure.
func serviceError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "activity not found")
	case errors.Is(err, ErrInvalid):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) CreateActivity(c echo.Context) error {
	var a Activity
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	conflict, err := h.svc.CreateActivity(c.Request().Context(), &a)
	if err != nil {
		return serviceError(err)
	}
	if conflict != nil {
		return c.JSON(http.StatusConflict, conflictResponse{Conflict: conflict})
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetActivity(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetActivity(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListActivities(c echo.Context) error {
	pg := pagination.FromContext(c)

	if practitionerID := c.QueryParam("practitioner_id"); practitionerID != "" {
		pid, err := uuid.Parse(practitionerID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid practitioner_id")
		}
		acts, total, err := h.svc.ListByPractitioner(c.Request().Context(), pid, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(acts, total, pg.Limit, pg.Offset))
	}

	if patientID := c.QueryParam("patient_id"); patientID != "" {
		pid, err := uuid.Parse(patientID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		acts, total, err := h.svc.ListByPatient(c.Request().Context(), pid, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(acts, total, pg.Limit, pg.Offset))
	}

	return echo.NewHTTPError(http.StatusBadRequest, "practitioner_id or patient_id is required")
}

func (h *Handler) UpdateActivity(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var a Activity
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a.ID = id
	conflict, err := h.svc.UpdateActivity(c.Request().Context(), &a)
	if err != nil {
		return serviceError(err)
	}
	if conflict != nil {
		return c.JSON(http.StatusConflict, conflictResponse{Conflict: conflict})
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteActivity(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteActivity(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ChangeStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.ChangeStatus(c.Request().Context(), id, schedule.Status(body.Status))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) DayView(c echo.Context) error {
	date, err := time.ParseInLocation(dateLayout, c.QueryParam("date"), time.Local)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	f, err := filterFromQuery(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	view, err := h.svc.DayView(c.Request().Context(), date, f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) WeekView(c echo.Context) error {
	start, err := time.ParseInLocation(dateLayout, c.QueryParam("start"), time.Local)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
	}
	f, err := filterFromQuery(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	views, err := h.svc.WeekView(c.Request().Context(), start, f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, views)
}

func (h *Handler) MonthView(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil || year < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil || month < 1 || month > 12 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid month, expected 1-12")
	}
	f, err := filterFromQuery(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cells, err := h.svc.MonthView(c.Request().Context(), year, time.Month(month), f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, cells)
}

// filterFromQuery builds the visibility filter from repeated practitioner_id
// params and the include_events flag (defaults to true).
func filterFromQuery(c echo.Context) (schedule.Filter, error) {
	var f schedule.Filter
	ids := c.QueryParams()["practitioner_id"]
	if len(ids) > 0 {
		f.Practitioners = make(map[uuid.UUID]bool, len(ids))
		for _, raw := range ids {
			id, err := uuid.Parse(raw)
			if err != nil {
				return f, echo.NewHTTPError(http.StatusBadRequest, "invalid practitioner_id")
			}
			f.Practitioners[id] = true
		}
	}
	if v := c.QueryParam("include_events"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid include_events")
		}
		f.HideEvents = !include
	}
	return f, nil
}
