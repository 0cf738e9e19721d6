package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dshs-dev/studentlife/internal/model"
	"github.com/dshs-dev/studentlife/internal/repository"
)

// MealHandler serves the cafeteria menu. Reads sit behind the Redis
// response cache; writes are admin-only upserts.
type MealHandler struct {
	Meals *repository.MealRepo
}

func NewMealHandler(meals *repository.MealRepo) *MealHandler {
	if meals == nil {
		panic("nil repository passed to NewMealHandler")
	}
	return &MealHandler{Meals: meals}
}

type mealResp struct {
	Date      string  `json:"date"`
	Breakfast *string `json:"breakfast,omitempty"`
	Lunch     *string `json:"lunch,omitempty"`
	Dinner    *string `json:"dinner,omitempty"`
}

// Get handles GET /v1/meals?date=YYYY-MM-DD. Missing date defaults to
// today; a day with no published menu is a 404, not an empty object,
// so clients can tell "nothing yet" from "no meals served".
func (h *MealHandler) Get(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	normalized, ok := parseDate(date)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Meals.GetByDate(ctx, normalized)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no menu published for this date"})
	}
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, mealResp{Date: m.MenuDate, Breakfast: m.Breakfast, Lunch: m.Lunch, Dinner: m.Dinner})
}

type upsertMealReq struct {
	Date      string  `json:"date" validate:"required"`
	Breakfast *string `json:"breakfast"`
	Lunch     *string `json:"lunch"`
	Dinner    *string `json:"dinner"`
}

// Upsert handles PUT /v1/admin/meals.
func (h *MealHandler) Upsert(c echo.Context) error {
	var req upsertMealReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required"})
	}
	date, ok := parseDate(req.Date)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Meals.Upsert(ctx, model.MealMenu{
		MenuDate:  date,
		Breakfast: req.Breakfast,
		Lunch:     req.Lunch,
		Dinner:    req.Dinner,
	}); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, mealResp{Date: date, Breakfast: req.Breakfast, Lunch: req.Lunch, Dinner: req.Dinner})
}
