package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dshs-dev/studentlife/internal/model"
	"github.com/dshs-dev/studentlife/internal/repository"
)

// PassHandler serves the student side of outing/overnight passes:
// submission, cancellation while pending, the "mine"/"completed"
// scopes, and the shared calendar. Unlike seats there is no
// per-user-per-day uniqueness; a student may hold several passes at
// once.
type PassHandler struct {
	Passes *repository.PassRepo
}

func NewPassHandler(passes *repository.PassRepo) *PassHandler {
	if passes == nil {
		panic("nil repository passed to NewPassHandler")
	}
	return &PassHandler{Passes: passes}
}

type submitPassReq struct {
	Type      string  `json:"type" validate:"required"`
	Location  string  `json:"location" validate:"required,max=255"`
	Reason    *string `json:"reason"`
	Date      string  `json:"date" validate:"required"`
	StartTime string  `json:"start_time" validate:"required"` // RFC 3339
	EndTime   string  `json:"end_time" validate:"required"`   // RFC 3339
	ShareType string  `json:"share_type"`
}

type passResp struct {
	ID         uint64     `json:"id"`
	UserID     uint64     `json:"user_id"`
	Type       string     `json:"type"`
	Location   string     `json:"location"`
	Reason     *string    `json:"reason,omitempty"`
	Date       string     `json:"date"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    time.Time  `json:"end_time"`
	ShareType  string     `json:"share_type"`
	ShareToken *string    `json:"share_token,omitempty"`
	Status     string     `json:"status"`
	ApprovedBy *uint64    `json:"approved_by,omitempty"`
	DecidedAt  *time.Time `json:"decided_at,omitempty"`
}

func toPassResp(p model.PassRequest) passResp {
	return passResp{
		ID:         p.ID,
		UserID:     p.UserID,
		Type:       p.Type,
		Location:   p.Location,
		Reason:     p.Reason,
		Date:       p.PassDate,
		StartTime:  p.StartTime,
		EndTime:    p.EndTime,
		ShareType:  p.ShareType,
		ShareToken: p.ShareToken,
		Status:     p.Status,
		ApprovedBy: p.ApprovedBy,
		DecidedAt:  p.DecidedAt,
	}
}

// sharedPassResp is the reduced projection for the shared calendar and
// share-token lookups: no reason, no approver, no token echo.
type sharedPassResp struct {
	ID        uint64    `json:"id"`
	Type      string    `json:"type"`
	Location  string    `json:"location"`
	Date      string    `json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

func toSharedPassResp(p model.PassRequest) sharedPassResp {
	return sharedPassResp{
		ID:        p.ID,
		Type:      p.Type,
		Location:  p.Location,
		Date:      p.PassDate,
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
		Status:    p.Status,
	}
}

// Submit handles POST /v1/passes. All field validation happens here,
// before any write; a malformed request never creates partial state.
func (h *PassHandler) Submit(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req submitPassReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Location = strings.TrimSpace(req.Location)
	if req.ShareType == "" {
		req.ShareType = model.SharePrivate
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type, location, date and time bounds are required"})
	}
	if !model.ValidPassType(req.Type) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown pass type"})
	}
	if !model.ValidShareType(req.ShareType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown share type"})
	}
	date, ok := parseDate(req.Date)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be RFC 3339"})
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be RFC 3339"})
	}
	if !start.Before(end) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be before end_time"})
	}

	p := model.PassRequest{
		UserID:    userID,
		Type:      req.Type,
		Location:  req.Location,
		Reason:    req.Reason,
		PassDate:  date,
		StartTime: start,
		EndTime:   end,
		ShareType: req.ShareType,
	}
	if p.ShareType == model.ShareLink {
		token := uuid.NewString()
		p.ShareToken = &token
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	created, err := h.Passes.Create(ctx, p)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, toPassResp(created))
}

// Cancel handles POST /v1/passes/:id/cancel. Owner only, pending only.
func (h *PassHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	passID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid pass id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Passes.Cancel(ctx, userID, passID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toPassResp(p))
}

// List handles GET /v1/passes?scope=mine|completed|public.
func (h *PassHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	scope := c.QueryParam("scope")
	if scope == "" {
		scope = "mine"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch scope {
	case "mine", "completed":
		items, err := h.Passes.ListByUser(ctx, userID, scope == "completed")
		if err != nil {
			return repoError(c, err)
		}
		out := make([]passResp, 0, len(items))
		for _, p := range items {
			out = append(out, toPassResp(p))
		}
		return c.JSON(http.StatusOK, out)
	case "public":
		items, err := h.Passes.ListShared(ctx)
		if err != nil {
			return repoError(c, err)
		}
		out := make([]sharedPassResp, 0, len(items))
		for _, p := range items {
			out = append(out, toSharedPassResp(p))
		}
		return c.JSON(http.StatusOK, out)
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "scope must be mine, completed or public"})
}

// GetShared handles GET /v1/passes/shared/:token, resolving a LINK
// share token without authentication. Terminal passes stop resolving.
func (h *PassHandler) GetShared(c echo.Context) error {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid share token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Passes.GetByShareToken(ctx, token)
	if err != nil {
		return repoError(c, err)
	}
	if !model.SharedPublicly(p.ShareType, p.Status) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "pass request not found"})
	}
	return c.JSON(http.StatusOK, toSharedPassResp(p))
}
