package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dshs-dev/studentlife/internal/model"
	"github.com/dshs-dev/studentlife/internal/repository"
	"github.com/dshs-dev/studentlife/internal/service"
)

// StaffPassHandler exposes the teacher/admin side of pass requests:
// the pending queue and the approve/reject decision. Decisions notify
// the student and emit an event for downstream consumers; both side
// effects are best-effort and never roll back the decision itself.
type StaffPassHandler struct {
	Passes        *repository.PassRepo
	Notifications *repository.NotificationRepo
	Publisher     *service.QueuePublisher
}

func NewStaffPassHandler(passes *repository.PassRepo, notifs *repository.NotificationRepo, pub *service.QueuePublisher) *StaffPassHandler {
	if passes == nil || notifs == nil {
		panic("nil repository passed to NewStaffPassHandler")
	}
	return &StaffPassHandler{Passes: passes, Notifications: notifs, Publisher: pub}
}

// ListPending handles GET /v1/staff/passes.
func (h *StaffPassHandler) ListPending(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Passes.ListPending(ctx)
	if err != nil {
		return repoError(c, err)
	}
	out := make([]passResp, 0, len(items))
	for _, p := range items {
		out = append(out, toPassResp(p))
	}
	return c.JSON(http.StatusOK, out)
}

// Decide handles POST /v1/staff/passes/:id/decide. Only a pending pass
// can be decided; the repository guards the transition so two staff
// racing on the same request cannot both win.
func (h *StaffPassHandler) Decide(c echo.Context) error {
	staffID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	passID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid pass id"})
	}
	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Passes.Decide(ctx, staffID, passID, req.Approve)
	if err != nil {
		return repoError(c, err)
	}

	verb := "rejected"
	if req.Approve {
		verb = "approved"
	}
	msg := "Your " + p.Type + " pass for " + p.PassDate + " was " + verb + "."
	relatedID := p.ID
	if err := h.Notifications.Create(ctx, model.Notification{
		UserID:    p.UserID,
		Title:     "Pass request " + verb,
		Message:   &msg,
		Type:      model.NotifPass,
		RelatedID: &relatedID,
	}); err != nil {
		c.Logger().Warnf("pass decision notification failed: %v", err)
	}
	if h.Publisher != nil {
		h.Publisher.PublishPassDecided(ctx, p, staffID)
	}
	return c.JSON(http.StatusOK, toPassResp(p))
}
