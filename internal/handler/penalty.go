package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dshs-dev/studentlife/internal/model"
	"github.com/dshs-dev/studentlife/internal/repository"
	"github.com/dshs-dev/studentlife/internal/service"
)

// PenaltyHandler covers both sides of the point ledger: staff issue
// records and curate the reason catalog, students read their own
// history and total. Issuance is the one multi-table write in the
// system and runs as a single transaction so a committed ledger row is
// never visible without its target rows, notifications and updated
// totals.
type PenaltyHandler struct {
	Penalties     *repository.PenaltyRepo
	Notifications *repository.NotificationRepo
	Users         *repository.UserRepo
	Publisher     *service.QueuePublisher
}

func NewPenaltyHandler(penalties *repository.PenaltyRepo, notifs *repository.NotificationRepo, users *repository.UserRepo, pub *service.QueuePublisher) *PenaltyHandler {
	if penalties == nil || notifs == nil || users == nil {
		panic("nil repository passed to NewPenaltyHandler")
	}
	return &PenaltyHandler{Penalties: penalties, Notifications: notifs, Users: users, Publisher: pub}
}

// ---- reason catalog ----

type reasonResp struct {
	ID       uint64 `json:"id"`
	Title    string `json:"title"`
	Points   int    `json:"points"`
	Category string `json:"category"`
	IsActive bool   `json:"is_active"`
}

func toReasonResp(r model.PenaltyReason) reasonResp {
	return reasonResp{ID: r.ID, Title: r.Title, Points: r.Points, Category: r.Category, IsActive: r.IsActive}
}

// ListReasons handles GET /v1/penalty-reasons. Students see only
// active entries; staff pass ?all=true to include retired ones.
func (h *PenaltyHandler) ListReasons(c echo.Context) error {
	activeOnly := c.QueryParam("all") != "true"

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Penalties.ListReasons(ctx, activeOnly)
	if err != nil {
		return repoError(c, err)
	}
	out := make([]reasonResp, 0, len(items))
	for _, r := range items {
		out = append(out, toReasonResp(r))
	}
	return c.JSON(http.StatusOK, out)
}

type createReasonReq struct {
	Title    string `json:"title" validate:"required,max=255"`
	Points   int    `json:"points" validate:"required,ne=0"`
	Category string `json:"category" validate:"max=100"`
}

// CreateReason handles POST /v1/staff/penalty-reasons.
func (h *PenaltyHandler) CreateReason(c echo.Context) error {
	var req createReasonReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and a non-zero points value are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Penalties.CreateReason(ctx, req.Title, req.Points, req.Category)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

type setReasonActiveReq struct {
	IsActive bool `json:"is_active"`
}

// SetReasonActive handles PATCH /v1/staff/penalty-reasons/:id.
// Retiring a reason stops future issuance; existing ledger rows keep
// their frozen point values.
func (h *PenaltyHandler) SetReasonActive(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reason id"})
	}
	var req setReasonActiveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Penalties.SetReasonActive(ctx, id, req.IsActive); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "is_active": req.IsActive})
}

// ---- issuance ----

type issuePenaltyReq struct {
	ReasonID      *uint64  `json:"reason_id"`
	Description   *string  `json:"description"`
	Points        *int     `json:"points"`
	TargetUserIDs []uint64 `json:"target_user_ids" validate:"required,min=1,dive,gt=0"`
	IssuedDate    string   `json:"issued_date"`
}

type issuePenaltyResp struct {
	RecordID   uint64   `json:"record_id"`
	Points     int      `json:"points"`
	Title      string   `json:"title"`
	IssuedDate string   `json:"issued_date"`
	TargetIDs  []uint64 `json:"target_user_ids"`
}

// Issue handles POST /v1/staff/penalties. A request names either a
// catalog reason (points inherited) or an ad-hoc description with an
// explicit point value, never both. The record, its target rows, one
// notification per target and the recomputed totals commit together;
// any failure rolls everything back and the ledger stays untouched.
func (h *PenaltyHandler) Issue(c echo.Context) error {
	staffID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req issuePenaltyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "target_user_ids must name at least one user"})
	}
	if req.ReasonID != nil && (req.Description != nil || req.Points != nil) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "provide reason_id or description+points, not both"})
	}
	if req.ReasonID == nil && (req.Description == nil || strings.TrimSpace(*req.Description) == "" || req.Points == nil || *req.Points == 0) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ad-hoc records need a description and a non-zero points value"})
	}
	issuedDate := time.Now().Format("2006-01-02")
	if req.IssuedDate != "" {
		d, ok := parseDate(req.IssuedDate)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "issued_date must be YYYY-MM-DD"})
		}
		issuedDate = d
	}
	targets := dedupeIDs(req.TargetUserIDs)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Penalties.DB().BeginTx(ctx, nil)
	if err != nil {
		return repoError(c, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rec := model.PenaltyRecord{IssuedBy: staffID, IssuedDate: issuedDate}
	title := ""
	if req.ReasonID != nil {
		reason, err := h.Penalties.GetReasonTx(ctx, tx, *req.ReasonID)
		if err != nil {
			return repoError(c, err)
		}
		if !reason.IsActive {
			return c.JSON(http.StatusConflict, echo.Map{"error": "penalty reason is retired"})
		}
		rec.ReasonID = &reason.ID
		rec.Points = reason.Points
		title = reason.Title
	} else {
		desc := strings.TrimSpace(*req.Description)
		rec.Description = &desc
		rec.Points = *req.Points
		title = desc
	}

	if err := h.Penalties.CreateRecordTx(ctx, tx, &rec); err != nil {
		return repoError(c, err)
	}
	targetRows := make([]model.PenaltyRecordTarget, 0, len(targets))
	for _, uid := range targets {
		targetRows = append(targetRows, model.PenaltyRecordTarget{RecordID: rec.ID, UserID: uid})
	}
	if err := h.Penalties.CreateTargetsBulkTx(ctx, tx, targetRows); err != nil {
		return repoError(c, err)
	}

	notifs := make([]model.Notification, 0, len(targets))
	msg := title + " (" + formatSignedPoints(rec.Points) + " points)"
	recordID := rec.ID
	for _, uid := range targets {
		notifs = append(notifs, model.Notification{
			UserID:    uid,
			Title:     "Penalty points recorded",
			Message:   &msg,
			Type:      model.NotifPenalty,
			RelatedID: &recordID,
		})
	}
	if err := h.Notifications.CreateBulkTx(ctx, tx, notifs); err != nil {
		return repoError(c, err)
	}
	if err := h.Penalties.RecomputeTotalsTx(ctx, tx, targets); err != nil {
		return repoError(c, err)
	}
	if err := tx.Commit(); err != nil {
		return repoError(c, err)
	}
	committed = true

	if h.Publisher != nil {
		h.Publisher.PublishPenaltyIssued(ctx, rec, title, targets)
	}
	return c.JSON(http.StatusCreated, issuePenaltyResp{
		RecordID:   rec.ID,
		Points:     rec.Points,
		Title:      title,
		IssuedDate: rec.IssuedDate,
		TargetIDs:  targets,
	})
}

// ---- reads ----

type penaltyEntryResp struct {
	RecordID   uint64 `json:"record_id"`
	Title      string `json:"title"`
	Points     int    `json:"points"`
	IssuedDate string `json:"issued_date"`
}

type penaltyHistoryResp struct {
	Total   int                `json:"total"`
	Entries []penaltyEntryResp `json:"entries"`
}

// MyPenalties handles GET /v1/my-penalties: the caller's ledger
// entries plus their derived total.
func (h *PenaltyHandler) MyPenalties(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return h.historyFor(c, userID)
}

// UserPenalties handles GET /v1/staff/penalties/users/:id, the staff
// view of any student's ledger.
func (h *PenaltyHandler) UserPenalties(c echo.Context) error {
	userID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	return h.historyFor(c, userID)
}

func (h *PenaltyHandler) historyFor(c echo.Context, userID uint64) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return repoError(c, err)
	}
	items, err := h.Penalties.ListByTarget(ctx, userID)
	if err != nil {
		return repoError(c, err)
	}
	total, err := h.Penalties.RecomputeTotal(ctx, userID)
	if err != nil {
		return repoError(c, err)
	}

	entries := make([]penaltyEntryResp, 0, len(items))
	for _, item := range items {
		entries = append(entries, penaltyEntryResp{
			RecordID:   item.Record.ID,
			Title:      item.Title,
			Points:     item.Record.Points,
			IssuedDate: item.Record.IssuedDate,
		})
	}
	return c.JSON(http.StatusOK, penaltyHistoryResp{Total: total, Entries: entries})
}

// dedupeIDs drops repeated user IDs while keeping first-seen order, so
// a sloppy client cannot trip the unique key on the target table.
func dedupeIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func formatSignedPoints(p int) string {
	if p > 0 {
		return "+" + strconv.Itoa(p)
	}
	return strconv.Itoa(p)
}
