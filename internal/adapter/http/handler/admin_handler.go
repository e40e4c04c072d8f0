package handler

import (
	"net/http"

	"github.com/Moxxcompany/lockbay/internal/adapter/http/dto"
	"github.com/Moxxcompany/lockbay/internal/adapter/http/middleware"
	"github.com/Moxxcompany/lockbay/internal/core/domain"
	"github.com/Moxxcompany/lockbay/internal/core/ports"
	"github.com/Moxxcompany/lockbay/pkg/apperror"
	"github.com/Moxxcompany/lockbay/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdminHandler handles admin operator endpoints.
type AdminHandler struct {
	adminSvc     ports.AdminVerifier
	holdMgr      ports.HoldManager
	reportingSvc ports.ReportingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminSvc ports.AdminVerifier, holdMgr ports.HoldManager, reportingSvc ports.ReportingService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, holdMgr: holdMgr, reportingSvc: reportingSvc}
}

// Login handles POST /api/v1/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	token, expiry, err := h.adminSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.LoginResponse{Token: token, Expiry: expiry.Unix()})
}

// ReleaseHold handles POST /api/v1/admin/holds/release.
func (h *AdminHandler) ReleaseHold(c *gin.Context) {
	actor, ok := adminActor(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.ReleaseHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}
	holdTxnID, err := uuid.Parse(req.HoldTxnID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid hold_txn_id"))
		return
	}
	linkedID, err := uuid.Parse(req.LinkedID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid linked_id"))
		return
	}

	result, err := h.holdMgr.ReleaseHold(c.Request.Context(), actor, ports.ReleaseHoldRequest{
		UserID:    req.UserID,
		Amount:    amount,
		HoldTxnID: holdTxnID,
		LinkedID:  linkedID,
		Reason:    req.Reason,
		Cancel:    req.Cancel,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.SecurityViolation {
		response.Error(c, apperror.ErrSecurityViolation())
		return
	}
	if !result.Success {
		response.Error(c, apperror.New("HOLD_002", result.Error, http.StatusConflict))
		return
	}

	response.OK(c, dto.ReleaseHoldResponse{
		Success:     true,
		Idempotent:  result.Idempotent,
		LedgerTxnID: result.LedgerTxnID.String(),
	})
}

// DisputeHold handles POST /api/v1/admin/holds/dispute.
func (h *AdminHandler) DisputeHold(c *gin.Context) {
	actor, ok := adminActor(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.DisputeHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	holdTxnID, err := uuid.Parse(req.HoldTxnID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid hold_txn_id"))
		return
	}

	if err := h.holdMgr.MarkHoldDisputed(c.Request.Context(), actor, holdTxnID, req.Reason); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}

// ListReviewQueue handles GET /api/v1/admin/review.
func (h *AdminHandler) ListReviewQueue(c *gin.Context) {
	cashouts, err := h.reportingSvc.ListAwaitingReview(c.Request.Context(), 100)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.CashoutResponse, 0, len(cashouts))
	for i := range cashouts {
		items = append(items, toCashoutResponse(&cashouts[i]))
	}
	response.OK(c, dto.ReviewListResponse{Items: items, Total: len(items)})
}

func adminActor(c *gin.Context) (domain.AdminActor, bool) {
	v, exists := c.Get(middleware.CtxAdminKey)
	if !exists {
		return domain.AdminActor{}, false
	}
	actor, ok := v.(domain.AdminActor)
	return actor, ok
}

// HealthCheck handles GET /health, a deep health check verifying all dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
