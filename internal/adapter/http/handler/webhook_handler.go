package handler

import (
	"github.com/Moxxcompany/lockbay/internal/adapter/http/dto"
	"github.com/Moxxcompany/lockbay/internal/core/domain"
	"github.com/Moxxcompany/lockbay/internal/core/ports"
	"github.com/Moxxcompany/lockbay/pkg/apperror"
	"github.com/Moxxcompany/lockbay/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WebhookHandler receives inbound payment confirmations. Signature
// verification happens in middleware before this handler runs.
type WebhookHandler struct {
	confirmationSvc ports.ConfirmationProcessor
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(confirmationSvc ports.ConfirmationProcessor) *WebhookHandler {
	return &WebhookHandler{confirmationSvc: confirmationSvc}
}

// Receive handles POST /webhooks/:provider.
// Settled outcomes (accepted, duplicate, underpaid) return 200 so the
// provider stops redelivering; infrastructure faults return 5xx to trigger
// a provider-side retry.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var req dto.ProviderWebhook
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	outcome, err := h.confirmationSvc.ProcessConfirmation(c.Request.Context(), ports.PaymentWebhook{
		Provider:       c.Param("provider"),
		TxID:           req.TxID,
		ReceivedAmount: amount,
		Currency:       req.Currency,
		Confirmations:  req.Confirmations,
		PaymentAddress: req.PaymentAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	ack := dto.WebhookAck{
		Accepted:  outcome.Accepted,
		Duplicate: outcome.Duplicate,
		Status:    string(outcome.DepositStatus),
	}
	if !outcome.Accepted && !outcome.Duplicate && !outcome.Underpaid &&
		outcome.DepositStatus == domain.DepositStatusPendingDeposit {
		// Not enough confirmations yet; the provider will redeliver.
		response.Accepted(c, ack)
		return
	}
	response.OK(c, ack)
}
