package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ai-studio/backend/internal/ledger"
	"github.com/ai-studio/backend/internal/models"
	"github.com/ai-studio/backend/internal/session"
)

type CreditsHandler struct {
	ledger   *ledger.Ledger
	sessions *session.Manager
}

func NewCreditsHandler(ledg *ledger.Ledger, sessions *session.Manager) *CreditsHandler {
	return &CreditsHandler{ledger: ledg, sessions: sessions}
}

// AdjustCredits godoc
// @Summary     Adjust the credit balance
// @Description Applies a signed credit change and appends the audit transaction
// @Tags        credits
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.AdjustCreditsRequest true "Signed amount"
// @Success     200 {object} models.UserResponse
// @Failure     402 {object} models.ErrorResponse
// @Router      /credits/adjust [post]
func (h *CreditsHandler) AdjustCredits(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.AdjustCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	user, err := h.sessions.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := h.ledger.Adjust(c.Request.Context(), user, req.Amount, req.Description, uuid.NullUUID{}); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

// ListTransactions godoc
// @Summary     List credit transactions
// @Description Returns the append-only ledger entries newest-first
// @Tags        credits
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.TransactionListResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /credits/transactions [get]
func (h *CreditsHandler) ListTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	transactions, err := h.ledger.Transactions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.TransactionResponse, len(transactions))
	for i, t := range transactions {
		responses[i] = models.TransactionResponse{
			ID:          t.ID.String(),
			Amount:      t.Amount,
			Type:        t.Type,
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
		}
		if t.ProjectID.Valid {
			responses[i].ProjectID = t.ProjectID.UUID.String()
		}
	}
	c.JSON(http.StatusOK, models.TransactionListResponse{Transactions: responses})
}

var plans = map[string]models.PlanResponse{
	models.PlanFree: {Name: "Free", Credits: 10, Price: 0},
	models.PlanPro:  {Name: "Pro", Credits: 500, Price: 29.90},
}

// ListPlans godoc
// @Summary     List subscription plans
// @Tags        credits
// @Produce     json
// @Success     200 {object} map[string]models.PlanResponse
// @Router      /plans [get]
func (h *CreditsHandler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, plans)
}
