package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
	"github.com/fintrackhq/fintrack_backend/internal/middleware"
)

type BalanceHandler struct {
	balanceSvc portssvc.BalanceSvcFacade
}

func NewBalanceHandler(balanceSvc portssvc.BalanceSvcFacade) *BalanceHandler {
	return &BalanceHandler{balanceSvc: balanceSvc}
}

// ListBalances godoc
// @Summary List account balances
// @Description Returns the live balance of every (account, instrument) pair the user has posted to, with display strings
// @Tags balances
// @Produce json
// @Success 200 {array} dto.BalanceResponse
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /balances [get]
func (h *BalanceHandler) ListBalances(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	balances, err := h.balanceSvc.ListUserBalances(c.Request.Context(), userID)
	if err != nil {
		// The aggregate either succeeds completely or fails completely;
		// nothing partial is ever rendered.
		middleware.GetLoggerFromContext(c).Error("Failed to aggregate balances", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balances"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBalanceResponse(balances))
}

func registerBalanceRoutes(rg *gin.RouterGroup, balanceSvc portssvc.BalanceSvcFacade) {
	h := NewBalanceHandler(balanceSvc)
	rg.GET("/balances", h.ListBalances)
}
