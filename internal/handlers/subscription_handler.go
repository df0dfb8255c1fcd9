package handlers

import (
	"net/http"

	"sendloop-api/internal/auth"
	"sendloop-api/internal/models"
	"sendloop-api/internal/policy"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SubscriptionHandler exposes the plan signal and the mock plan switches.
// Real billing belongs to the external subscription collaborator; this
// mirrors its upgrade/downgrade surface so the rest of the app can be
// exercised end to end.
type SubscriptionHandler struct {
	DB *gorm.DB
}

// Status handles GET /api/subscription
func (h *SubscriptionHandler) Status(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	plan := policy.Plan(user.Plan)
	c.JSON(http.StatusOK, gin.H{
		"plan":  user.Plan,
		"flags": policy.FlagsFor(plan),
	})
}

// Upgrade handles POST /api/subscription/upgrade
func (h *SubscriptionHandler) Upgrade(c *gin.Context) {
	h.switchPlan(c, policy.PlanPro)
}

// Downgrade handles POST /api/subscription/downgrade
func (h *SubscriptionHandler) Downgrade(c *gin.Context) {
	h.switchPlan(c, policy.PlanFree)
}

// switchPlan persists the new plan and reissues a token carrying it, since
// the plan claim in the old token is now stale.
func (h *SubscriptionHandler) switchPlan(c *gin.Context, plan policy.Plan) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	user.Plan = string(plan)
	if err := h.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Plan)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Plan:     user.Plan,
	})
}
