package handlers

import (
	"net/http"

	"lendsim/internal/api/models"

	"github.com/gin-gonic/gin"
)

// PoliciesHandler lists the available rate policies.
type PoliciesHandler struct{}

// NewPoliciesHandler creates a policies handler.
func NewPoliciesHandler() *PoliciesHandler {
	return &PoliciesHandler{}
}

// ListPolicies handles GET /api/v1/policies.
func (h *PoliciesHandler) ListPolicies(c *gin.Context) {
	policies := []models.PolicyInfo{
		{
			Name:        "observed",
			Description: "Replays the rates reported by the subgraph: lender APY from supplyRate, borrower rate from borrowRate, exchange rate verbatim, utilization from totalBorrows/totalSupply.",
		},
	}
	c.JSON(http.StatusOK, gin.H{"policies": policies})
}
