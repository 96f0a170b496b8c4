package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// @Summary      Suggest Item Names
// @Description  Most frequently used line item names for the caller
// @Tags         suggestions
// @Produce      json
// @Param        limit  query  int  false  "Limit"
// @Success      200  {object}  []suggestiondomain.ItemNameCount
// @Router       /suggestions/items [get]
func (s *Server) SuggestItemNames(c *gin.Context) {
	var query struct {
		Limit int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.suggestionSvc.TopItemNames(c.Request.Context(), query.Limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Suggest Unit Cost
// @Description  Most recently used unit cost for a line item name
// @Tags         suggestions
// @Produce      json
// @Param        name  query  string  true  "Item Name"
// @Success      200  {object}  map[string]any
// @Router       /suggestions/items/cost [get]
func (s *Server) SuggestUnitCost(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	unitCost, found, err := s.suggestionSvc.RecentUnitCost(c.Request.Context(), name)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"name":      name,
		"unit_cost": unitCost,
		"found":     found,
	}})
}
