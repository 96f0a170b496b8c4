package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	companydomain "github.com/billfold/billfold/internal/company/domain"
	"github.com/billfold/billfold/internal/party"
)

type upsertProfileRequest struct {
	DisplayName string        `json:"display_name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Address     party.Address `json:"address"`
}

// @Summary      Get Profile
// @Description  Get the caller's sender profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  companydomain.Profile
// @Router       /profile [get]
func (s *Server) GetProfile(c *gin.Context) {
	resp, err := s.companySvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Upsert Profile
// @Description  Create or replace the caller's sender profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request body upsertProfileRequest true "Upsert Profile Request"
// @Success      200  {object}  companydomain.Profile
// @Router       /profile [put]
func (s *Server) UpsertProfile(c *gin.Context) {
	var req upsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.companySvc.Upsert(c.Request.Context(), companydomain.UpsertProfileRequest{
		DisplayName: strings.TrimSpace(req.DisplayName),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Address:     req.Address,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
