package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	clientdomain "github.com/billfold/billfold/internal/client/domain"
	"github.com/billfold/billfold/internal/party"
	"github.com/billfold/billfold/pkg/db/pagination"
)

type createClientRequest struct {
	DisplayName string        `json:"display_name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Address     party.Address `json:"address"`
}

type updateClientRequest struct {
	DisplayName *string        `json:"display_name"`
	Email       *string        `json:"email"`
	Phone       *string        `json:"phone"`
	Address     *party.Address `json:"address"`
}

// @Summary      Create Client
// @Description  Create a new client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        request body createClientRequest true "Create Client Request"
// @Success      200  {object}  clientdomain.Client
// @Router       /clients [post]
func (s *Server) CreateClient(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.clientSvc.Create(c.Request.Context(), clientdomain.CreateClientRequest{
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

// @Summary      List Clients
// @Description  List clients for the caller
// @Tags         clients
// @Produce      json
// @Param        name        query     string  false  "Name"
// @Param        page_token  query     string  false  "Page Token"
// @Param        page_size   query     int     false  "Page Size"
// @Success      200  {object}  clientdomain.ListClientResponse
// @Router       /clients [get]
func (s *Server) ListClients(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Name string `form:"name"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.clientSvc.List(c.Request.Context(), clientdomain.ListClientRequest{
		Pagination: query.Pagination,
		Name:       strings.TrimSpace(query.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Client
// @Description  Get client by ID
// @Tags         clients
// @Produce      json
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  clientdomain.Client
// @Router       /clients/{id} [get]
func (s *Server) GetClientByID(c *gin.Context) {
	resp, err := s.clientSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Client
// @Description  Patch client fields
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id       path  string               true  "Client ID"
// @Param        request  body  updateClientRequest  true  "Update Client Request"
// @Success      200  {object}  clientdomain.Client
// @Router       /clients/{id} [patch]
func (s *Server) UpdateClient(c *gin.Context) {
	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.clientSvc.Update(c.Request.Context(), clientdomain.UpdateClientRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Client
// @Description  Delete a client
// @Tags         clients
// @Produce      json
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  map[string]string
// @Router       /clients/{id} [delete]
func (s *Server) DeleteClient(c *gin.Context) {
	if err := s.clientSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
