package security

import (
	"context"
	"net/http"

	"github.com/dhis2-sre/channel-admin/internal/errdef"
	"github.com/dhis2-sre/channel-admin/internal/handler"
	"github.com/dhis2-sre/channel-admin/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(securityService securityService) Handler {
	return Handler{securityService}
}

type Handler struct {
	securityService securityService
}

type securityService interface {
	Find(ctx context.Context, id uint) (model.Security, error)
	FindAll(ctx context.Context, clusterID uint) ([]model.Security, error)
	Create(ctx context.Context, security model.Security) (model.Security, error)
	Delete(ctx context.Context, id uint) error
}

type CreateSecurityRequest struct {
	ClusterID uint   `json:"clusterId" form:"clusterId" binding:"required"`
	Type      string `json:"type" form:"type" binding:"required,oneOf=basic_auth tech_acc wss"`
	Name      string `json:"name" form:"name" binding:"required"`
	IsActive  bool   `json:"isActive" form:"isActive"`
	Username  string `json:"username" form:"username"`
	Domain    string `json:"domain" form:"domain"`
}

// Create security definition
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /security securityCreate
	//
	// Create security definition
	//
	// Create a security definition SOAP channels of the cluster can be bound to
	//
	// security:
	//   basicAuth:
	//
	// responses:
	//   201: Security
	//   400: Error
	//   401: Error
	//   404: Error
	//   409: Error
	//   415: Error
	var request CreateSecurityRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	security, err := h.securityService.Create(c.Request.Context(), model.Security{
		ClusterID: request.ClusterID,
		Type:      request.Type,
		Name:      request.Name,
		IsActive:  request.IsActive,
		Username:  request.Username,
		Domain:    request.Domain,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, security)
}

type FindAllSecurityRequest struct {
	Cluster uint `form:"cluster" binding:"required"`
}

// FindAll security definitions of a cluster
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /security findAllSecurity
	//
	// Find security definitions
	//
	// Find the security definitions of a cluster ordered by name
	//
	// security:
	//   basicAuth:
	//
	// responses:
	//   200: Securities
	//   400: Error
	//   401: Error
	var request FindAllSecurityRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		_ = c.Error(errdef.NewBadRequest("invalid cluster: %v", err))
		return
	}

	securities, err := h.securityService.FindAll(c.Request.Context(), request.Cluster)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, securities)
}

// Find security definition by id
func (h Handler) Find(c *gin.Context) {
	// swagger:route GET /security/{id} findSecurityById
	//
	// Find security definition
	//
	// Find a security definition by its id
	//
	// security:
	//   basicAuth:
	//
	// responses:
	//   200: Security
	//   400: Error
	//   401: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	security, err := h.securityService.Find(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, security)
}

// Delete security definition
func (h Handler) Delete(c *gin.Context) {
	// swagger:route DELETE /security/{id} securityDelete
	//
	// Delete security definition
	//
	// Delete a security definition. SOAP channels bound to it become unsecured
	//
	// security:
	//   basicAuth:
	//
	// responses:
	//   202:
	//   400: Error
	//   401: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	err := h.securityService.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusAccepted)
}
