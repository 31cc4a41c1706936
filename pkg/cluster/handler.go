package cluster

import (
	"context"
	"net/http"

	"github.com/dhis2-sre/channel-admin/internal/handler"
	"github.com/dhis2-sre/channel-admin/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(clusterService clusterService) Handler {
	return Handler{clusterService}
}

type Handler struct {
	clusterService clusterService
}

type clusterService interface {
	Find(ctx context.Context, id uint) (model.Cluster, error)
	FindAll(ctx context.Context) ([]model.Cluster, error)
	Save(ctx context.Context, name, description, lbHost string, lbPort int) (model.Cluster, error)
	Update(ctx context.Context, id uint, name, description, lbHost string, lbPort int) (model.Cluster, error)
	Delete(ctx context.Context, id uint) error
}

type CreateClusterRequest struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Description string `json:"description" form:"description"`
	LBHost      string `json:"lbHost" form:"lbHost" binding:"required"`
	LBPort      int    `json:"lbPort" form:"lbPort" binding:"required,min=1,max=65535"`
}

// Create cluster
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /clusters clusterCreate
	//
	// Save cluster
	//
	// Save a cluster and the address of its admin service load balancer
	//
	// security:
	//   basicAuth:
	//
	// responses:
	//   201: Cluster
	//   400: Error
	//   401: Error
	//   409: Error
	//   415: Error
	var request CreateClusterRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	cluster, err := h.clusterService.Save(c.Request.Context(), request.Name, request.Description, request.LBHost, request.LBPort)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, cluster)
}

type UpdateClusterRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	LBHost      string `json:"lbHost" form:"lbHost"`
	LBPort      int    `json:"lbPort" form:"lbPort" binding:"omitempty,min=1,max=65535"`
}

// Update cluster
func (h Handler) Update(c *gin.Context) {
	// swagger:route PUT /clusters/{id} clusterUpdate
	//
	// Update cluster
	//
	// Update a cluster. Fields which aren't provided keep their value
	//
	// security:
	//   basicAuth:
	//
	// responses:
	//   200: Cluster
	//   400: Error
	//   401: Error
	//   404: Error
	//   409: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request UpdateClusterRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	cluster, err := h.clusterService.Update(c.Request.Context(), id, request.Name, request.Description, request.LBHost, request.LBPort)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cluster)
}

// Delete cluster
func (h Handler) Delete(c *gin.Context) {
	// swagger:route DELETE /clusters/{id} clusterDelete
	//
	// Delete cluster
	//
	// Delete a cluster...
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

	err := h.clusterService.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusAccepted)
}

// Find cluster by id
func (h Handler) Find(c *gin.Context) {
	// swagger:route GET /clusters/{id} findClusterById
	//
	// Find cluster
	//
	// Find a cluster by its id
	//
	// responses:
	//   200: Cluster
	//   400: Error
	//   401: Error
	//   404: Error
	//
	// security:
	//   basicAuth:
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	cluster, err := h.clusterService.Find(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cluster)
}

// FindAll find all clusters
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /clusters findAllClusters
	//
	// Find all clusters
	//
	// Find all clusters ordered by name
	//
	// responses:
	//   200: Clusters
	//   401: Error
	//
	// security:
	//   basicAuth:
	clusters, err := h.clusterService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, clusters)
}
