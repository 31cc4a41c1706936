package soap

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dhis2-sre/channel-admin/internal/errdef"
	"github.com/dhis2-sre/channel-admin/internal/handler"
	"github.com/dhis2-sre/channel-admin/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

//go:embed templates/soap.html
var templates embed.FS

var indexTemplate = template.Must(template.ParseFS(templates, "templates/soap.html"))

func NewHandler(logger *slog.Logger, clusterService clusterLister, securityService securityLister, channelService channelService) Handler {
	return Handler{
		logger:          logger,
		clusterService:  clusterService,
		securityService: securityService,
		channelService:  channelService,
	}
}

type Handler struct {
	logger          *slog.Logger
	clusterService  clusterLister
	securityService securityLister
	channelService  channelService
}

type clusterLister interface {
	FindAll(ctx context.Context) ([]model.Cluster, error)
}

type securityLister interface {
	FindAll(ctx context.Context, clusterID uint) ([]model.Security, error)
}

type channelService interface {
	Items(ctx context.Context, clusterID uint) ([]Item, error)
	Create(ctx context.Context, clusterID uint, params url.Values) (string, error)
	Edit(ctx context.Context, clusterID uint, params url.Values) error
	Delete(ctx context.Context, clusterID uint, id uint) error
}

type IndexRequest struct {
	Cluster uint `form:"cluster"`
}

type indexPage struct {
	Clusters          []model.Cluster
	ClusterID         uint
	ChooseClusterForm chooseClusterForm
	Items             []Item
	CreateForm        definitionForm
	EditForm          definitionForm
}

// Index lists the SOAP channel definitions of a cluster
func (h Handler) Index(c *gin.Context) {
	// swagger:route GET /channel/soap/ soapChannelIndex
	//
	// SOAP channel definitions
	//
	// Render the SOAP channel definitions of the cluster selected via the cluster query parameter
	// together with the forms to manage them
	//
	// produces:
	//   - text/html
	//
	// security:
	//   basicAuth:
	//
	// responses:
	//   200:
	//   401: Error
	//   500: Error
	ctx := c.Request.Context()

	var request IndexRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		h.fail(c, failList, errdef.NewBadRequest("invalid cluster: %v", err))
		return
	}

	clusters, err := h.clusterService.FindAll(ctx)
	if err != nil {
		h.fail(c, failList, err)
		return
	}

	var items []Item
	var securities []model.Security
	if request.Cluster != 0 {
		items, err = h.channelService.Items(ctx, request.Cluster)
		if err != nil {
			h.fail(c, failList, err)
			return
		}

		securities, err = h.securityService.FindAll(ctx, request.Cluster)
		if err != nil {
			h.fail(c, failList, err)
			return
		}
	}

	page := indexPage{
		Clusters:  clusters,
		ClusterID: request.Cluster,
		ChooseClusterForm: chooseClusterForm{
			Clusters: clusters,
			Selected: request.Cluster,
		},
		Items:      items,
		CreateForm: definitionForm{ClusterID: request.Cluster, Securities: securities},
		EditForm:   definitionForm{Prefix: editPrefix, ClusterID: request.Cluster, Securities: securities},
	}
	h.logger.DebugContext(ctx, "Rendering SOAP channel definitions", "clusterId", page.ClusterID, "clusters", len(page.Clusters), "items", len(page.Items))

	c.Render(http.StatusOK, render.HTML{
		Template: indexTemplate,
		Name:     "soap.html",
		Data:     page,
	})
}

// Create a SOAP channel definition
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /channel/soap/create/ soapChannelCreate
	//
	// Create SOAP channel definition
	//
	// Create a SOAP channel definition through the admin service of the cluster
	//
	// security:
	//   basicAuth:
	//
	// responses:
	//   200: CreateDefinitionResponse
	//   401: Error
	//   500: Error
	var request CreateDefinitionRequest
	if err := handler.DataBinder(c, &request); err != nil {
		h.fail(c, failCreate, err)
		return
	}

	id, err := h.channelService.Create(c.Request.Context(), request.ClusterID, request.params())
	if err != nil {
		h.fail(c, failCreate, err)
		return
	}

	c.JSON(http.StatusOK, CreateDefinitionResponse{PK: id})
}

type CreateDefinitionResponse struct {
	PK string `json:"pk"`
}

// Edit a SOAP channel definition
func (h Handler) Edit(c *gin.Context) {
	// swagger:route POST /channel/soap/edit/ soapChannelEdit
	//
	// Edit SOAP channel definition
	//
	// Update a SOAP channel definition through the admin service of the cluster
	//
	// security:
	//   basicAuth:
	//
	// responses:
	//   200:
	//   401: Error
	//   500: Error
	var request EditDefinitionRequest
	if err := handler.DataBinder(c, &request); err != nil {
		h.fail(c, failUpdate, err)
		return
	}

	err := h.channelService.Edit(c.Request.Context(), request.ClusterID, request.params())
	if err != nil {
		h.fail(c, failUpdate, err)
		return
	}

	c.Status(http.StatusOK)
}

// Delete a SOAP channel definition
func (h Handler) Delete(c *gin.Context) {
	// swagger:route POST /channel/soap/delete/{id}/cluster/{cluster_id}/ soapChannelDelete
	//
	// Delete SOAP channel definition
	//
	// Delete a SOAP channel definition through the admin service of the cluster
	//
	// security:
	//   basicAuth:
	//
	// responses:
	//   200:
	//   401: Error
	//   500: Error
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, failDelete, err)
		return
	}
	clusterID, err := parseID(c, "cluster_id")
	if err != nil {
		h.fail(c, failDelete, err)
		return
	}

	err = h.channelService.Delete(c.Request.Context(), clusterID, id)
	if err != nil {
		h.fail(c, failDelete, err)
		return
	}

	c.Status(http.StatusOK)
}

const (
	failList   = "list the SOAP channel definitions"
	failCreate = "create the SOAP channel definition"
	failUpdate = "update the SOAP channel definition"
	failDelete = "delete the SOAP channel definition"
)

// fail answers with 500 and the reason. The error isn't added to the context as the answer is
// final and mustn't be rewritten by the error middleware.
func (h Handler) fail(c *gin.Context, action string, err error) {
	msg := fmt.Sprintf("Could not %s, e=[%v]", action, err)
	h.logger.ErrorContext(c.Request.Context(), msg)
	c.String(http.StatusInternalServerError, msg)
}

func parseID(c *gin.Context, parameter string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(parameter), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %v", parameter, err)
	}
	return uint(id), nil
}
