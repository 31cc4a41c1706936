package soap

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/dhis2-sre/channel-admin/internal/errdef"
	"github.com/dhis2-sre/channel-admin/pkg/adminservice"
	"github.com/dhis2-sre/channel-admin/pkg/event"
	"github.com/dhis2-sre/channel-admin/pkg/model"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(logger *slog.Logger, clusterService clusterService, adminService adminService, repository definitionRepository, publisher publisher) *service {
	return &service{
		logger:         logger,
		clusterService: clusterService,
		adminService:   adminService,
		repository:     repository,
		publisher:      publisher,
	}
}

type clusterService interface {
	Find(ctx context.Context, id uint) (model.Cluster, error)
}

type adminService interface {
	Invoke(ctx context.Context, address, service string, request *adminservice.Message) (*adminservice.Response, error)
}

type definitionRepository interface {
	findDefinitionSecurities(ctx context.Context, clusterID uint) ([]model.DefinitionSecurity, error)
	checkSecurity(ctx context.Context, clusterID, securityID uint) error
	saveDefinition(ctx context.Context, definition *model.ChannelURLDefinition, securityID uint) error
	deleteDefinition(ctx context.Context, clusterID, id uint) error
}

type publisher interface {
	Publish(ctx context.Context, event event.Event)
}

type service struct {
	logger         *slog.Logger
	clusterService clusterService
	adminService   adminService
	repository     definitionRepository
	publisher      publisher
}

// Item is a SOAP channel definition as listed by the admin service together with its security
// binding as stored locally. Security is the zero value if the definition isn't secured.
type Item struct {
	Definition model.ChannelURLDefinition
	Security   model.DefinitionSecurity
}

// Items returns the SOAP channel definitions of the cluster in the order the admin service lists
// them.
func (s service) Items(ctx context.Context, clusterID uint) ([]Item, error) {
	cluster, err := s.clusterService.Find(ctx, clusterID)
	if err != nil {
		return nil, err
	}

	securities, err := s.repository.findDefinitionSecurities(ctx, clusterID)
	if err != nil {
		return nil, err
	}
	securityByID := make(map[uint]model.DefinitionSecurity, len(securities))
	for _, security := range securities {
		securityByID[security.ID] = security
	}

	definitions, err := s.list(ctx, cluster)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "Listed SOAP channel definitions", "clusterId", cluster.ID, "definitions", len(definitions), "securities", len(securities))

	items := make([]Item, len(definitions))
	for i, definition := range definitions {
		items[i] = Item{
			Definition: definition,
			Security:   securityByID[definition.ID],
		}
	}
	return items, nil
}

func (s service) list(ctx context.Context, cluster model.Cluster) ([]model.ChannelURLDefinition, error) {
	request := adminservice.NewMessage().
		Set("data.cluster_id", strconv.FormatUint(uint64(cluster.ID), 10))

	response, err := s.adminService.Invoke(ctx, cluster.AdminServiceAddress(), serviceGetList, request)
	if err != nil {
		return nil, err
	}

	if !response.Message.Exists("data.definition_list.definition") {
		return []model.ChannelURLDefinition{}, nil
	}

	elements := response.Message.FindAll("data.definition_list.definition")
	definitions := make([]model.ChannelURLDefinition, 0, len(elements))
	for _, element := range elements {
		idText, err := adminservice.ChildText(element, "id")
		if err != nil {
			return nil, fmt.Errorf("invalid SOAP channel definition: %v", err)
		}
		id, err := strconv.ParseUint(strings.TrimSpace(idText), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid id of SOAP channel definition %q: %v", idText, err)
		}
		urlPattern, err := adminservice.ChildText(element, "url_pattern")
		if err != nil {
			return nil, fmt.Errorf("invalid SOAP channel definition %d: %v", id, err)
		}
		isInternalText, err := adminservice.ChildText(element, "is_internal")
		if err != nil {
			return nil, fmt.Errorf("invalid SOAP channel definition %d: %v", id, err)
		}
		isInternal, err := adminservice.ParseBool(strings.TrimSpace(isInternalText))
		if err != nil {
			return nil, fmt.Errorf("invalid is_internal of SOAP channel definition %d: %v", id, err)
		}

		definition := model.NewChannelURLDefinition(uint(id), urlPattern, model.URLTypeSOAP, isInternal)
		definition.ClusterID = cluster.ID
		definitions = append(definitions, definition)
	}
	return definitions, nil
}

// Create creates the definition described by params and returns the id the admin service assigned
// to it. The definition is mirrored locally together with its security binding once the admin
// service accepted it.
func (s service) Create(ctx context.Context, clusterID uint, params url.Values) (string, error) {
	cluster, securityID, err := s.prepare(ctx, clusterID, params, "")
	if err != nil {
		return "", err
	}

	response, err := s.adminService.Invoke(ctx, cluster.AdminServiceAddress(), serviceCreate, editCreateMessage(params, ""))
	if err != nil {
		return "", err
	}

	idText, err := response.Message.Text("data.definition.id")
	if err != nil {
		return "", fmt.Errorf("invalid reply of %q: %v", serviceCreate, err)
	}
	id := strings.TrimSpace(idText)
	pk, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return "", fmt.Errorf("invalid id %q in reply of %q: %v", id, serviceCreate, err)
	}

	urlPattern := params.Get("url_pattern")
	definition := model.NewChannelURLDefinition(uint(pk), urlPattern, model.URLTypeSOAP, false)
	definition.ClusterID = cluster.ID
	if err := s.repository.saveDefinition(ctx, &definition, securityID); err != nil {
		return "", err
	}

	s.publisher.Publish(ctx, event.New(ctx, event.TypeSOAPChannelCreated, cluster.ID, id, urlPattern))
	return id, nil
}

// Edit updates the definition described by params. Its fields are expected to be prefixed like on
// the edit form.
func (s service) Edit(ctx context.Context, clusterID uint, params url.Values) error {
	id, err := strconv.ParseUint(params.Get("id"), 10, 32)
	if err != nil {
		return errdef.NewBadRequest("invalid id %q: %v", params.Get("id"), err)
	}

	cluster, securityID, err := s.prepare(ctx, clusterID, params, editPrefix)
	if err != nil {
		return err
	}

	_, err = s.adminService.Invoke(ctx, cluster.AdminServiceAddress(), serviceEdit, editCreateMessage(params, editPrefix))
	if err != nil {
		return err
	}

	urlPattern := params.Get(editPrefix + "url_pattern")
	definition := model.NewChannelURLDefinition(uint(id), urlPattern, model.URLTypeSOAP, false)
	definition.ClusterID = cluster.ID
	if err := s.repository.saveDefinition(ctx, &definition, securityID); err != nil {
		return err
	}

	s.publisher.Publish(ctx, event.New(ctx, event.TypeSOAPChannelUpdated, cluster.ID, params.Get("id"), urlPattern))
	return nil
}

func (s service) Delete(ctx context.Context, clusterID uint, id uint) error {
	cluster, err := s.clusterService.Find(ctx, clusterID)
	if err != nil {
		return err
	}

	idText := strconv.FormatUint(uint64(id), 10)
	request := adminservice.NewMessage().Set("data.id", idText)
	_, err = s.adminService.Invoke(ctx, cluster.AdminServiceAddress(), serviceDelete, request)
	if err != nil {
		return err
	}

	if err := s.repository.deleteDefinition(ctx, cluster.ID, id); err != nil {
		return err
	}

	s.publisher.Publish(ctx, event.New(ctx, event.TypeSOAPChannelDeleted, cluster.ID, idText, ""))
	return nil
}

// prepare finds the cluster and checks the security definition a create or edit form binds the
// channel to, before anything is sent to the admin service.
func (s service) prepare(ctx context.Context, clusterID uint, params url.Values, prefix string) (model.Cluster, uint, error) {
	cluster, err := s.clusterService.Find(ctx, clusterID)
	if err != nil {
		return model.Cluster{}, 0, err
	}

	value := params.Get(prefix + "security_id")
	if value == "" {
		return cluster, 0, nil
	}
	securityID, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return model.Cluster{}, 0, errdef.NewBadRequest("invalid security id %q: %v", value, err)
	}
	if err := s.repository.checkSecurity(ctx, cluster.ID, uint(securityID)); err != nil {
		return model.Cluster{}, 0, err
	}
	return cluster, uint(securityID), nil
}
