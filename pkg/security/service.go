package security

import (
	"context"

	"github.com/dhis2-sre/channel-admin/internal/errdef"
	"github.com/dhis2-sre/channel-admin/pkg/model"
)

func NewService(securityRepository *repository, clusterService clusterService) Service {
	return Service{
		securityRepository: securityRepository,
		clusterService:     clusterService,
	}
}

type clusterService interface {
	Find(ctx context.Context, id uint) (model.Cluster, error)
}

type Service struct {
	securityRepository *repository
	clusterService     clusterService
}

func (s Service) Find(ctx context.Context, id uint) (model.Security, error) {
	return s.securityRepository.find(ctx, id)
}

// FindAll returns the security definitions of the cluster ordered by name.
func (s Service) FindAll(ctx context.Context, clusterID uint) ([]model.Security, error) {
	return s.securityRepository.findAll(ctx, clusterID)
}

func (s Service) Create(ctx context.Context, security model.Security) (model.Security, error) {
	if err := validate(security); err != nil {
		return model.Security{}, err
	}

	if _, err := s.clusterService.Find(ctx, security.ClusterID); err != nil {
		return model.Security{}, err
	}

	err := s.securityRepository.create(ctx, &security)
	if err != nil {
		return model.Security{}, err
	}

	return security, nil
}

func (s Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.securityRepository.find(ctx, id); err != nil {
		return err
	}

	return s.securityRepository.delete(ctx, id)
}

func validate(security model.Security) error {
	switch security.Type {
	case model.SecurityDefTypeBasicAuth, model.SecurityDefTypeWSS:
		if security.Username == "" {
			return errdef.NewBadRequest("username is required for security definitions of type %s", security.Type)
		}
	case model.SecurityDefTypeTechAcc:
	default:
		return errdef.NewBadRequest("unknown security definition type %q", security.Type)
	}
	return nil
}
