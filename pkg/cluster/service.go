package cluster

import (
	"context"

	"github.com/dhis2-sre/channel-admin/internal/errdef"
	"github.com/dhis2-sre/channel-admin/pkg/model"
)

func NewService(clusterRepository *repository) Service {
	return Service{clusterRepository}
}

type Service struct {
	clusterRepository *repository
}

func (s Service) Find(ctx context.Context, id uint) (model.Cluster, error) {
	return s.clusterRepository.find(ctx, id)
}

// FindAll returns all clusters ordered by name.
func (s Service) FindAll(ctx context.Context) ([]model.Cluster, error) {
	return s.clusterRepository.findAll(ctx)
}

func (s Service) Save(ctx context.Context, name, description, lbHost string, lbPort int) (model.Cluster, error) {
	if err := validateLB(lbHost, lbPort); err != nil {
		return model.Cluster{}, err
	}

	cluster := model.Cluster{
		Name:        name,
		Description: description,
		LBHost:      lbHost,
		LBPort:      lbPort,
	}

	err := s.clusterRepository.save(ctx, &cluster)
	if err != nil {
		return model.Cluster{}, err
	}

	return cluster, nil
}

func (s Service) Update(ctx context.Context, id uint, name, description, lbHost string, lbPort int) (model.Cluster, error) {
	cluster, err := s.clusterRepository.find(ctx, id)
	if err != nil {
		return model.Cluster{}, err
	}

	// Update fields only if provided
	if name != "" {
		cluster.Name = name
	}
	if description != "" {
		cluster.Description = description
	}
	if lbHost != "" {
		cluster.LBHost = lbHost
	}
	if lbPort != 0 {
		cluster.LBPort = lbPort
	}

	if err := validateLB(cluster.LBHost, cluster.LBPort); err != nil {
		return model.Cluster{}, err
	}

	err = s.clusterRepository.save(ctx, &cluster)
	if err != nil {
		return model.Cluster{}, err
	}

	return cluster, nil
}

func (s Service) Delete(ctx context.Context, id uint) error {
	cluster, err := s.clusterRepository.find(ctx, id)
	if err != nil {
		return err
	}

	return s.clusterRepository.delete(ctx, cluster)
}

// FindOrCreate returns the cluster with the name of the given cluster. The cluster is created if no
// cluster of that name exists. Existing clusters are returned as is.
func (s Service) FindOrCreate(ctx context.Context, cluster model.Cluster) (model.Cluster, error) {
	if err := validateLB(cluster.LBHost, cluster.LBPort); err != nil {
		return model.Cluster{}, err
	}
	return s.clusterRepository.findOrCreate(ctx, cluster)
}

func validateLB(host string, port int) error {
	if host == "" {
		return errdef.NewBadRequest("load balancer host is required")
	}
	if port < 1 || port > 65535 {
		return errdef.NewBadRequest("load balancer port %d is out of range", port)
	}
	return nil
}
