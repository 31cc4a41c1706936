package cluster

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dhis2-sre/channel-admin/pkg/model"
	"gopkg.in/yaml.v3"
)

type clusterYaml struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	LBHost      string `yaml:"lbHost"`
	LBPort      int    `yaml:"lbPort"`
}

// LoadClusters creates the clusters listed in the YAML file at path. Clusters that already exist are
// left untouched so changes made through the API survive a restart.
func LoadClusters(ctx context.Context, logger *slog.Logger, path string, clusterService Service) error {
	clusters, err := parseClusters(path)
	if err != nil {
		return err
	}

	for _, c := range clusters {
		cluster, err := clusterService.FindOrCreate(ctx, c)
		if err != nil {
			return fmt.Errorf("error loading cluster %q: %v", c.Name, err)
		}
		logger.InfoContext(ctx, "Cluster loaded", "id", cluster.ID, "name", cluster.Name, "address", cluster.AdminServiceAddress())
	}

	return nil
}

func parseClusters(path string) ([]model.Cluster, error) {
	file, err := os.ReadFile(path) // #nosec
	if err != nil {
		return nil, fmt.Errorf("error reading clusters file %q: %v", path, err)
	}

	var entries []clusterYaml
	if err := yaml.Unmarshal(file, &entries); err != nil {
		return nil, fmt.Errorf("error parsing clusters file %q: %v", path, err)
	}

	clusters := make([]model.Cluster, len(entries))
	for i, entry := range entries {
		if entry.Name == "" {
			return nil, fmt.Errorf("cluster %d in %q has no name", i, path)
		}
		clusters[i] = model.Cluster{
			Name:        entry.Name,
			Description: entry.Description,
			LBHost:      entry.LBHost,
			LBPort:      entry.LBPort,
		}
	}
	return clusters, nil
}
