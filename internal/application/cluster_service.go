package application

import (
	"github.com/OliveiraNt/topicscope/internal/config"
	"github.com/OliveiraNt/topicscope/internal/domain"
	"github.com/OliveiraNt/topicscope/internal/utils"
)

// ClusterService provides read access to the configured clusters.
type ClusterService struct {
	repo domain.ClusterRepository
}

// NewClusterService creates a new cluster service.
func NewClusterService(repo domain.ClusterRepository) *ClusterService {
	return &ClusterService{repo: repo}
}

func (s *ClusterService) getRepo() domain.ClusterRepository {
	return s.repo
}

// GetCluster retrieves a cluster configuration by name.
func (s *ClusterService) GetCluster(name string) (config.ClusterConfig, bool) {
	return s.repo.FindByName(name)
}

// ListClusters returns every configured cluster with its current reachability.
func (s *ClusterService) ListClusters() []domain.Cluster {
	cfgs := s.repo.FindAll()
	out := make([]domain.Cluster, 0, len(cfgs))
	for _, cfg := range cfgs {
		cluster := domain.Cluster{
			Name:     cfg.Name,
			Brokers:  cfg.Brokers,
			AuthType: cfg.GetAuthType(),
		}
		if client, ok := s.repo.GetClient(cfg.Name); ok {
			cluster.IsOnline = client.IsHealthy()
		} else {
			utils.Logger.Warn("list clusters client not found", "cluster", cfg.Name)
		}
		out = append(out, cluster)
	}
	return out
}
