package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/OliveiraNt/topicscope/internal/domain"
	"github.com/OliveiraNt/topicscope/internal/utils"
	"github.com/twmb/franz-go/pkg/kerr"
)

// TopicService handles topic-related operations.
type TopicService struct {
	clusterService *ClusterService
	repo           domain.ClusterRepository
}

// NewTopicService creates a new topic service.
func NewTopicService(clusterService *ClusterService) *TopicService {
	return &TopicService{
		clusterService: clusterService,
		repo:           clusterService.getRepo(),
	}
}

// ListTopics retrieves the topic names of a cluster.
func (s *TopicService) ListTopics(ctx context.Context, clusterName string, showInternal bool) ([]string, error) {
	client, err := s.client(clusterName)
	if err != nil {
		return nil, err
	}

	topics, err := client.ListTopics(ctx, showInternal)
	if err != nil {
		utils.Logger.Error("list topics failed", "cluster", clusterName, "err", err)
		return nil, err
	}
	return topics, nil
}

// DescribeTopic returns the description of a single topic.
func (s *TopicService) DescribeTopic(ctx context.Context, clusterName, topicName string) (*domain.TopicDescription, error) {
	descs, err := s.DescribeTopics(ctx, clusterName, []string{topicName})
	if err != nil {
		return nil, err
	}
	if len(descs) == 0 {
		return nil, ErrTopicNotFound
	}
	return descs[0], nil
}

// DescribeTopics returns the descriptions of topicNames, in the same order.
func (s *TopicService) DescribeTopics(ctx context.Context, clusterName string, topicNames []string) ([]*domain.TopicDescription, error) {
	if len(topicNames) == 0 {
		return nil, ErrInvalidTopicName
	}
	for _, name := range topicNames {
		if name == "" {
			return nil, ErrInvalidTopicName
		}
	}

	client, err := s.client(clusterName)
	if err != nil {
		return nil, err
	}

	opts := s.repo.DescribeOptions()
	descs, err := client.DescribeTopics(ctx, opts, topicNames...)
	if err != nil {
		if errors.Is(err, kerr.UnknownTopicOrPartition) {
			utils.Logger.Warn("describe topics unknown topic", "cluster", clusterName, "topics", topicNames, "err", err)
			return nil, fmt.Errorf("%w: %w", ErrTopicNotFound, err)
		}
		utils.Logger.Error("describe topics failed", "cluster", clusterName, "topics", topicNames, "err", err)
		return nil, err
	}

	utils.Logger.Debug("topics described", "cluster", clusterName, "count", len(descs))
	return descs, nil
}

func (s *TopicService) client(clusterName string) (domain.KafkaClient, error) {
	if _, ok := s.clusterService.GetCluster(clusterName); !ok {
		return nil, ErrClusterNotFound
	}
	client, ok := s.repo.GetClient(clusterName)
	if !ok {
		utils.Logger.Warn("topic service client not found", "cluster", clusterName)
		return nil, ErrClusterOffline
	}
	return client, nil
}
