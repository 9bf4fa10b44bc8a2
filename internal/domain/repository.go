package domain

import (
	"context"
	"time"

	"github.com/OliveiraNt/topicscope/internal/config"
)

// DescribeOptions tunes a describe call.
type DescribeOptions struct {
	// IncludeAuthorizedOperations asks brokers to report the operations the
	// client principal may perform. When false, descriptions carry a nil set.
	IncludeAuthorizedOperations bool
	// Timeout bounds the request; zero means the client default.
	Timeout time.Duration
}

// ClusterRepository defines operations for looking up configured clusters and
// their clients.
type ClusterRepository interface {
	FindByName(name string) (config.ClusterConfig, bool)
	FindAll() []config.ClusterConfig
	GetClient(name string) (KafkaClient, bool)
	DescribeOptions() DescribeOptions
	Watch() error
	Close()
}

// ClientFactory creates Kafka clients from configuration.
type ClientFactory interface {
	CreateClient(cfg config.ClusterConfig) (KafkaClient, error)
}

// KafkaClient defines the cluster operations topicscope needs.
type KafkaClient interface {
	IsHealthy() bool
	ListTopics(ctx context.Context, showInternal bool) ([]string, error)
	// DescribeTopics returns one description per requested topic, in request
	// order. A topic the cluster reports an error for fails the whole call.
	DescribeTopics(ctx context.Context, opts DescribeOptions, topics ...string) ([]*TopicDescription, error)
	Close()
}
