package testutil

import (
	"context"
	"sync"

	"github.com/OliveiraNt/topicscope/internal/config"
	"github.com/OliveiraNt/topicscope/internal/domain"
	"github.com/twmb/franz-go/pkg/kerr"
)

// FakeKafkaClient is a test double implementing domain.KafkaClient with configurable responses.
type FakeKafkaClient struct {
	mu           sync.Mutex
	Topics       []string
	Descriptions map[string]*domain.TopicDescription
	Healthy      bool
	Err          error
	LastOpts     domain.DescribeOptions
	Closed       bool
}

func NewFakeKafkaClient() *FakeKafkaClient {
	return &FakeKafkaClient{Healthy: true, Descriptions: map[string]*domain.TopicDescription{}}
}

// AddTopic registers d and its name.
func (f *FakeKafkaClient) AddTopic(d *domain.TopicDescription) *FakeKafkaClient {
	f.Descriptions[d.Name()] = d
	f.Topics = append(f.Topics, d.Name())
	return f
}

func (f *FakeKafkaClient) IsHealthy() bool { return f.Healthy }
func (f *FakeKafkaClient) ListTopics(_ context.Context, _ bool) ([]string, error) {
	return f.Topics, f.Err
}

// DescribeTopics mimics the broker: unknown names fail with UNKNOWN_TOPIC_OR_PARTITION.
func (f *FakeKafkaClient) DescribeTopics(_ context.Context, opts domain.DescribeOptions, topics ...string) ([]*domain.TopicDescription, error) {
	f.mu.Lock()
	f.LastOpts = opts
	f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]*domain.TopicDescription, 0, len(topics))
	for _, name := range topics {
		d, ok := f.Descriptions[name]
		if !ok {
			return nil, kerr.UnknownTopicOrPartition
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *FakeKafkaClient) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
}

func (f *FakeKafkaClient) IsClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Closed
}

// FakeClusterRepository is a simple in-memory repository for tests.
type FakeClusterRepository struct {
	Cfgs    []config.ClusterConfig
	Clients map[string]domain.KafkaClient
	Opts    domain.DescribeOptions
}

func NewFakeClusterRepository() *FakeClusterRepository {
	return &FakeClusterRepository{
		Clients: map[string]domain.KafkaClient{},
		Opts:    domain.DescribeOptions{IncludeAuthorizedOperations: true},
	}
}

// AddCluster registers a cluster named name served by client.
func (r *FakeClusterRepository) AddCluster(name string, client domain.KafkaClient) {
	r.Cfgs = append(r.Cfgs, config.ClusterConfig{Name: name, Brokers: []string{"localhost:9092"}})
	if client != nil {
		r.Clients[name] = client
	}
}

func (r *FakeClusterRepository) FindByName(name string) (config.ClusterConfig, bool) {
	for _, c := range r.Cfgs {
		if c.Name == name {
			return c, true
		}
	}
	return config.ClusterConfig{}, false
}
func (r *FakeClusterRepository) FindAll() []config.ClusterConfig {
	return append([]config.ClusterConfig(nil), r.Cfgs...)
}
func (r *FakeClusterRepository) GetClient(name string) (domain.KafkaClient, bool) {
	c, ok := r.Clients[name]
	return c, ok
}
func (r *FakeClusterRepository) DescribeOptions() domain.DescribeOptions { return r.Opts }
func (r *FakeClusterRepository) Watch() error                            { return nil }
func (r *FakeClusterRepository) Close()                                  {}

// FakeFactory returns a FakeKafkaClient for any config and remembers what it built.
type FakeFactory struct {
	mu      sync.Mutex
	Err     error
	Created map[string][]*FakeKafkaClient
}

func NewFakeFactory() *FakeFactory {
	return &FakeFactory{Created: map[string][]*FakeKafkaClient{}}
}

func (f *FakeFactory) CreateClient(cfg config.ClusterConfig) (domain.KafkaClient, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	c := NewFakeKafkaClient()
	f.mu.Lock()
	f.Created[cfg.Name] = append(f.Created[cfg.Name], c)
	f.mu.Unlock()
	return c, nil
}

// Built returns the clients created for cluster name, oldest first.
func (f *FakeFactory) Built(name string) []*FakeKafkaClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*FakeKafkaClient(nil), f.Created[name]...)
}
