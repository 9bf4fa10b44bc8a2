package kafka

import (
	"context"
	"sort"
	"time"

	"github.com/OliveiraNt/topicscope/internal/domain"
	"github.com/OliveiraNt/topicscope/internal/utils"
	"github.com/pkg/errors"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/kmsg"
)

const (
	defaultDescribeTimeout = 10 * time.Second
	listTimeout            = 5 * time.Second
)

type Admin struct {
	client *kadm.Client
	req    kmsg.Requestor
}

// NewAdmin creates an Admin issuing requests through cl.
func NewAdmin(cl *kgo.Client) *Admin {
	return &Admin{client: kadm.NewClient(cl), req: cl}
}

// BrokerMetadata returns broker metadata (used for health checks)
func (a *Admin) BrokerMetadata(ctx context.Context) (kadm.Metadata, error) {
	return a.client.BrokerMetadata(ctx)
}

// ListTopics returns the sorted topic names of the cluster.
func (a *Admin) ListTopics(ctx context.Context, showInternal bool) ([]string, error) {
	cctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var m kadm.TopicDetails
	var err error
	if showInternal {
		m, err = a.client.ListTopicsWithInternal(cctx)
	} else {
		m, err = a.client.ListTopics(cctx)
	}
	if err != nil {
		return nil, errors.Wrap(err, "list topics")
	}

	names := make([]string, 0, len(m))
	for name, td := range m {
		if td.Err != nil {
			utils.Logger.Debug("skipping topic with metadata error", "topic", name, "err", td.Err)
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DescribeTopics fetches the descriptions of topics in request order. With no
// topics every topic of the cluster is described, sorted by name.
func (a *Admin) DescribeTopics(ctx context.Context, opts domain.DescribeOptions, topics ...string) ([]*domain.TopicDescription, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultDescribeTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := kmsg.NewPtrMetadataRequest()
	req.IncludeTopicAuthorizedOperations = opts.IncludeAuthorizedOperations
	for _, name := range topics {
		t := kmsg.NewMetadataRequestTopic()
		t.Topic = kmsg.StringPtr(name)
		req.Topics = append(req.Topics, t)
	}

	resp, err := req.RequestWith(cctx, a.req)
	if err != nil {
		return nil, errors.Wrap(err, "metadata request")
	}
	return descriptionsFromMetadata(resp, opts, topics)
}

func descriptionsFromMetadata(resp *kmsg.MetadataResponse, opts domain.DescribeOptions, requested []string) ([]*domain.TopicDescription, error) {
	nodes := make(map[int32]domain.Node, len(resp.Brokers))
	for _, b := range resp.Brokers {
		nodes[b.NodeID] = domain.Node{ID: b.NodeID, Host: b.Host, Port: b.Port, Rack: b.Rack}
	}

	byName := make(map[string]*domain.TopicDescription, len(resp.Topics))
	for _, t := range resp.Topics {
		if t.Topic == nil {
			continue
		}
		name := *t.Topic
		if err := kerr.ErrorForCode(t.ErrorCode); err != nil {
			return nil, errors.Wrapf(err, "describe topic %q", name)
		}
		byName[name] = describeTopic(name, t, nodes, opts)
	}

	if len(requested) == 0 {
		out := make([]*domain.TopicDescription, 0, len(byName))
		for _, d := range byName {
			out = append(out, d)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
		return out, nil
	}

	out := make([]*domain.TopicDescription, 0, len(requested))
	for _, name := range requested {
		d, ok := byName[name]
		if !ok {
			return nil, errors.Wrapf(kerr.UnknownTopicOrPartition, "describe topic %q", name)
		}
		out = append(out, d)
	}
	return out, nil
}

func describeTopic(name string, t kmsg.MetadataResponseTopic, nodes map[int32]domain.Node, opts domain.DescribeOptions) *domain.TopicDescription {
	parts := make([]kmsg.MetadataResponseTopicPartition, len(t.Partitions))
	copy(parts, t.Partitions)
	sort.Slice(parts, func(i, j int) bool { return parts[i].Partition < parts[j].Partition })

	infos := make([]domain.TopicPartitionInfo, 0, len(parts))
	for _, p := range parts {
		info := domain.TopicPartitionInfo{
			Partition: p.Partition,
			Replicas:  lookupNodes(p.Replicas, nodes),
			ISR:       lookupNodes(p.ISR, nodes),
		}
		if p.Leader >= 0 {
			leader := lookupNode(p.Leader, nodes)
			info.Leader = &leader
		}
		infos = append(infos, info)
	}

	var id *domain.TopicID
	if tid := domain.TopicID(t.TopicID); !tid.IsZero() {
		id = &tid
	}

	var ops domain.ACLOperationSet
	if opts.IncludeAuthorizedOperations {
		ops = domain.ACLOperationsFromBitfield(t.AuthorizedOperations)
	}

	return domain.NewTopicDescription(t.IsInternal, name, infos, id, ops)
}

// lookupNode resolves a broker id; brokers absent from the response yield a
// node with no address.
func lookupNode(id int32, nodes map[int32]domain.Node) domain.Node {
	if n, ok := nodes[id]; ok {
		return n
	}
	return domain.Node{ID: id, Port: -1}
}

func lookupNodes(ids []int32, nodes map[int32]domain.Node) []domain.Node {
	out := make([]domain.Node, len(ids))
	for i, id := range ids {
		out[i] = lookupNode(id, nodes)
	}
	return out
}
