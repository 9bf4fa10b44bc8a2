package domain_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/OliveiraNt/topicscope/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func strPtr(s string) *string { return &s }

func node(id int32) domain.Node {
	return domain.Node{ID: id, Host: "broker-" + string(rune('0'+id)), Port: 9092}
}

func partitionInfo(id int32, leader int32, replicas ...int32) domain.TopicPartitionInfo {
	l := node(leader)
	nodes := make([]domain.Node, len(replicas))
	for i, r := range replicas {
		nodes[i] = node(r)
	}
	return domain.TopicPartitionInfo{Partition: id, Leader: &l, Replicas: nodes, ISR: nodes[:1]}
}

func roundTrip(t *testing.T, d *domain.TopicDescription) *domain.TopicDescription {
	t.Helper()
	got, err := domain.TopicDescriptionFromJSON(d.ToJSON())
	require.NoError(t, err)
	return got
}

func TestTopicDescription_RoundTrip(t *testing.T) {
	t.Parallel()
	id := domain.NewTopicID()
	rack := node(3)
	rack.Rack = strPtr("eu-west-1a")

	tests := []struct {
		name string
		desc *domain.TopicDescription
	}{
		{"empty", &domain.TopicDescription{}},
		{"all fields", domain.NewTopicDescription(true, "__consumer_offsets",
			[]domain.TopicPartitionInfo{partitionInfo(0, 1, 1, 2), partitionInfo(1, 2, 2, 1)},
			&id, domain.NewACLOperationSet(domain.ACLOperationRead, domain.ACLOperationDescribe))},
		{"unset id and operations", domain.NewTopicDescription(false, "orders",
			[]domain.TopicPartitionInfo{partitionInfo(0, 1, 1)}, nil, nil)},
		{"known empty operations", new(domain.TopicDescription).SetName("locked").SetAuthorizedOperations(domain.NewACLOperationSet())},
		{"empty partitions", new(domain.TopicDescription).SetName("fresh").SetPartitions([]domain.TopicPartitionInfo{})},
		{"leaderless partition with rack", new(domain.TopicDescription).SetName("r").SetPartitions([]domain.TopicPartitionInfo{
			{Partition: 0, Replicas: []domain.Node{rack, {ID: 9, Port: -1}}, ISR: []domain.Node{}},
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.desc, roundTrip(t, tt.desc))

			b, err := json.Marshal(tt.desc)
			require.NoError(t, err)
			var viaBytes domain.TopicDescription
			require.NoError(t, json.Unmarshal(b, &viaBytes))
			require.Equal(t, tt.desc, &viaBytes)
		})
	}
}

func TestTopicDescription_OmitsUnsetFields(t *testing.T) {
	t.Parallel()
	doc := (&domain.TopicDescription{}).ToJSON()
	require.NotContains(t, doc, domain.KeyTopicID)
	require.NotContains(t, doc, domain.KeyAuthorizedOperations)
	require.NotContains(t, doc, domain.KeyPartitions)

	b, err := json.Marshal(&domain.TopicDescription{})
	require.NoError(t, err)
	require.NotContains(t, string(b), "null")

	doc = new(domain.TopicDescription).SetAuthorizedOperations(domain.NewACLOperationSet()).ToJSON()
	require.Equal(t, []any{}, doc[domain.KeyAuthorizedOperations])
}

func TestTopicDescription_UnsetStaysUnset(t *testing.T) {
	t.Parallel()
	got := roundTrip(t, new(domain.TopicDescription).SetName("orders"))
	require.Nil(t, got.TopicID())
	require.Nil(t, got.AuthorizedOperations())
	require.False(t, got.HasAuthorizedOperations())

	got = roundTrip(t, new(domain.TopicDescription).SetAuthorizedOperations(domain.NewACLOperationSet()))
	require.True(t, got.HasAuthorizedOperations())
	require.Empty(t, got.AuthorizedOperations())
}

func TestTopicDescription_FluentSetters(t *testing.T) {
	t.Parallel()
	d := &domain.TopicDescription{}
	id := domain.NewTopicID()
	parts := []domain.TopicPartitionInfo{partitionInfo(0, 1, 1)}
	ops := domain.NewACLOperationSet(domain.ACLOperationWrite)

	require.Same(t, d, d.SetInternal(true))
	require.Same(t, d, d.SetName("orders"))
	require.Same(t, d, d.SetPartitions(parts))
	require.Same(t, d, d.SetTopicID(&id))
	require.Same(t, d, d.SetAuthorizedOperations(ops))

	require.True(t, d.IsInternal())
	require.Equal(t, "orders", d.Name())
	require.Equal(t, parts, d.Partitions())
	require.Same(t, &id, d.TopicID())
	require.Equal(t, ops, d.AuthorizedOperations())

	d.SetTopicID(nil).SetAuthorizedOperations(nil)
	require.Nil(t, d.TopicID())
	require.False(t, d.HasAuthorizedOperations())
}

func TestNewTopicDescription_SharesReferences(t *testing.T) {
	t.Parallel()
	parts := []domain.TopicPartitionInfo{partitionInfo(0, 1, 1)}
	ops := domain.NewACLOperationSet()
	d := domain.NewTopicDescription(false, "orders", parts, nil, ops)

	parts[0].Partition = 7
	ops[domain.ACLOperationAlter] = struct{}{}
	require.Equal(t, int32(7), d.Partitions()[0].Partition)
	require.True(t, d.AuthorizedOperations().Contains(domain.ACLOperationAlter))
}

func TestTopicDescription_PreservesPartitionOrder(t *testing.T) {
	t.Parallel()
	doc := domain.Document{
		"partitions": []any{
			domain.Document{"partition": 2},
			domain.Document{"partition": 0},
			domain.Document{"partition": 2},
		},
	}
	d, err := domain.TopicDescriptionFromJSON(doc)
	require.NoError(t, err)
	require.Len(t, d.Partitions(), 3)
	assert.Equal(t, int32(2), d.Partitions()[0].Partition)
	assert.Equal(t, int32(0), d.Partitions()[1].Partition)
	assert.Equal(t, int32(2), d.Partitions()[2].Partition)
}

func TestTopicDescription_OrdersScenario(t *testing.T) {
	t.Parallel()
	id := domain.NewTopicID()
	p0 := partitionInfo(0, 1, 1, 2)
	d := domain.NewTopicDescription(false, "orders", []domain.TopicPartitionInfo{p0}, &id, nil)

	doc := d.ToJSON()
	require.Equal(t, false, doc["isInternal"])
	require.Equal(t, "orders", doc["name"])
	require.Equal(t, []any{p0.ToJSON()}, doc["partitions"])
	require.Equal(t, id.String(), doc["topicId"])
	require.NotContains(t, doc, "authorizedOperations")
	require.Len(t, doc, 4)
}

func TestTopicDescriptionFromJSON_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		doc  domain.Document
		key  string
	}{
		{"numeric name", domain.Document{"name": 42}, "name"},
		{"string internal flag", domain.Document{"isInternal": "true"}, "isInternal"},
		{"partitions not an array", domain.Document{"partitions": "0,1"}, "partitions"},
		{"partition not an object", domain.Document{"partitions": []any{1}}, "partitions[0]"},
		{"fractional partition id", domain.Document{"partitions": []any{domain.Document{"partition": 1.5}}}, "partitions[0].partition"},
		{"partition id overflow", domain.Document{"partitions": []any{domain.Document{"partition": int64(1) << 40}}}, "partitions[0].partition"},
		{"leader not an object", domain.Document{"partitions": []any{domain.Document{"leader": "b1"}}}, "partitions[0].leader"},
		{"bad leader port", domain.Document{"partitions": []any{domain.Document{"leader": domain.Document{"port": "9092"}}}}, "partitions[0].leader.port"},
		{"bad replica", domain.Document{"partitions": []any{domain.Document{"replicas": []any{domain.Document{"host": 1}}}}}, "partitions[0].replicas[0].host"},
		{"bad isr", domain.Document{"partitions": []any{domain.Document{"isr": []any{"b1"}}}}, "partitions[0].isr[0]"},
		{"numeric topic id", domain.Document{"topicId": 12}, "topicId"},
		{"malformed topic id", domain.Document{"topicId": "not-an-id"}, "topicId"},
		{"operations not an array", domain.Document{"authorizedOperations": "READ"}, "authorizedOperations"},
		{"numeric operation", domain.Document{"authorizedOperations": []any{3}}, "authorizedOperations[0]"},
		{"unknown operation", domain.Document{"authorizedOperations": []any{"READ", "read"}}, "authorizedOperations[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := domain.TopicDescriptionFromJSON(tt.doc)
			require.Nil(t, d)
			var de *domain.DecodeError
			require.True(t, errors.As(err, &de), "got %v", err)
			require.Equal(t, tt.key, de.Key)
			require.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestTopicDescriptionFromJSON_Lenient(t *testing.T) {
	t.Parallel()
	d, err := domain.TopicDescriptionFromJSON(domain.Document{
		"name":       "orders",
		"unknown":    []any{1, 2},
		"topicId":    "8e0c4f3e-6b1a-4c9e-9d7e-2f1b5a6c7d8e",
		"isInternal": true,
		"partitions": []map[string]any{
			{"partition": json.Number("0"), "leader": map[string]any{"id": float64(1), "host": "b1", "port": uint16(9092), "isEmpty": false}},
		},
		"authorizedOperations": []string{"DESCRIBE"},
	})
	require.NoError(t, err)
	require.Equal(t, "orders", d.Name())
	require.True(t, d.IsInternal())
	require.Equal(t, "8e0c4f3e-6b1a-4c9e-9d7e-2f1b5a6c7d8e", d.TopicID().UUID().String())
	require.Equal(t, int32(9092), d.Partitions()[0].Leader.Port)
	require.True(t, d.AuthorizedOperations().Contains(domain.ACLOperationDescribe))
}

func TestTopicDescription_UnmarshalJSONError(t *testing.T) {
	t.Parallel()
	d := new(domain.TopicDescription).SetName("keep")
	err := json.Unmarshal([]byte(`{"name":"other","partitions":[{"partition":"0"}]}`), d)

	var de *domain.DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, "partitions[0].partition", de.Key)
	require.Equal(t, "keep", d.Name(), "failed decode must not modify the receiver")
}

func TestTopicDescription_String(t *testing.T) {
	t.Parallel()
	id, err := domain.ParseTopicID("AAAAAAAAAAAAAAAAAAAAAg")
	require.NoError(t, err)
	d := domain.NewTopicDescription(false, "orders", []domain.TopicPartitionInfo{partitionInfo(0, 1, 1)}, &id,
		domain.NewACLOperationSet(domain.ACLOperationWrite, domain.ACLOperationRead))

	s := d.String()
	require.True(t, strings.HasPrefix(s, "TopicDescription{isInternal=false,name=orders,partitions=[(partition=0, leader=broker-1:9092 (id: 1 rack: null)"), s)
	require.True(t, strings.HasSuffix(s, ",topicId=AAAAAAAAAAAAAAAAAAAAAg,authorizedOperations=[READ, WRITE]}"), s)

	empty := (&domain.TopicDescription{}).String()
	require.Equal(t, "TopicDescription{isInternal=false,name=,partitions=[],topicId=null,authorizedOperations=null}", empty)
}

func TestTopicDescription_MarshalYAML(t *testing.T) {
	t.Parallel()
	d := new(domain.TopicDescription).SetName("orders").SetAuthorizedOperations(domain.NewACLOperationSet(domain.ACLOperationRead))
	b, err := yaml.Marshal(d)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, yaml.Unmarshal(b, &out))
	require.Equal(t, "orders", out["name"])
	require.Equal(t, []any{"READ"}, out["authorizedOperations"])
	require.NotContains(t, out, "topicId")
}
