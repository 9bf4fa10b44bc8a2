package domain

import (
	"strconv"
	"strings"
)

// Node is a broker as seen from a partition's leader or replica list.
type Node struct {
	ID   int32
	Host string
	Port int32
	Rack *string
}

// IsEmpty reports whether the node carries no usable address, which happens
// for replicas hosted on brokers missing from the metadata response.
func (n Node) IsEmpty() bool {
	return n.Host == "" || n.Port < 0
}

func (n Node) HasRack() bool { return n.Rack != nil }

func (n Node) String() string {
	rack := "null"
	if n.Rack != nil {
		rack = *n.Rack
	}
	return n.Host + ":" + strconv.Itoa(int(n.Port)) + " (id: " + strconv.Itoa(int(n.ID)) + " rack: " + rack + ")"
}

// ToJSON encodes the node. idString, hasRack and isEmpty are derived values
// kept for readers of the document; decoding ignores them.
func (n Node) ToJSON() Document {
	doc := Document{
		"id":       n.ID,
		"idString": strconv.Itoa(int(n.ID)),
		"host":     n.Host,
		"port":     n.Port,
		"hasRack":  n.HasRack(),
		"isEmpty":  n.IsEmpty(),
	}
	if n.Rack != nil {
		doc["rack"] = *n.Rack
	}
	return doc
}

// NodeFromJSON decodes a node document. prefix is the key path of doc inside
// the enclosing document and only feeds error messages.
func NodeFromJSON(doc Document, prefix string) (Node, error) {
	var n Node
	var err error
	if n.ID, _, err = docInt32(doc, prefix, "id"); err != nil {
		return Node{}, err
	}
	if n.Host, _, err = docString(doc, prefix, "host"); err != nil {
		return Node{}, err
	}
	if n.Port, _, err = docInt32(doc, prefix, "port"); err != nil {
		return Node{}, err
	}
	rack, ok, err := docString(doc, prefix, "rack")
	if err != nil {
		return Node{}, err
	}
	if ok {
		n.Rack = &rack
	}
	return n, nil
}

// TopicPartitionInfo holds leadership and replica placement for one partition.
type TopicPartitionInfo struct {
	Partition int32
	Leader    *Node
	Replicas  []Node
	ISR       []Node
}

func (p TopicPartitionInfo) String() string {
	leader := "none"
	if p.Leader != nil {
		leader = p.Leader.String()
	}
	return "(partition=" + strconv.Itoa(int(p.Partition)) +
		", leader=" + leader +
		", replicas=" + joinNodes(p.Replicas) +
		", isr=" + joinNodes(p.ISR) + ")"
}

func (p TopicPartitionInfo) ToJSON() Document {
	doc := Document{"partition": p.Partition}
	if p.Leader != nil {
		doc["leader"] = p.Leader.ToJSON()
	}
	if p.Replicas != nil {
		doc["replicas"] = nodesToJSON(p.Replicas)
	}
	if p.ISR != nil {
		doc["isr"] = nodesToJSON(p.ISR)
	}
	return doc
}

func TopicPartitionInfoFromJSON(doc Document, prefix string) (TopicPartitionInfo, error) {
	var p TopicPartitionInfo
	var err error
	if p.Partition, _, err = docInt32(doc, prefix, "partition"); err != nil {
		return TopicPartitionInfo{}, err
	}
	leader, ok, err := docDocument(doc, prefix, "leader")
	if err != nil {
		return TopicPartitionInfo{}, err
	}
	if ok {
		n, err := NodeFromJSON(leader, joinKey(prefix, "leader"))
		if err != nil {
			return TopicPartitionInfo{}, err
		}
		p.Leader = &n
	}
	if p.Replicas, err = nodesFromJSON(doc, prefix, "replicas"); err != nil {
		return TopicPartitionInfo{}, err
	}
	if p.ISR, err = nodesFromJSON(doc, prefix, "isr"); err != nil {
		return TopicPartitionInfo{}, err
	}
	return p, nil
}

func nodesToJSON(nodes []Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = n.ToJSON()
	}
	return out
}

func nodesFromJSON(doc Document, prefix, key string) ([]Node, error) {
	items, ok, err := docSlice(doc, prefix, key)
	if err != nil || !ok {
		return nil, err
	}
	path := joinKey(prefix, key)
	nodes := make([]Node, len(items))
	for i, item := range items {
		sub, ok := item.(map[string]any)
		if !ok {
			return nil, mismatch(indexKey(path, i), "object", item)
		}
		if nodes[i], err = NodeFromJSON(sub, indexKey(path, i)); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

func joinNodes(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}
