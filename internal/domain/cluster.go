// Package domain defines the entities of topicscope: the TopicDescription value
// object with its partition, node and authorization types, the cluster view
// exposed by the API, and the abstractions over Kafka clients and the cluster
// registry.
package domain

// Cluster is a configured Kafka cluster together with its reachability.
type Cluster struct {
	Name     string   `json:"name"`
	Brokers  []string `json:"brokers"`
	IsOnline bool     `json:"is_online"`
	AuthType string   `json:"auth_type"`
}
