package application

import "errors"

var (
	// ErrClusterNotFound is returned when a cluster is not configured
	ErrClusterNotFound = errors.New("cluster not found")

	// ErrClusterOffline is returned when a cluster has no usable client
	ErrClusterOffline = errors.New("cluster is offline")

	// ErrTopicNotFound is returned when the cluster does not know a topic
	ErrTopicNotFound = errors.New("topic not found")

	// ErrInvalidTopicName is returned for empty topic names
	ErrInvalidTopicName = errors.New("invalid topic name")
)
