package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ACLOperation is an action a principal may be authorized to perform on a
// resource. Values match the Kafka protocol codes.
type ACLOperation int8

const (
	ACLOperationUnknown ACLOperation = iota
	ACLOperationAny
	ACLOperationAll
	ACLOperationRead
	ACLOperationWrite
	ACLOperationCreate
	ACLOperationDelete
	ACLOperationAlter
	ACLOperationDescribe
	ACLOperationClusterAction
	ACLOperationDescribeConfigs
	ACLOperationAlterConfigs
	ACLOperationIdempotentWrite
	ACLOperationCreateTokens
	ACLOperationDescribeTokens
)

var aclOperationNames = [...]string{
	ACLOperationUnknown:         "UNKNOWN",
	ACLOperationAny:             "ANY",
	ACLOperationAll:             "ALL",
	ACLOperationRead:            "READ",
	ACLOperationWrite:           "WRITE",
	ACLOperationCreate:          "CREATE",
	ACLOperationDelete:          "DELETE",
	ACLOperationAlter:           "ALTER",
	ACLOperationDescribe:        "DESCRIBE",
	ACLOperationClusterAction:   "CLUSTER_ACTION",
	ACLOperationDescribeConfigs: "DESCRIBE_CONFIGS",
	ACLOperationAlterConfigs:    "ALTER_CONFIGS",
	ACLOperationIdempotentWrite: "IDEMPOTENT_WRITE",
	ACLOperationCreateTokens:    "CREATE_TOKENS",
	ACLOperationDescribeTokens:  "DESCRIBE_TOKENS",
}

func (o ACLOperation) String() string {
	if o < 0 || int(o) >= len(aclOperationNames) {
		return "UNKNOWN"
	}
	return aclOperationNames[o]
}

// ParseACLOperation maps an operation name back to its value. Names are
// matched exactly; an unrecognised name is an error rather than UNKNOWN.
func ParseACLOperation(s string) (ACLOperation, error) {
	for i, name := range aclOperationNames {
		if name == s {
			return ACLOperation(i), nil
		}
	}
	return ACLOperationUnknown, fmt.Errorf("unknown acl operation %q", s)
}

// ACLOperationSet is the set of operations a principal may perform on a topic.
// A nil set means authorization data was not requested or not returned; a
// non-nil empty set means the principal has no permissions.
type ACLOperationSet map[ACLOperation]struct{}

// NewACLOperationSet returns a non-nil set holding ops.
func NewACLOperationSet(ops ...ACLOperation) ACLOperationSet {
	s := make(ACLOperationSet, len(ops))
	for _, op := range ops {
		s[op] = struct{}{}
	}
	return s
}

func (s ACLOperationSet) Contains(op ACLOperation) bool {
	_, ok := s[op]
	return ok
}

// Sorted returns the operations ordered by protocol code.
func (s ACLOperationSet) Sorted() []ACLOperation {
	out := make([]ACLOperation, 0, len(s))
	for op := range s {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s ACLOperationSet) String() string {
	if s == nil {
		return "null"
	}
	names := make([]string, 0, len(s))
	for _, op := range s.Sorted() {
		names = append(names, op.String())
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// Bitfield packs the set into the int32 form used by metadata responses.
func (s ACLOperationSet) Bitfield() int32 {
	if s == nil {
		return math.MinInt32
	}
	var bits int32
	for op := range s {
		if op >= 0 && op < 32 {
			bits |= 1 << uint(op)
		}
	}
	return bits
}

// ACLOperationsFromBitfield decodes the authorized operations bitfield of a
// metadata response. math.MinInt32 signals that the broker did not include
// authorization data and yields nil. UNKNOWN, ANY and ALL never describe a
// concrete permission and are dropped.
func ACLOperationsFromBitfield(bits int32) ACLOperationSet {
	if bits == math.MinInt32 {
		return nil
	}
	s := NewACLOperationSet()
	for i := 0; i < 32; i++ {
		if bits&(1<<uint(i)) == 0 {
			continue
		}
		if i >= len(aclOperationNames) {
			continue
		}
		op := ACLOperation(i)
		switch op {
		case ACLOperationUnknown, ACLOperationAny, ACLOperationAll:
			continue
		}
		s[op] = struct{}{}
	}
	return s
}
