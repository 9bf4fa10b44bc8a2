package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Document keys of a TopicDescription.
const (
	KeyIsInternal           = "isInternal"
	KeyName                 = "name"
	KeyPartitions           = "partitions"
	KeyTopicID              = "topicId"
	KeyAuthorizedOperations = "authorizedOperations"
)

// TopicDescription is the metadata of a single topic as returned by a describe
// call: whether it is internal, its partition layout, its id and the operations
// the caller is authorized to perform on it.
//
// The zero value is an empty description. Setters assign without copying or
// validating and return the receiver so calls can be chained. A description is
// owned by whoever built it; it is safe for concurrent readers only once no
// more setters are called.
type TopicDescription struct {
	isInternal           bool
	name                 string
	partitions           []TopicPartitionInfo
	topicID              *TopicID
	authorizedOperations ACLOperationSet
}

// NewTopicDescription builds a fully populated description. partitions must be
// ordered by partition id; topicID and authorizedOperations may be nil when the
// information is unknown. Slices and sets are shared with the caller.
func NewTopicDescription(isInternal bool, name string, partitions []TopicPartitionInfo, topicID *TopicID, authorizedOperations ACLOperationSet) *TopicDescription {
	return &TopicDescription{
		isInternal:           isInternal,
		name:                 name,
		partitions:           partitions,
		topicID:              topicID,
		authorizedOperations: authorizedOperations,
	}
}

// IsInternal reports whether the topic is used by the platform itself.
func (d *TopicDescription) IsInternal() bool { return d.isInternal }

func (d *TopicDescription) SetInternal(internal bool) *TopicDescription {
	d.isInternal = internal
	return d
}

func (d *TopicDescription) Name() string { return d.name }

func (d *TopicDescription) SetName(name string) *TopicDescription {
	d.name = name
	return d
}

// Partitions returns the partitions where index i describes partition i.
func (d *TopicDescription) Partitions() []TopicPartitionInfo { return d.partitions }

func (d *TopicDescription) SetPartitions(partitions []TopicPartitionInfo) *TopicDescription {
	d.partitions = partitions
	return d
}

// TopicID returns nil when the id is not known.
func (d *TopicDescription) TopicID() *TopicID { return d.topicID }

func (d *TopicDescription) SetTopicID(id *TopicID) *TopicDescription {
	d.topicID = id
	return d
}

// AuthorizedOperations returns nil when authorization data is unknown.
func (d *TopicDescription) AuthorizedOperations() ACLOperationSet { return d.authorizedOperations }

// HasAuthorizedOperations distinguishes "unknown" from "known to be empty".
func (d *TopicDescription) HasAuthorizedOperations() bool { return d.authorizedOperations != nil }

// SetAuthorizedOperations replaces the authorized operations. Passing nil
// marks them unknown; use NewACLOperationSet() for an explicit empty set.
func (d *TopicDescription) SetAuthorizedOperations(ops ACLOperationSet) *TopicDescription {
	d.authorizedOperations = ops
	return d
}

// ToJSON encodes the description. Unset fields are left out of the document
// entirely so that a decode of the result yields the same description.
func (d *TopicDescription) ToJSON() Document {
	doc := Document{
		KeyIsInternal: d.isInternal,
		KeyName:       d.name,
	}
	if d.partitions != nil {
		parts := make([]any, len(d.partitions))
		for i, p := range d.partitions {
			parts[i] = p.ToJSON()
		}
		doc[KeyPartitions] = parts
	}
	if d.topicID != nil {
		doc[KeyTopicID] = d.topicID.String()
	}
	if d.authorizedOperations != nil {
		ops := make([]any, 0, len(d.authorizedOperations))
		for _, op := range d.authorizedOperations.Sorted() {
			ops = append(ops, op.String())
		}
		doc[KeyAuthorizedOperations] = ops
	}
	return doc
}

// TopicDescriptionFromJSON decodes a document produced by ToJSON or by any
// producer using the same keys. Unknown keys are ignored and missing keys leave
// the field unset. A value of the wrong shape fails with *DecodeError.
func TopicDescriptionFromJSON(doc Document) (*TopicDescription, error) {
	d := &TopicDescription{}
	if err := d.fromJSON(doc); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *TopicDescription) fromJSON(doc Document) error {
	var out TopicDescription
	var err error
	if out.isInternal, _, err = docBool(doc, "", KeyIsInternal); err != nil {
		return err
	}
	if out.name, _, err = docString(doc, "", KeyName); err != nil {
		return err
	}

	items, ok, err := docSlice(doc, "", KeyPartitions)
	if err != nil {
		return err
	}
	if ok {
		out.partitions = make([]TopicPartitionInfo, len(items))
		for i, item := range items {
			key := indexKey(KeyPartitions, i)
			sub, ok := item.(map[string]any)
			if !ok {
				return mismatch(key, "object", item)
			}
			if out.partitions[i], err = TopicPartitionInfoFromJSON(sub, key); err != nil {
				return err
			}
		}
	}

	rawID, ok, err := docString(doc, "", KeyTopicID)
	if err != nil {
		return err
	}
	if ok {
		id, err := ParseTopicID(rawID)
		if err != nil {
			return &DecodeError{Key: KeyTopicID, Err: err}
		}
		out.topicID = &id
	}

	names, ok, err := docSlice(doc, "", KeyAuthorizedOperations)
	if err != nil {
		return err
	}
	if ok {
		out.authorizedOperations = NewACLOperationSet()
		for i, item := range names {
			key := indexKey(KeyAuthorizedOperations, i)
			name, ok := item.(string)
			if !ok {
				return mismatch(key, "string", item)
			}
			op, err := ParseACLOperation(name)
			if err != nil {
				return &DecodeError{Key: key, Err: err}
			}
			out.authorizedOperations[op] = struct{}{}
		}
	}

	*d = out
	return nil
}

func (d *TopicDescription) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToJSON())
}

// UnmarshalJSON keeps numbers as json.Number so large or fractional values are
// rejected instead of being rounded through float64.
func (d *TopicDescription) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	return d.fromJSON(doc)
}

// MarshalYAML renders the same document as ToJSON.
func (d *TopicDescription) MarshalYAML() (any, error) {
	return d.ToJSON(), nil
}

func (d *TopicDescription) String() string {
	var b strings.Builder
	b.WriteString("TopicDescription{isInternal=")
	b.WriteString(strconv.FormatBool(d.isInternal))
	b.WriteString(",name=")
	b.WriteString(d.name)
	b.WriteString(",partitions=")
	b.WriteString(fmt.Sprint(d.partitions))
	b.WriteString(",topicId=")
	if d.topicID != nil {
		b.WriteString(d.topicID.String())
	} else {
		b.WriteString("null")
	}
	b.WriteString(",authorizedOperations=")
	b.WriteString(d.authorizedOperations.String())
	b.WriteString("}")
	return b.String()
}
