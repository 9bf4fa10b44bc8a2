package domain

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TopicID is the 128-bit identifier a cluster assigns to a topic. It survives
// renames, unlike the topic name.
type TopicID [16]byte

var (
	// ZeroTopicID is never assigned to a topic.
	ZeroTopicID = TopicID{}
	// MetadataTopicID is reserved for the cluster metadata log.
	MetadataTopicID = TopicID{15: 1}
)

// NewTopicID returns a random id that is neither reserved nor renders with a
// leading '-', which command line tools would mistake for a flag.
func NewTopicID() TopicID {
	for {
		id := TopicID(uuid.New())
		if id == ZeroTopicID || id == MetadataTopicID || strings.HasPrefix(id.String(), "-") {
			continue
		}
		return id
	}
}

// ParseTopicID parses either the canonical 22 character form or an RFC 4122
// hyphenated UUID.
func ParseTopicID(s string) (TopicID, error) {
	var id TopicID
	if len(s) == 22 {
		b, err := base64.RawURLEncoding.DecodeString(s)
		if err != nil {
			return id, fmt.Errorf("invalid topic id %q: %w", s, err)
		}
		copy(id[:], b)
		return id, nil
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return id, fmt.Errorf("invalid topic id %q: %w", s, err)
	}
	return TopicID(u), nil
}

// String returns the canonical form: unpadded URL-safe base64.
func (t TopicID) String() string {
	return base64.RawURLEncoding.EncodeToString(t[:])
}

// UUID returns the id as a uuid.UUID, mostly for hyphenated display.
func (t TopicID) UUID() uuid.UUID { return uuid.UUID(t) }

func (t TopicID) IsZero() bool { return t == ZeroTopicID }

func (t TopicID) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TopicID) UnmarshalText(b []byte) error {
	id, err := ParseTopicID(string(b))
	if err != nil {
		return err
	}
	*t = id
	return nil
}
