package kafka

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"os"
	"time"

	"github.com/OliveiraNt/topicscope/internal/config"
	"github.com/OliveiraNt/topicscope/internal/domain"
	"github.com/pkg/errors"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl"
	"github.com/twmb/franz-go/pkg/sasl/aws"
	"github.com/twmb/franz-go/pkg/sasl/plain"
	"github.com/twmb/franz-go/pkg/sasl/scram"
)

// Client implements domain.KafkaClient using franz-go.
type Client struct {
	client *kgo.Client
	admin  *Admin
	config config.ClusterConfig
}

// NewClient creates a new Kafka client from configuration.
func NewClient(cfg config.ClusterConfig) (*Client, error) {
	opts, err := clientOpts(cfg)
	if err != nil {
		return nil, err
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "create client for cluster %q", cfg.Name)
	}

	return &Client{
		client: client,
		admin:  NewAdmin(client),
		config: cfg,
	}, nil
}

func clientOpts(cfg config.ClusterConfig) ([]kgo.Opt, error) {
	var opts []kgo.Opt

	if cfg.ClientID != "" {
		opts = append(opts, kgo.ClientID(cfg.ClientID))
	}
	if len(cfg.Brokers) > 0 {
		opts = append(opts, kgo.SeedBrokers(cfg.Brokers...))
	}
	if cfg.TLS != nil && cfg.TLS.Enabled {
		tlsCfg, err := buildTLSConfig(cfg.TLS)
		if err != nil {
			return nil, errors.Wrap(err, "tls config")
		}
		opts = append(opts, kgo.DialTLSConfig(tlsCfg))
	}
	if cfg.SASL != nil && cfg.SASL.Mechanism != "" {
		if mech := buildSASLMechanism(cfg.SASL); mech != nil {
			opts = append(opts, kgo.SASL(mech))
		}
	}
	if cfg.AWS != nil && cfg.AWS.IAM {
		if mech := buildAWSMechanism(cfg.AWS); mech != nil {
			opts = append(opts, kgo.SASL(mech))
		}
	}
	return opts, nil
}

// IsHealthy checks if the cluster is reachable.
func (c *Client) IsHealthy() bool {
	if c == nil || c.admin == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := c.admin.BrokerMetadata(ctx)
	return err == nil
}

// ListTopics returns topic names, sorted.
func (c *Client) ListTopics(ctx context.Context, showInternal bool) ([]string, error) {
	if c == nil || c.admin == nil {
		return nil, nil
	}
	return c.admin.ListTopics(ctx, showInternal)
}

// DescribeTopics returns the description of each topic.
func (c *Client) DescribeTopics(ctx context.Context, opts domain.DescribeOptions, topics ...string) ([]*domain.TopicDescription, error) {
	if c == nil || c.admin == nil {
		return nil, nil
	}
	return c.admin.DescribeTopics(ctx, opts, topics...)
}

// Close releases resources
func (c *Client) Close() {
	if c != nil && c.client != nil {
		c.client.Close()
	}
}

// GetConfig returns the cluster configuration
func (c *Client) GetConfig() config.ClusterConfig {
	return c.config
}

// buildTLSConfig reads cert files and builds a tls.Config
func buildTLSConfig(t *config.TLSConfig) (*tls.Config, error) {
	rootCAs := x509.NewCertPool()
	if t.CAFile != "" {
		b, err := os.ReadFile(t.CAFile)
		if err != nil {
			return nil, err
		}
		if !rootCAs.AppendCertsFromPEM(b) {
			return nil, errors.Errorf("no certificates found in %s", t.CAFile)
		}
	}

	cfg := &tls.Config{
		RootCAs:            rootCAs,
		InsecureSkipVerify: t.InsecureSkipVerify,
	}

	if t.CertFile != "" && t.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(t.CertFile, t.KeyFile)
		if err != nil {
			return nil, err
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	return cfg, nil
}

// buildSASLMechanism returns nil for unknown mechanisms.
func buildSASLMechanism(s *config.SASLConfig) sasl.Mechanism {
	username := envOr(s.UsernameEnv, s.Username)
	password := envOr(s.PasswordEnv, s.Password)

	switch s.Mechanism {
	case "PLAIN", "plain":
		return plain.Auth{User: username, Pass: password}.AsMechanism()
	case "SCRAM-SHA-256", "SCRAM-SHA256", "scram-sha-256":
		return scram.Auth{User: username, Pass: password}.AsSha256Mechanism()
	case "SCRAM-SHA-512", "SCRAM-SHA512", "scram-sha-512":
		return scram.Auth{User: username, Pass: password}.AsSha512Mechanism()
	default:
		return nil
	}
}

// buildAWSMechanism returns nil when no credentials can be found.
func buildAWSMechanism(a *config.AWSConfig) sasl.Mechanism {
	access := envOr(a.AccessKeyEnv, os.Getenv("AWS_ACCESS_KEY_ID"))
	secret := envOr(a.SecretKeyEnv, os.Getenv("AWS_SECRET_ACCESS_KEY"))
	session := envOr(a.SessionTokenEnv, os.Getenv("AWS_SESSION_TOKEN"))

	if access == "" || secret == "" {
		return nil
	}

	return aws.Auth{
		AccessKey:    access,
		SecretKey:    secret,
		SessionToken: session,
	}.AsManagedStreamingIAMMechanism()
}

// envOr returns the value of env var name when set and non-empty, else fallback.
func envOr(name, fallback string) string {
	if name != "" {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return fallback
}
