package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultDescribeTimeout bounds a describe call when the file does not set one.
const DefaultDescribeTimeout = 10 * time.Second

// ClusterConfig holds cluster connectivity and security configuration.
type ClusterConfig struct {
	Name     string      `yaml:"name" json:"name"`
	Brokers  []string    `yaml:"brokers" json:"brokers"`
	ClientID string      `yaml:"client_id,omitempty" json:"client_id,omitempty"`
	TLS      *TLSConfig  `yaml:"tls,omitempty" json:"tls,omitempty"`
	SASL     *SASLConfig `yaml:"sasl,omitempty" json:"sasl,omitempty"`
	AWS      *AWSConfig  `yaml:"aws,omitempty" json:"aws,omitempty"`
}

type TLSConfig struct {
	Enabled            bool   `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	CAFile             string `yaml:"ca_file,omitempty" json:"ca_file,omitempty"`
	CertFile           string `yaml:"cert_file,omitempty" json:"cert_file,omitempty"`
	KeyFile            string `yaml:"key_file,omitempty" json:"key_file,omitempty"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify,omitempty" json:"insecure_skip_verify,omitempty"`
}

// SASLConfig holds SASL credentials, given inline or through env var names.
// Env vars win when both are set.
type SASLConfig struct {
	Mechanism   string `yaml:"mechanism,omitempty" json:"mechanism,omitempty"` // PLAIN, SCRAM-SHA-256, SCRAM-SHA-512
	Username    string `yaml:"username,omitempty" json:"username,omitempty"`
	Password    string `yaml:"password,omitempty" json:"password,omitempty"`
	UsernameEnv string `yaml:"username_env,omitempty" json:"username_env,omitempty"`
	PasswordEnv string `yaml:"password_env,omitempty" json:"password_env,omitempty"`
}

// AWSConfig enables MSK IAM auth. Credentials come from the named env vars,
// falling back to the standard AWS ones.
type AWSConfig struct {
	IAM             bool   `yaml:"iam,omitempty" json:"iam,omitempty"`
	Region          string `yaml:"region,omitempty" json:"region,omitempty"`
	AccessKeyEnv    string `yaml:"access_key_env,omitempty" json:"access_key_env,omitempty"`
	SecretKeyEnv    string `yaml:"secret_key_env,omitempty" json:"secret_key_env,omitempty"`
	SessionTokenEnv string `yaml:"session_token_env,omitempty" json:"session_token_env,omitempty"`
}

// DescribeConfig controls how topic descriptions are fetched.
type DescribeConfig struct {
	// IncludeAuthorizedOperations defaults to true when omitted.
	IncludeAuthorizedOperations *bool         `yaml:"include_authorized_operations,omitempty" json:"include_authorized_operations,omitempty"`
	Timeout                     time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

type FileConfig struct {
	Clusters []ClusterConfig `yaml:"clusters" json:"clusters"`
	Describe DescribeConfig  `yaml:"describe,omitempty" json:"describe,omitempty"`
}

func ReadConfig(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func WriteConfig(path string, cfg FileConfig) error {
	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// WantsAuthorizedOperations resolves the include_authorized_operations default.
func (d DescribeConfig) WantsAuthorizedOperations() bool {
	return d.IncludeAuthorizedOperations == nil || *d.IncludeAuthorizedOperations
}

// EffectiveTimeout returns the configured timeout or DefaultDescribeTimeout.
func (d DescribeConfig) EffectiveTimeout() time.Duration {
	if d.Timeout <= 0 {
		return DefaultDescribeTimeout
	}
	return d.Timeout
}

// GetAuthType returns a human-readable authentication type based on the cluster config
func (c *ClusterConfig) GetAuthType() string {
	if c.AWS != nil && c.AWS.IAM {
		return "AWS IAM"
	}

	if c.SASL != nil && c.SASL.Mechanism != "" {
		if c.TLS != nil && c.TLS.Enabled {
			return "SASL/" + c.SASL.Mechanism + " + TLS"
		}
		return "SASL/" + c.SASL.Mechanism
	}

	if c.TLS != nil && c.TLS.Enabled {
		if c.TLS.CertFile != "" && c.TLS.KeyFile != "" {
			return "mTLS"
		}
		return "TLS"
	}

	return "PLAINTEXT"
}
