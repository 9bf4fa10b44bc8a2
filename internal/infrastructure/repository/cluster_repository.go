package repository

import (
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/OliveiraNt/topicscope/internal/config"
	"github.com/OliveiraNt/topicscope/internal/domain"
	"github.com/OliveiraNt/topicscope/internal/utils"
	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 350 * time.Millisecond

// ClusterRepository holds the configured clusters and one client per cluster.
type ClusterRepository struct {
	mu         sync.RWMutex
	clients    map[string]domain.KafkaClient
	clientCfgs map[string]config.ClusterConfig
	configData config.FileConfig
	configPath string
	watcher    *fsnotify.Watcher
	factory    domain.ClientFactory
}

// NewClusterRepository creates a new cluster repository
func NewClusterRepository(configPath string, factory domain.ClientFactory) *ClusterRepository {
	return &ClusterRepository{
		clients:    make(map[string]domain.KafkaClient),
		clientCfgs: make(map[string]config.ClusterConfig),
		configPath: configPath,
		factory:    factory,
	}
}

// LoadFromFile loads configuration from file and reconciles clients with it.
func (r *ClusterRepository) LoadFromFile() error {
	cfg, err := config.ReadConfig(r.configPath)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.configData = cfg
	r.reconcile(cfg)
	return nil
}

// FindByName retrieves a cluster configuration by name
func (r *ClusterRepository) FindByName(name string) (config.ClusterConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.configData.Clusters {
		if c.Name == name {
			return c, true
		}
	}
	return config.ClusterConfig{}, false
}

// FindAll retrieves all cluster configurations
func (r *ClusterRepository) FindAll() []config.ClusterConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]config.ClusterConfig, len(r.configData.Clusters))
	copy(out, r.configData.Clusters)
	return out
}

// GetClient returns a Kafka client for the given cluster name
func (r *ClusterRepository) GetClient(name string) (domain.KafkaClient, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[name]
	return client, ok
}

// DescribeOptions returns the describe settings of the loaded file.
func (r *ClusterRepository) DescribeOptions() domain.DescribeOptions {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return domain.DescribeOptions{
		IncludeAuthorizedOperations: r.configData.Describe.WantsAuthorizedOperations(),
		Timeout:                     r.configData.Describe.EffectiveTimeout(),
	}
}

// Watch sets a fsnotify watcher on the file for hot reload
func (r *ClusterRepository) Watch() error {
	abs, err := filepath.Abs(r.configPath)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// editors replace files on save, so watch the directory
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return err
	}

	r.mu.Lock()
	r.watcher = w
	r.mu.Unlock()

	go r.watchLoop(w, abs)
	return nil
}

func (r *ClusterRepository) watchLoop(w *fsnotify.Watcher, abs string) {
	reload := func() {
		for i := 0; i < 10; i++ {
			if _, err := os.Stat(abs); err == nil {
				break
			}
			time.Sleep(100 * time.Millisecond)
		}

		utils.Logger.Info("config file changed", "path", abs)
		if err := r.LoadFromFile(); err != nil {
			utils.Logger.Error("failed to reload config", "path", abs, "err", err)
		}
	}

	var timer *time.Timer
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Name != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer == nil {
				timer = time.AfterFunc(debounceDelay, reload)
			} else {
				timer.Reset(debounceDelay)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			utils.Logger.Warn("config watcher error", "err", err)
		}
	}
}

// Close stops the watcher and closes every client.
func (r *ClusterRepository) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.watcher != nil {
		_ = r.watcher.Close()
		r.watcher = nil
	}
	for name, client := range r.clients {
		client.Close()
		delete(r.clients, name)
		delete(r.clientCfgs, name)
	}
}

// reconcile synchronizes clients with configuration. Callers hold r.mu.
func (r *ClusterRepository) reconcile(cfg config.FileConfig) {
	existing := make(map[string]struct{}, len(cfg.Clusters))
	for _, c := range cfg.Clusters {
		existing[c.Name] = struct{}{}

		if cur, ok := r.clients[c.Name]; ok {
			if clusterConfigEqual(r.clientCfgs[c.Name], c) {
				continue
			}
			cur.Close()
			delete(r.clients, c.Name)
			delete(r.clientCfgs, c.Name)
		}

		client, err := r.factory.CreateClient(c)
		if err != nil {
			utils.Logger.Error("failed to create client", "cluster", c.Name, "err", err)
			continue
		}
		r.clients[c.Name] = client
		r.clientCfgs[c.Name] = c
	}

	for name, client := range r.clients {
		if _, ok := existing[name]; !ok {
			client.Close()
			delete(r.clients, name)
			delete(r.clientCfgs, name)
		}
	}
}

// clusterConfigEqual ignores broker order.
func clusterConfigEqual(a, b config.ClusterConfig) bool {
	if !equalStrings(a.Brokers, b.Brokers) || a.ClientID != b.ClientID {
		return false
	}
	return reflect.DeepEqual(a.TLS, b.TLS) &&
		reflect.DeepEqual(a.SASL, b.SASL) &&
		reflect.DeepEqual(a.AWS, b.AWS)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	m := make(map[string]int)
	for _, s := range a {
		m[s]++
	}
	for _, s := range b {
		if m[s] == 0 {
			return false
		}
		m[s]--
	}
	return true
}
