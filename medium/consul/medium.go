package consul

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"sync"

	"github.com/hashicorp/consul/api"

	"github.com/mwantia/sectorfs/medium"
)

// ConsulMedium stores resources in the Consul KV store under a
// configurable prefix, one key per resource.
//
// Consul KV limits values to 512KB, so this medium suits small
// configuration-style filesystems rather than bulk content.
type ConsulMedium struct {
	mu     sync.RWMutex
	client *api.Client
	kv     *api.KV

	config *ConsulMediumConfig
}

// ConsulMediumConfig contains configuration options for the Consul medium.
type ConsulMediumConfig struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string

	// Token for Consul ACL authentication (optional)
	Token string

	// Datacenter to use (optional)
	Datacenter string

	// Prefix for all keys in Consul KV (default: "sectorfs/")
	Prefix string
}

func NewConsulMedium(config *ConsulMediumConfig) (*ConsulMedium, error) {
	if config == nil {
		config = &ConsulMediumConfig{}
	}

	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}
	if config.Prefix == "" {
		config.Prefix = "sectorfs/"
	}

	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &ConsulMedium{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

// Name returns the identifier name defined for this medium.
func (*ConsulMedium) Name() string {
	return "consul"
}

// Open verifies the Consul agent is reachable.
func (cm *ConsulMedium) Open(ctx context.Context) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if _, err := cm.client.Agent().NodeName(); err != nil {
		return err
	}

	return nil
}

func (cm *ConsulMedium) Close(ctx context.Context) error {
	return nil
}

// Capabilities returns a list of capabilities supported by this medium.
func (cm *ConsulMedium) Capabilities() *medium.Capabilities {
	return &medium.Capabilities{
		Capabilities: []medium.Capability{
			medium.CapabilityPersistent,
			medium.CapabilityRemote,
		},
		// Consul KV limits values to 512KB
		MaxResourceSize: 524288,
	}
}

func (cm *ConsulMedium) buildKey(name string) string {
	return cm.config.Prefix + name
}

func (cm *ConsulMedium) OpenRead(ctx context.Context, name string) (io.ReadCloser, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	pair, _, err := cm.kv.Get(cm.buildKey(name), (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, fs.ErrNotExist
	}

	return io.NopCloser(bytes.NewReader(pair.Value)), nil
}

func (cm *ConsulMedium) OpenAppend(ctx context.Context, name string) (io.WriteCloser, error) {
	return medium.NewCommitWriter(func(buf []byte) error {
		cm.mu.Lock()
		defer cm.mu.Unlock()

		key := cm.buildKey(name)

		pair, _, err := cm.kv.Get(key, (&api.QueryOptions{}).WithContext(ctx))
		if err != nil {
			return err
		}

		var content []byte
		if pair != nil {
			content = pair.Value
		}

		_, err = cm.kv.Put(&api.KVPair{
			Key:   key,
			Value: append(content[:len(content):len(content)], buf...),
		}, (&api.WriteOptions{}).WithContext(ctx))

		return err
	}), nil
}

func (cm *ConsulMedium) OpenTruncate(ctx context.Context, name string) (io.WriteCloser, error) {
	return medium.NewCommitWriter(func(buf []byte) error {
		cm.mu.Lock()
		defer cm.mu.Unlock()

		_, err := cm.kv.Put(&api.KVPair{
			Key:   cm.buildKey(name),
			Value: buf,
		}, (&api.WriteOptions{}).WithContext(ctx))

		return err
	}), nil
}
