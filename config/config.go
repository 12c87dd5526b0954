package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfigFile        = "CONFIG_FILE"
	EnvLogLevel          = "LOG_LEVEL"
	EnvRestPort          = "REST_PORT"
	EnvDatabasePath      = "DB_PATH"
	EnvBootstrapServers  = "BOOTSTRAP_SERVERS"
	EnvConsumerGroupId   = "CONSUMER_GROUP_ID"
	EnvWorldId           = "WORLD_ID"
	EnvChannelId         = "CHANNEL_ID"
	EnvInventoryCapacity = "INVENTORY_CAPACITY"
	EnvOutboundDepth     = "SESSION_OUTBOUND_DEPTH"

	DefaultInventoryCapacity = 48
	DefaultOutboundDepth     = 256
)

type Model struct {
	LogLevel          string   `yaml:"logLevel"`
	RestPort          string   `yaml:"restPort"`
	DatabasePath      string   `yaml:"databasePath"`
	BootstrapServers  []string `yaml:"bootstrapServers"`
	ConsumerGroupId   string   `yaml:"consumerGroupId"`
	WorldId           byte     `yaml:"worldId"`
	ChannelId         byte     `yaml:"channelId"`
	InventoryCapacity uint32   `yaml:"inventoryCapacity"`
	OutboundDepth     int      `yaml:"outboundDepth"`
}

func defaults() Model {
	return Model{
		LogLevel:          "info",
		RestPort:          "8080",
		DatabasePath:      "inventory.db",
		BootstrapServers:  []string{"localhost:9092"},
		ConsumerGroupId:   "Inventory Service",
		InventoryCapacity: DefaultInventoryCapacity,
		OutboundDepth:     DefaultOutboundDepth,
	}
}

// Load reads the file named by CONFIG_FILE, when set, over the defaults and
// then applies environment overrides.
func Load() (Model, error) {
	c := defaults()
	if path, ok := os.LookupEnv(EnvConfigFile); ok && path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return c, err
		}
		if c, err = Parse(b); err != nil {
			return c, err
		}
	}
	return c, c.applyEnv()
}

// Parse decodes a YAML document over the defaults.
func Parse(b []byte) (Model, error) {
	c := defaults()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, err
	}
	if c.InventoryCapacity == 0 {
		return c, errors.New("inventory capacity must be positive")
	}
	return c, nil
}

func (c *Model) applyEnv() error {
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvRestPort); ok {
		c.RestPort = v
	}
	if v, ok := os.LookupEnv(EnvDatabasePath); ok {
		c.DatabasePath = v
	}
	if v, ok := os.LookupEnv(EnvBootstrapServers); ok {
		c.BootstrapServers = strings.Split(v, ",")
	}
	if v, ok := os.LookupEnv(EnvConsumerGroupId); ok {
		c.ConsumerGroupId = v
	}
	if v, ok := os.LookupEnv(EnvWorldId); ok {
		id, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return err
		}
		c.WorldId = byte(id)
	}
	if v, ok := os.LookupEnv(EnvChannelId); ok {
		id, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return err
		}
		c.ChannelId = byte(id)
	}
	if v, ok := os.LookupEnv(EnvInventoryCapacity); ok {
		capacity, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return err
		}
		if capacity == 0 {
			return errors.New("inventory capacity must be positive")
		}
		c.InventoryCapacity = uint32(capacity)
	}
	if v, ok := os.LookupEnv(EnvOutboundDepth); ok {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.OutboundDepth = depth
	}
	return nil
}
