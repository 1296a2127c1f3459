// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ava-labs/avalanche-contract-deployer/pkg/constants"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/models"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// NetworkConfig is the raw, unvalidated form of a network profile
type NetworkConfig struct {
	RPCEndpoint        string `mapstructure:"rpcEndpoint"`
	ChainID            uint64 `mapstructure:"chainId"`
	ExplorerAPIBase    string `mapstructure:"explorerApiBase"`
	ExplorerBrowserURL string `mapstructure:"explorerBrowserUrl"`
	// overrides the process wide private key for this network
	PrivateKey string `mapstructure:"privateKey"`
}

// Config is the process wide configuration. It is built once at startup and
// handed over explicitly to the components that need it
type Config struct {
	NetworkName         string
	PrivateKey          string
	Networks            map[string]NetworkConfig
	ConfirmationTimeout time.Duration
	PollInterval        time.Duration
	ExplorerAPIKey      string
}

// DefaultNetworks returns the built-in profiles. fuji takes its endpoint from
// RPC_URL, falling back to the public C-Chain endpoint
func DefaultNetworks(rpcURL string) map[string]NetworkConfig {
	if rpcURL == "" {
		rpcURL = models.FujiCChainEndpoint
	}
	return map[string]NetworkConfig{
		"fuji": {
			RPCEndpoint:        rpcURL,
			ChainID:            models.FujiChainID,
			ExplorerAPIBase:    models.FujiExplorerAPIBase,
			ExplorerBrowserURL: models.FujiExplorerBrowserURL,
		},
		"snowtrace": {
			RPCEndpoint:        models.FujiCChainEndpoint,
			ChainID:            models.FujiChainID,
			ExplorerAPIBase:    models.FujiExplorerAPIBase,
			ExplorerBrowserURL: models.FujiExplorerBrowserURL,
		},
	}
}

// New sets up [v] to read the recognized env variables and, if [configFile] is
// not empty, the given json config file
func New(log logging.Logger, v *viper.Viper, configFile string) error {
	v.AutomaticEnv() // RPC_URL, PRIVATE_KEY, NETWORK_NAME, ...
	v.SetDefault(constants.ConfigNetworkNameKey, constants.DefaultNetworkName)
	v.SetDefault(constants.ConfigConfirmationTimeoutMsKey, constants.DefaultConfirmationTimeout)
	v.SetDefault(constants.ConfigPollIntervalMsKey, constants.DefaultPollInterval.Milliseconds())
	if configFile == "" {
		log.Info("No config file given")
		return nil
	}
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Dir(configFile))
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failure reading config file %s: %w", configFile, err)
	}
	log.Info("Using config file", zap.String("config-file", configFile))
	return nil
}

// Load builds a Config out of [v]. Networks given on the config file are
// merged over the built-in ones
func Load(v *viper.Viper) (*Config, error) {
	networks := DefaultNetworks(v.GetString(constants.ConfigRPCURLKey))
	fileNetworks := map[string]NetworkConfig{}
	if err := v.UnmarshalKey(constants.ConfigNetworksKey, &fileNetworks); err != nil {
		return nil, fmt.Errorf("failure parsing %q config: %w", constants.ConfigNetworksKey, err)
	}
	for name, network := range fileNetworks {
		networks[strings.ToLower(name)] = network
	}
	timeoutMs := v.GetInt64(constants.ConfigConfirmationTimeoutMsKey)
	if timeoutMs < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %d", constants.ConfigConfirmationTimeoutMsKey, timeoutMs)
	}
	pollMs := v.GetInt64(constants.ConfigPollIntervalMsKey)
	if pollMs <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %d", constants.ConfigPollIntervalMsKey, pollMs)
	}
	return &Config{
		NetworkName:         strings.ToLower(v.GetString(constants.ConfigNetworkNameKey)),
		PrivateKey:          v.GetString(constants.ConfigPrivateKeyKey),
		Networks:            networks,
		ConfirmationTimeout: time.Duration(timeoutMs) * time.Millisecond,
		PollInterval:        time.Duration(pollMs) * time.Millisecond,
		ExplorerAPIKey:      v.GetString(constants.ConfigExplorerAPIKeyKey),
	}, nil
}

// NetworkNames returns the configured network names, sorted
func (c *Config) NetworkNames() []string {
	names := make([]string, 0, len(c.Networks))
	for name := range c.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
