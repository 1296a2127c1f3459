// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package resolver turns the process configuration into validated network
// profiles and signing credentials
package resolver

import (
	"fmt"
	"strings"

	"github.com/ava-labs/avalanche-contract-deployer/pkg/clierrors"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/config"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/constants"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/evm"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/models"
)

type Resolver struct {
	conf *config.Config
}

func New(conf *config.Config) *Resolver {
	return &Resolver{conf: conf}
}

// Names returns the known network names
func (r *Resolver) Names() []string {
	return r.conf.NetworkNames()
}

// DefaultName is the network used when none is asked for
func (r *Resolver) DefaultName() string {
	if r.conf.NetworkName != "" {
		return r.conf.NetworkName
	}
	return constants.DefaultNetworkName
}

// Resolve validates and returns the profile named [name], together with its
// signing credential. An empty [name] selects the default network
func (r *Resolver) Resolve(name string) (models.NetworkProfile, models.Credential, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = r.DefaultName()
	}
	network, ok := r.conf.Networks[name]
	if !ok {
		return models.NetworkProfile{}, models.Credential{}, clierrors.NewConfigError(
			clierrors.ErrUnknownNetwork,
			fmt.Errorf("%q is not one of %v", name, r.Names()),
		)
	}
	if err := evm.ValidateRPCURL(network.RPCEndpoint); err != nil {
		return models.NetworkProfile{}, models.Credential{}, clierrors.NewConfigError(
			clierrors.ErrInvalidEndpoint,
			fmt.Errorf("network %s: %w", name, err),
		)
	}
	if network.ChainID == 0 {
		return models.NetworkProfile{}, models.Credential{}, clierrors.NewConfigError(
			clierrors.ErrInvalidEndpoint,
			fmt.Errorf("network %s: chain id is not set", name),
		)
	}
	privateKeyStr := network.PrivateKey
	if privateKeyStr == "" {
		privateKeyStr = r.conf.PrivateKey
	}
	// the key itself never goes into the error
	privateKey, err := evm.ParsePrivateKey(privateKeyStr)
	if err != nil {
		return models.NetworkProfile{}, models.Credential{}, clierrors.NewConfigError(
			clierrors.ErrInvalidCredential,
			fmt.Errorf("network %s: %w", name, err),
		)
	}
	profile := models.NetworkProfile{
		Name:               name,
		RPCEndpoint:        network.RPCEndpoint,
		ChainID:            network.ChainID,
		ExplorerAPIBase:    network.ExplorerAPIBase,
		ExplorerBrowserURL: network.ExplorerBrowserURL,
	}
	return profile, models.NewCredential(privateKey), nil
}
