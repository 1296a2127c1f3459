// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package testutils

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ava-labs/avalanche-contract-deployer/pkg/models"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/crypto"
	"github.com/stretchr/testify/require"
)

// well known key used by the local network, never funded on any public network
const FixturePrivateKey = "56289e99c94b6912bfc12adc093c9b51124f0dc54ac7a766b2bc5ccf558d8027"

func FixtureKey(t *testing.T) *ecdsa.PrivateKey {
	pk, err := crypto.HexToECDSA(FixturePrivateKey)
	require.NoError(t, err)
	return pk
}

func FixtureAddress(t *testing.T) common.Address {
	return crypto.PubkeyToAddress(FixtureKey(t).PublicKey)
}

func FixtureCredential(t *testing.T) models.Credential {
	return models.NewCredential(FixtureKey(t))
}

// FujiProfile is the fuji profile pointing to a fake endpoint
func FujiProfile() models.NetworkProfile {
	return models.NetworkProfile{
		Name:               "fuji",
		RPCEndpoint:        "http://127.0.0.1:9650/ext/bc/C/rpc",
		ChainID:            models.FujiChainID,
		ExplorerAPIBase:    models.FujiExplorerAPIBase,
		ExplorerBrowserURL: models.FujiExplorerBrowserURL,
	}
}

func GenerateEthAddrs(count int) ([]common.Address, error) {
	addrs := make([]common.Address, count)
	for i := 0; i < count; i++ {
		pk, err := crypto.GenerateKey()
		if err != nil {
			return nil, err
		}
		addrs[i] = crypto.PubkeyToAddress(pk.PublicKey)
	}
	return addrs, nil
}
