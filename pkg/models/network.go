// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package models

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/crypto"
)

const (
	FujiChainID            uint64 = 43113
	FujiCChainEndpoint            = "https://api.avax-test.network/ext/bc/C/rpc"
	FujiExplorerAPIBase           = "https://api.routescan.io/v2/network/testnet/evm/43113/etherscan"
	FujiExplorerBrowserURL        = "https://testnet.snowtrace.io"
)

// NetworkProfile is a named bundle of rpc endpoint and chain id. Once resolved it
// is treated as a value and never mutated
type NetworkProfile struct {
	Name               string
	RPCEndpoint        string
	ChainID            uint64
	ExplorerAPIBase    string
	ExplorerBrowserURL string
}

func (n NetworkProfile) String() string {
	return fmt.Sprintf("%s (chain id %d)", n.Name, n.ChainID)
}

func (n NetworkProfile) HasExplorer() bool {
	return n.ExplorerAPIBase != ""
}

// AddressURL returns the block explorer page for [address], or "" if
// the profile has no browser url
func (n NetworkProfile) AddressURL(address common.Address) string {
	if n.ExplorerBrowserURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/address/%s", n.ExplorerBrowserURL, address.Hex())
}

// Credential holds the signing key in memory. It never prints its content
type Credential struct {
	privateKey *ecdsa.PrivateKey
}

func NewCredential(privateKey *ecdsa.PrivateKey) Credential {
	return Credential{privateKey: privateKey}
}

func (c Credential) PrivateKey() *ecdsa.PrivateKey {
	return c.privateKey
}

func (c Credential) Empty() bool {
	return c.privateKey == nil
}

func (c Credential) Address() common.Address {
	if c.privateKey == nil {
		return common.Address{}
	}
	return crypto.PubkeyToAddress(c.privateKey.PublicKey)
}

func (Credential) String() string {
	return "[redacted]"
}

func (Credential) GoString() string {
	return "[redacted]"
}
