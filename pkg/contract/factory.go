// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ava-labs/avalanche-contract-deployer/pkg/clierrors"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/evm"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/models"
	ethereum "github.com/ava-labs/libevm"
	"github.com/ava-labs/libevm/accounts/abi"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
	"github.com/ava-labs/libevm/crypto"
)

var errNilArtifact = errors.New("no artifact given")

// Factory binds an artifact to a network and a signer. It holds no
// connection: rpc calls only happen when a Client is handed to Transaction
type Factory struct {
	artifact   *Artifact
	abi        abi.ABI
	network    models.NetworkProfile
	credential models.Credential
	signer     types.Signer
}

// Bind validates [artifact] and ties it to [network] and [credential]
func Bind(
	artifact *Artifact,
	network models.NetworkProfile,
	credential models.Credential,
) (*Factory, error) {
	if artifact == nil {
		return nil, clierrors.NewBindError(clierrors.ErrMalformedArtifact, errNilArtifact)
	}
	parsed, err := artifact.ParseABI()
	if err != nil {
		return nil, clierrors.NewBindError(clierrors.ErrMalformedArtifact, err)
	}
	if credential.Empty() {
		return nil, clierrors.NewConfigError(clierrors.ErrInvalidCredential, fmt.Errorf("no signing key for network %s", network.Name))
	}
	if network.ChainID == 0 {
		return nil, clierrors.NewConfigError(clierrors.ErrInvalidEndpoint, fmt.Errorf("network %s has no chain id", network.Name))
	}
	return &Factory{
		artifact:   artifact,
		abi:        parsed,
		network:    network,
		credential: credential,
		signer:     types.LatestSignerForChainID(new(big.Int).SetUint64(network.ChainID)),
	}, nil
}

func (f *Factory) Artifact() *Artifact {
	return f.artifact
}

func (f *Factory) ABI() abi.ABI {
	return f.abi
}

func (f *Factory) Network() models.NetworkProfile {
	return f.network
}

// From is the deployer address
func (f *Factory) From() common.Address {
	return f.credential.Address()
}

// ContractAddress is the address a creation tx from the deployer with [nonce] gets
func (f *Factory) ContractAddress(nonce uint64) common.Address {
	return crypto.CreateAddress(f.From(), nonce)
}

// PackConstructorArgs abi encodes [args] as constructor inputs
func (f *Factory) PackConstructorArgs(args ...interface{}) ([]byte, error) {
	packed, err := f.abi.Pack("", args...)
	if err != nil {
		return nil, fmt.Errorf("failure packing constructor args: %w", err)
	}
	return packed, nil
}

// DeployData is the creation tx payload: bytecode followed by the encoded args
func (f *Factory) DeployData(args ...interface{}) ([]byte, error) {
	packed, err := f.PackConstructorArgs(args...)
	if err != nil {
		return nil, err
	}
	data := make([]byte, 0, len(f.artifact.Bytecode)+len(packed))
	data = append(data, f.artifact.Bytecode...)
	return append(data, packed...), nil
}

// Transaction builds and signs the creation tx with [nonce], using the network
// default gas estimation and fees
func (f *Factory) Transaction(
	ctx context.Context,
	client evm.Client,
	nonce uint64,
	args ...interface{},
) (*types.Transaction, error) {
	data, err := f.DeployData(args...)
	if err != nil {
		return nil, err
	}
	fees, err := evm.SuggestFees(ctx, client)
	if err != nil {
		return nil, err
	}
	gasLimit, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From:      f.From(),
		GasPrice:  fees.GasPrice,
		GasFeeCap: fees.GasFeeCap,
		GasTipCap: fees.GasTipCap,
		Data:      data,
	})
	if err != nil {
		return nil, fmt.Errorf("failure estimating gas: %w", err)
	}
	var tx *types.Transaction
	if fees.Dynamic() {
		tx = types.NewTx(&types.DynamicFeeTx{
			ChainID:   new(big.Int).SetUint64(f.network.ChainID),
			Nonce:     nonce,
			GasTipCap: fees.GasTipCap,
			GasFeeCap: fees.GasFeeCap,
			Gas:       gasLimit,
			Value:     new(big.Int),
			Data:      data,
		})
	} else {
		tx = types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: fees.GasPrice,
			Gas:      gasLimit,
			Value:    new(big.Int),
			Data:     data,
		})
	}
	signedTx, err := types.SignTx(tx, f.signer, f.credential.PrivateKey())
	if err != nil {
		return nil, fmt.Errorf("failure signing deployment tx: %w", err)
	}
	return signedTx, nil
}
