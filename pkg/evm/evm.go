// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package evm

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	"github.com/ava-labs/avalanche-contract-deployer/pkg/utils"
	"github.com/ava-labs/avalanchego/utils/logging"
	ethereum "github.com/ava-labs/libevm"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
	"github.com/ava-labs/libevm/crypto"
	"github.com/ava-labs/libevm/ethclient"
	"go.uber.org/zap"
)

const (
	BaseFeeFactor  = 2
	PrivateKeySize = 32
)

var (
	ErrNoScheme          = errors.New("url has no scheme")
	ErrUnsupportedScheme = errors.New("unsupported url scheme")
	ErrMissingHost       = errors.New("url has no host")
	ErrInvalidPrivateKey = errors.New("invalid private key")
	// ErrReceiptTimeout matches context.DeadlineExceeded too
	ErrReceiptTimeout = fmt.Errorf("receipt wait timed out: %w", context.DeadlineExceeded)

	supportedSchemes = []string{"http", "https", "ws", "wss"}
)

// used to mock the connection function
var ethclientDialContext = ethclient.DialContext

// Client is the subset of the ethclient API used to deploy contracts.
// *ethclient.Client satisfies it
type Client interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	Close()
}

// Dialer opens a Client to an rpc url
type Dialer func(ctx context.Context, rpcURL string) (Client, error)

// indicates if the given rpc url has schema or not
func HasScheme(rpcURL string) (bool, error) {
	if parsedURL, err := url.Parse(rpcURL); err != nil {
		if !strings.Contains(err.Error(), "first path segment in URL cannot contain colon") {
			return false, err
		}
		return false, nil
	} else {
		return strings.Contains(rpcURL, "://") && parsedURL.Scheme != "", nil
	}
}

// ValidateRPCURL checks [rpcURL] is an absolute http(s)/ws(s) url with a host
func ValidateRPCURL(rpcURL string) error {
	hasScheme, err := HasScheme(rpcURL)
	if err != nil {
		return err
	}
	if !hasScheme {
		return fmt.Errorf("%w: %q", ErrNoScheme, rpcURL)
	}
	parsedURL, err := url.Parse(rpcURL)
	if err != nil {
		return err
	}
	if !utils.Belongs(supportedSchemes, strings.ToLower(parsedURL.Scheme)) {
		return fmt.Errorf("%w %q, expected one of %v", ErrUnsupportedScheme, parsedURL.Scheme, supportedSchemes)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%w: %q", ErrMissingHost, rpcURL)
	}
	return nil
}

// Dial connects an evm client to the given [rpcURL]. It does not retry:
// an unreachable endpoint is reported right away
func Dial(ctx context.Context, rpcURL string) (Client, error) {
	if err := ValidateRPCURL(rpcURL); err != nil {
		return nil, fmt.Errorf("failure connecting to %s: %w", rpcURL, err)
	}
	client, err := ethclientDialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failure connecting to %s: %w", rpcURL, err)
	}
	return client, nil
}

// ParsePrivateKey parses a 32 bytes hex encoded private key, with or without
// the 0x prefix
func ParsePrivateKey(privateKey string) (*ecdsa.PrivateKey, error) {
	privateKey = utils.TrimHexPrefix(strings.TrimSpace(privateKey))
	if privateKey == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPrivateKey)
	}
	bs, err := hex.DecodeString(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: not an hex string", ErrInvalidPrivateKey)
	}
	if len(bs) != PrivateKeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPrivateKey, PrivateKeySize, len(bs))
	}
	pk, err := crypto.ToECDSA(bs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPrivateKey, err)
	}
	return pk, nil
}

// returns the public address associated with [privateKey]
func PrivateKeyToAddress(privateKey string) (common.Address, error) {
	pk, err := ParsePrivateKey(privateKey)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(pk.PublicKey), nil
}

// FeeParams holds the network default fee settings for a tx. GasPrice is
// only set for chains without a base fee
type FeeParams struct {
	GasFeeCap *big.Int
	GasTipCap *big.Int
	GasPrice  *big.Int
}

func (f FeeParams) Dynamic() bool {
	return f.GasPrice == nil
}

// SuggestFees returns the network suggested fees. For london enabled chains,
// gasFeeCap = baseFee*[BaseFeeFactor] + gasTipCap
func SuggestFees(ctx context.Context, client Client) (FeeParams, error) {
	header, err := client.HeaderByNumber(ctx, nil)
	if err != nil {
		return FeeParams{}, fmt.Errorf("failure obtaining latest header: %w", err)
	}
	if header.BaseFee == nil {
		gasPrice, err := client.SuggestGasPrice(ctx)
		if err != nil {
			return FeeParams{}, fmt.Errorf("failure obtaining gas price: %w", err)
		}
		return FeeParams{GasPrice: gasPrice}, nil
	}
	gasTipCap, err := client.SuggestGasTipCap(ctx)
	if err != nil {
		return FeeParams{}, fmt.Errorf("failure obtaining gas tip cap: %w", err)
	}
	gasFeeCap := new(big.Int).Mul(header.BaseFee, big.NewInt(BaseFeeFactor))
	gasFeeCap.Add(gasFeeCap, gasTipCap)
	return FeeParams{GasFeeCap: gasFeeCap, GasTipCap: gasTipCap}, nil
}

// Timers hands out the channels receipt polling waits on
type Timers interface {
	// NewTicker returns a channel firing every [d] and its stop function
	NewTicker(d time.Duration) (<-chan time.Time, func())
	// After returns a channel firing once after [d]
	After(d time.Duration) <-chan time.Time
}

type wallClockTimers struct{}

// WallClockTimers are backed by the time package
var WallClockTimers Timers = wallClockTimers{}

func (wallClockTimers) NewTicker(d time.Duration) (<-chan time.Time, func()) {
	ticker := time.NewTicker(d)
	return ticker.C, ticker.Stop
}

func (wallClockTimers) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// WaitForReceipt polls for [txHash] receipt every [pollInterval] until it is
// found, [timeout] elapses (0 waits indefinitely) or [ctx] is done. Not found
// and transient rpc errors keep the polling going. A nil [timers] uses the wall clock
func WaitForReceipt(
	ctx context.Context,
	log logging.Logger,
	client Client,
	txHash common.Hash,
	pollInterval time.Duration,
	timeout time.Duration,
	timers Timers,
) (*types.Receipt, error) {
	if timers == nil {
		timers = WallClockTimers
	}
	ticks, stop := timers.NewTicker(pollInterval)
	defer stop()
	var deadline <-chan time.Time
	if timeout > 0 {
		deadline = timers.After(timeout)
	}
	for {
		receipt, err := transactionReceipt(ctx, client, txHash)
		switch {
		case err == nil && receipt != nil:
			return receipt, nil
		case err == nil, errors.Is(err, ethereum.NotFound):
			log.Debug("transaction not yet mined", zap.Stringer("txHash", txHash))
		default:
			log.Debug("failure obtaining receipt", zap.Stringer("txHash", txHash), zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline:
			return nil, ErrReceiptTimeout
		case <-ticks:
		}
	}
}

// each poll is bounded so a hung rpc call can't outlive the wait timeout
func transactionReceipt(ctx context.Context, client Client, txHash common.Hash) (*types.Receipt, error) {
	ctx, cancel := utils.GetAPIContext(ctx)
	defer cancel()
	return client.TransactionReceipt(ctx, txHash)
}

// transform a tx operation error into an error that contains:
// - the [err] itself
// - the [tx] hash (or information on the tx not being submitted)
// - another descriptive [msg], together with formated [args]
func TransactionError(tx *types.Transaction, err error, msg string, args ...interface{}) error {
	msgSuffix := ": %w"
	if tx != nil {
		msgSuffix += fmt.Sprintf(" (txHash=%s)", tx.Hash().String())
	} else {
		msgSuffix += " (tx failed to be submitted)"
	}
	args = append(args, err)
	return fmt.Errorf(msg+msgSuffix, args...)
}
