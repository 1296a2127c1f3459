// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package evm

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ava-labs/avalanche-contract-deployer/internal/mocks"
	"github.com/ava-labs/avalanche-contract-deployer/internal/testutils"
	"github.com/ava-labs/avalanchego/utils/logging"
	ethereum "github.com/ava-labs/libevm"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
	"github.com/ava-labs/libevm/crypto"
	"github.com/ava-labs/libevm/ethclient"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testKey = "56289e99c94b6912bfc12adc093c9b51124f0dc54ac7a766b2bc5ccf558d8027"

func TestHasScheme(t *testing.T) {
	tests := []struct {
		url       string
		hasScheme bool
	}{
		{url: "https://api.avax-test.network/ext/bc/C/rpc", hasScheme: true},
		{url: "ws://127.0.0.1:9650/ext/bc/C/ws", hasScheme: true},
		{url: "127.0.0.1:9650", hasScheme: false},
		{url: "api.avax-test.network/ext/bc/C/rpc", hasScheme: false},
	}
	for _, tt := range tests {
		hasScheme, err := HasScheme(tt.url)
		require.NoError(t, err, tt.url)
		require.Equal(t, tt.hasScheme, hasScheme, tt.url)
	}
}

func TestValidateRPCURL(t *testing.T) {
	tests := []struct {
		url string
		err error
	}{
		{url: "https://api.avax-test.network/ext/bc/C/rpc"},
		{url: "HTTP://127.0.0.1:9650/ext/bc/C/rpc"},
		{url: "wss://node.example.org/ext/bc/C/ws"},
		{url: "127.0.0.1:9650", err: ErrNoScheme},
		{url: "", err: ErrNoScheme},
		{url: "ftp://node.example.org", err: ErrUnsupportedScheme},
		{url: "http://", err: ErrMissingHost},
	}
	for _, tt := range tests {
		err := ValidateRPCURL(tt.url)
		if tt.err == nil {
			require.NoError(t, err, tt.url)
		} else {
			require.ErrorIs(t, err, tt.err, tt.url)
		}
	}
}

func TestParsePrivateKey(t *testing.T) {
	expected, err := crypto.HexToECDSA(testKey)
	require.NoError(t, err)

	for _, key := range []string{testKey, "0x" + testKey, "  " + testKey + "\n"} {
		pk, err := ParsePrivateKey(key)
		require.NoError(t, err)
		require.True(t, expected.Equal(pk))
	}

	for _, key := range []string{"", "0x", "xyz", testKey[:62], testKey + "00", "0000000000000000000000000000000000000000000000000000000000000000"} {
		_, err := ParsePrivateKey(key)
		require.ErrorIs(t, err, ErrInvalidPrivateKey, key)
	}
}

func TestPrivateKeyToAddress(t *testing.T) {
	pk, err := crypto.HexToECDSA(testKey)
	require.NoError(t, err)
	addr, err := PrivateKeyToAddress("0x" + testKey)
	require.NoError(t, err)
	require.Equal(t, crypto.PubkeyToAddress(pk.PublicKey), addr)
}

func TestDialDoesNotRetry(t *testing.T) {
	calls := 0
	dialErr := errors.New("connection refused")
	prev := ethclientDialContext
	ethclientDialContext = func(context.Context, string) (*ethclient.Client, error) {
		calls++
		return nil, dialErr
	}
	t.Cleanup(func() { ethclientDialContext = prev })

	_, err := Dial(context.Background(), "http://127.0.0.1:9650/ext/bc/C/rpc")
	require.ErrorIs(t, err, dialErr)
	require.Equal(t, 1, calls)

	_, err = Dial(context.Background(), "127.0.0.1:9650")
	require.ErrorIs(t, err, ErrNoScheme)
	require.Equal(t, 1, calls)
}

func TestSuggestFeesDynamic(t *testing.T) {
	client := mocks.NewEVMClient(t)
	client.On("HeaderByNumber", mock.Anything, mock.Anything).
		Return(&types.Header{BaseFee: big.NewInt(25_000_000_000)}, nil)
	client.On("SuggestGasTipCap", mock.Anything).Return(big.NewInt(1_000_000_000), nil)

	fees, err := SuggestFees(context.Background(), client)
	require.NoError(t, err)
	require.True(t, fees.Dynamic())
	require.Equal(t, big.NewInt(1_000_000_000), fees.GasTipCap)
	require.Equal(t, big.NewInt(51_000_000_000), fees.GasFeeCap)
	require.Nil(t, fees.GasPrice)
}

func TestSuggestFeesLegacy(t *testing.T) {
	client := mocks.NewEVMClient(t)
	client.On("HeaderByNumber", mock.Anything, mock.Anything).Return(&types.Header{}, nil)
	client.On("SuggestGasPrice", mock.Anything).Return(big.NewInt(225_000_000_000), nil)

	fees, err := SuggestFees(context.Background(), client)
	require.NoError(t, err)
	require.False(t, fees.Dynamic())
	require.Equal(t, big.NewInt(225_000_000_000), fees.GasPrice)
}

func TestSuggestFeesError(t *testing.T) {
	client := mocks.NewEVMClient(t)
	rpcErr := errors.New("rpc down")
	client.On("HeaderByNumber", mock.Anything, mock.Anything).Return(nil, rpcErr)

	_, err := SuggestFees(context.Background(), client)
	require.ErrorIs(t, err, rpcErr)
}

func TestWaitForReceipt(t *testing.T) {
	client := mocks.NewEVMClient(t)
	txHash := common.HexToHash("0x1234")
	receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(12345)}
	client.On("TransactionReceipt", mock.Anything, txHash).Return(nil, ethereum.NotFound).Twice()
	client.On("TransactionReceipt", mock.Anything, txHash).Return(nil, errors.New("transient")).Once()
	client.On("TransactionReceipt", mock.Anything, txHash).Return(receipt, nil).Once()

	got, err := WaitForReceipt(context.Background(), logging.NoLog{}, client, txHash, time.Millisecond, 0, nil)
	require.NoError(t, err)
	require.Equal(t, receipt, got)
}

func TestWaitForReceiptPollsOnTicks(t *testing.T) {
	require := require.New(t)
	client := mocks.NewEVMClient(t)
	txHash := common.HexToHash("0x1234")
	receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(12345)}
	client.On("TransactionReceipt", mock.Anything, txHash).Return(nil, ethereum.NotFound).Twice()
	client.On("TransactionReceipt", mock.Anything, txHash).Return(receipt, nil).Once()

	timers := testutils.NewManualTimers()
	type waitResult struct {
		receipt *types.Receipt
		err     error
	}
	done := make(chan waitResult, 1)
	go func() {
		got, err := WaitForReceipt(context.Background(), logging.NoLog{}, client, txHash, 2*time.Second, 0, timers)
		done <- waitResult{got, err}
	}()
	// each tick is received only after the previous poll returned
	timers.Ticks <- time.Time{}
	timers.Ticks <- time.Time{}
	res := <-done
	require.NoError(res.err)
	require.Equal(receipt, res.receipt)
	require.Equal([]time.Duration{2 * time.Second}, timers.Intervals())
	require.Empty(timers.Timeouts())
	client.AssertNumberOfCalls(t, "TransactionReceipt", 3)
}

func TestWaitForReceiptTimeout(t *testing.T) {
	require := require.New(t)
	client := mocks.NewEVMClient(t)
	txHash := common.HexToHash("0x1234")
	client.On("TransactionReceipt", mock.Anything, txHash).Return(nil, ethereum.NotFound)

	timers := testutils.NewManualTimers()
	done := make(chan error, 1)
	go func() {
		_, err := WaitForReceipt(context.Background(), logging.NoLog{}, client, txHash, time.Second, time.Minute, timers)
		done <- err
	}()
	timers.Ticks <- time.Time{}
	timers.Deadline <- time.Time{}
	err := <-done
	require.ErrorIs(err, ErrReceiptTimeout)
	require.ErrorIs(err, context.DeadlineExceeded)
	require.Equal([]time.Duration{time.Minute}, timers.Timeouts())
	client.AssertNumberOfCalls(t, "TransactionReceipt", 2)
}

func TestWaitForReceiptContextDone(t *testing.T) {
	client := mocks.NewEVMClient(t)
	txHash := common.HexToHash("0x1234")
	client.On("TransactionReceipt", mock.Anything, txHash).Return(nil, ethereum.NotFound)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := WaitForReceipt(ctx, logging.NoLog{}, client, txHash, time.Second, 0, testutils.NewManualTimers())
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, ErrReceiptTimeout)
}

func TestTransactionError(t *testing.T) {
	cause := errors.New("nonce too low")
	err := TransactionError(nil, cause, "failure deploying %s", "Greeter")
	require.ErrorIs(t, err, cause)
	require.Equal(t, "failure deploying Greeter: nonce too low (tx failed to be submitted)", err.Error())

	tx := types.NewTx(&types.LegacyTx{Nonce: 1, GasPrice: big.NewInt(1), Gas: 21000})
	err = TransactionError(tx, cause, "failure deploying")
	require.Contains(t, err.Error(), tx.Hash().String())
}
