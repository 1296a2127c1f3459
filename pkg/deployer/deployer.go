// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package deployer submits contract creation txs and follows them until they
// are confirmed or failed
package deployer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanche-contract-deployer/pkg/clierrors"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/constants"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/contract"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/evm"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/models"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/statemachine"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	errNoFactory     = errors.New("deployment request has no contract factory")
	errFailedReceipt = errors.New("failed receipt status")
)

// Request is one deployment: the bound artifact plus its constructor args
type Request struct {
	ID              string
	Factory         *contract.Factory
	ConstructorArgs []interface{}
}

func NewRequest(factory *contract.Factory, args ...interface{}) Request {
	return Request{
		ID:              uuid.NewString(),
		Factory:         factory,
		ConstructorArgs: args,
	}
}

type Option func(*Orchestrator)

// WithDialer sets how rpc clients are opened. Defaults to evm.Dial
func WithDialer(dial evm.Dialer) Option {
	return func(o *Orchestrator) { o.dial = dial }
}

func WithLogger(log logging.Logger) Option {
	return func(o *Orchestrator) { o.log = log }
}

func WithPollInterval(interval time.Duration) Option {
	return func(o *Orchestrator) { o.pollInterval = interval }
}

// WithConfirmationTimeout bounds the wait for a receipt. 0 waits indefinitely
func WithConfirmationTimeout(timeout time.Duration) Option {
	return func(o *Orchestrator) { o.confirmationTimeout = timeout }
}

func WithClock(clock *mockable.Clock) Option {
	return func(o *Orchestrator) { o.clock = clock }
}

// WithTimers sets what drives receipt polling and the confirmation timeout.
// Defaults to evm.WallClockTimers
func WithTimers(timers evm.Timers) Option {
	return func(o *Orchestrator) { o.timers = timers }
}

// WithOnSubmitted registers a callback invoked once the tx is accepted by the node
func WithOnSubmitted(f func(models.DeploymentResult)) Option {
	return func(o *Orchestrator) { o.onSubmitted = f }
}

// Orchestrator drives deployments through Created -> Submitted -> (Confirmed | Failed).
// Deploy may be called concurrently: rpc clients are shared per endpoint and
// nonce assignment is serialized per signer
type Orchestrator struct {
	log                 logging.Logger
	dial                evm.Dialer
	pollInterval        time.Duration
	confirmationTimeout time.Duration
	clock               *mockable.Clock
	timers              evm.Timers
	onSubmitted         func(models.DeploymentResult)

	clientsLock sync.Mutex
	clients     map[string]evm.Client

	inFlightLock sync.Mutex
	inFlight     map[string]struct{}

	signerLocks signerLocks
}

func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		log:          logging.NoLog{},
		dial:         evm.Dial,
		pollInterval: constants.DefaultPollInterval,
		clock:        &mockable.Clock{},
		timers:       evm.WallClockTimers,
		clients:      map[string]evm.Client{},
		inFlight:     map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Deploy submits [req] and waits for its confirmation. On failure both the
// terminal Failed result and the classified error are returned. Each call
// sends a new tx: failed deployments are not retried here
func (o *Orchestrator) Deploy(ctx context.Context, req Request) (*models.DeploymentResult, error) {
	if req.Factory == nil {
		return nil, clierrors.NewBindError(clierrors.ErrMalformedArtifact, errNoFactory)
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if !o.register(req.ID) {
		return nil, clierrors.NewDeploymentError(
			clierrors.ErrSubmissionFailed,
			fmt.Errorf("%w: %s", clierrors.ErrDeploymentInFlight, req.ID),
		)
	}
	defer o.unregister(req.ID)

	network := req.Factory.Network()
	result := &models.DeploymentResult{
		RequestID:    req.ID,
		Network:      network,
		ContractName: req.Factory.Artifact().ContractName,
		Deployer:     req.Factory.From(),
		Status:       models.Pending,
	}
	sm := statemachine.NewDeploymentStateMachine()

	client, err := o.client(ctx, network.RPCEndpoint)
	if err != nil {
		return o.fail(sm, result, clierrors.NewDeploymentError(clierrors.ErrSubmissionFailed, err))
	}
	tx, err := o.submit(ctx, client, req, result)
	if err != nil {
		return o.fail(sm, result, clierrors.NewDeploymentError(clierrors.ErrSubmissionFailed, err))
	}
	if err := sm.Transition(statemachine.Submitted); err != nil {
		return o.fail(sm, result, clierrors.NewDeploymentError(clierrors.ErrSubmissionFailed, err))
	}
	o.log.Info("deployment tx submitted",
		zap.String("request", req.ID),
		zap.String("network", network.Name),
		zap.Stringer("txHash", result.TransactionHash),
		zap.Uint64("nonce", result.Nonce),
		zap.Uint64("block", result.SubmittedAtBlock),
	)
	if o.onSubmitted != nil {
		o.onSubmitted(*result)
	}

	receipt, err := o.confirm(ctx, client, tx.Hash())
	if err != nil {
		return o.fail(sm, result, clierrors.NewDeploymentError(clierrors.ErrConfirmationTimeout, err))
	}
	result.BlockNumber = receipt.BlockNumber.Uint64()
	result.GasUsed = receipt.GasUsed
	if receipt.Status != types.ReceiptStatusSuccessful {
		return o.fail(sm, result, clierrors.NewDeploymentError(
			clierrors.ErrTxReverted,
			evm.TransactionError(tx, errFailedReceipt, "deployment of %s reverted at block %d", contractDesc(result), result.BlockNumber),
		))
	}
	result.ContractAddress = receipt.ContractAddress
	if result.ContractAddress == (common.Address{}) {
		result.ContractAddress = req.Factory.ContractAddress(result.Nonce)
	}
	if err := sm.Transition(statemachine.Confirmed); err != nil {
		return o.fail(sm, result, clierrors.NewDeploymentError(clierrors.ErrConfirmationTimeout, err))
	}
	result.Status = models.Confirmed
	result.FinishedAt = o.clock.Time()
	o.log.Info("deployment confirmed",
		zap.String("request", req.ID),
		zap.Stringer("address", result.ContractAddress),
		zap.Uint64("block", result.BlockNumber),
		zap.Uint64("gasUsed", result.GasUsed),
	)
	return result, nil
}

// submit builds, signs and sends the creation tx. The signer lock is held
// from nonce read until the node accepted the tx
func (o *Orchestrator) submit(
	ctx context.Context,
	client evm.Client,
	req Request,
	result *models.DeploymentResult,
) (*types.Transaction, error) {
	network := req.Factory.Network()
	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failure getting chain id from %s: %w", network.RPCEndpoint, err)
	}
	if !chainID.IsUint64() || chainID.Uint64() != network.ChainID {
		return nil, fmt.Errorf("%w: expected %d, got %s", clierrors.ErrChainIDMismatch, network.ChainID, chainID)
	}
	blockNumber, err := client.BlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failure getting block number from %s: %w", network.RPCEndpoint, err)
	}
	from := req.Factory.From()
	unlock := o.signerLocks.lock(from)
	defer unlock()
	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failure obtaining nonce for %s: %w", from.Hex(), err)
	}
	tx, err := req.Factory.Transaction(ctx, client, nonce, req.ConstructorArgs...)
	if err != nil {
		return nil, evm.TransactionError(nil, err, "failure building deployment tx for %s", contractDesc(result))
	}
	if err := client.SendTransaction(ctx, tx); err != nil {
		return nil, evm.TransactionError(nil, err, "failure sending deployment tx for %s", contractDesc(result))
	}
	result.TransactionHash = tx.Hash()
	result.Nonce = nonce
	result.SubmittedAtBlock = blockNumber
	result.SubmittedAt = o.clock.Time()
	return tx, nil
}

// confirm waits for the receipt, bounded by the confirmation timeout if set
func (o *Orchestrator) confirm(
	ctx context.Context,
	client evm.Client,
	txHash common.Hash,
) (*types.Receipt, error) {
	receipt, err := evm.WaitForReceipt(ctx, o.log, client, txHash, o.pollInterval, o.confirmationTimeout, o.timers)
	switch {
	case errors.Is(err, evm.ErrReceiptTimeout):
		return nil, fmt.Errorf("no receipt for tx %s after %s: %w", txHash.Hex(), o.confirmationTimeout, err)
	case err != nil:
		return nil, fmt.Errorf("stopped waiting for tx %s: %w", txHash.Hex(), err)
	}
	return receipt, nil
}

func (o *Orchestrator) fail(
	sm *statemachine.StateMachine,
	result *models.DeploymentResult,
	err error,
) (*models.DeploymentResult, error) {
	if transitionErr := sm.Transition(statemachine.Failed); transitionErr != nil {
		o.log.Warn("unexpected deployment state", zap.Error(transitionErr))
	}
	result.Status = models.Failed
	result.Err = err
	result.FinishedAt = o.clock.Time()
	o.log.Error("deployment failed",
		zap.String("request", result.RequestID),
		zap.String("network", result.Network.Name),
		zap.Error(err),
	)
	return result, err
}

func (o *Orchestrator) client(ctx context.Context, rpcURL string) (evm.Client, error) {
	o.clientsLock.Lock()
	defer o.clientsLock.Unlock()
	if client, ok := o.clients[rpcURL]; ok {
		return client, nil
	}
	client, err := o.dial(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	o.clients[rpcURL] = client
	return client, nil
}

// Close releases the cached rpc clients
func (o *Orchestrator) Close() {
	o.clientsLock.Lock()
	defer o.clientsLock.Unlock()
	for rpcURL, client := range o.clients {
		client.Close()
		delete(o.clients, rpcURL)
	}
}

func (o *Orchestrator) register(id string) bool {
	o.inFlightLock.Lock()
	defer o.inFlightLock.Unlock()
	if _, ok := o.inFlight[id]; ok {
		return false
	}
	o.inFlight[id] = struct{}{}
	return true
}

func (o *Orchestrator) unregister(id string) {
	o.inFlightLock.Lock()
	defer o.inFlightLock.Unlock()
	delete(o.inFlight, id)
}

func contractDesc(result *models.DeploymentResult) string {
	if result.ContractName == "" {
		return "contract"
	}
	return result.ContractName
}
