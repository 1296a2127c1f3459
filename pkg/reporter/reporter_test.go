// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package reporter

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ava-labs/avalanche-contract-deployer/pkg/clierrors"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/models"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/ux"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/libevm/common"
	"github.com/stretchr/testify/require"
)

func newTestReporter() (*Reporter, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(ux.NewUserLog(logging.NoLog{}, &buf)), &buf
}

func TestReportConfirmed(t *testing.T) {
	r, buf := newTestReporter()
	addr := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	submitted := time.Unix(1700000000, 0)
	result := &models.DeploymentResult{
		Network: models.NetworkProfile{
			Name:               "fuji",
			ChainID:            models.FujiChainID,
			ExplorerBrowserURL: models.FujiExplorerBrowserURL,
		},
		ContractName:    "Greeter",
		ContractAddress: addr,
		TransactionHash: common.HexToHash("0x01"),
		BlockNumber:     12345,
		GasUsed:         1234567,
		Status:          models.Confirmed,
		SubmittedAt:     submitted,
		FinishedAt:      submitted.Add(4 * time.Second),
	}
	r.Report(result, nil)

	out := buf.String()
	lines := strings.Split(out, "\n")
	require.Contains(t, lines[0], "Contract deployed to "+addr.Hex())
	require.Contains(t, out, "12345")
	require.Contains(t, out, "1_234_567")
	require.Contains(t, out, "43113")
	require.Contains(t, out, "4 seconds")
	require.Contains(t, out, models.FujiExplorerBrowserURL+"/address/"+addr.Hex())
}

func TestReportFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "submission failed",
			err:      clierrors.NewDeploymentError(clierrors.ErrSubmissionFailed, errors.New("insufficient funds for gas * price + value")),
			expected: "Deployment failed [SubmissionFailed]: insufficient funds for gas * price + value",
		},
		{
			name:     "timeout without cause",
			err:      clierrors.NewDeploymentError(clierrors.ErrConfirmationTimeout, nil),
			expected: "Deployment failed [ConfirmationTimeout]: confirmation timeout",
		},
		{
			name:     "timeout with context cause",
			err:      clierrors.NewDeploymentError(clierrors.ErrConfirmationTimeout, context.DeadlineExceeded),
			expected: "Deployment failed [ConfirmationTimeout]: context deadline exceeded",
		},
		{
			name:     "unknown network",
			err:      clierrors.NewConfigError(clierrors.ErrUnknownNetwork, errors.New(`"mainnet"`)),
			expected: `Deployment failed [UnknownNetwork]: "mainnet"`,
		},
		{
			name:     "malformed artifact",
			err:      clierrors.NewBindError(clierrors.ErrMalformedArtifact, errors.New("empty bytecode")),
			expected: "Deployment failed [MalformedArtifact]: empty bytecode",
		},
		{
			name:     "reverted",
			err:      clierrors.NewDeploymentError(clierrors.ErrTxReverted, errors.New("status 0")),
			expected: "Deployment failed [TransactionReverted]: status 0",
		},
		{
			name:     "unclassified",
			err:      errors.New("boom"),
			expected: "Deployment failed [Error]: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newTestReporter()
			r.Report(&models.DeploymentResult{Status: models.Failed}, tt.err)
			out := strings.TrimSuffix(buf.String(), "\n")
			require.NotContains(t, out, "\n")
			require.Contains(t, out, tt.expected)
			require.NotContains(t, out, "Contract deployed to")
		})
	}
}

func TestReportUsesResultError(t *testing.T) {
	r, buf := newTestReporter()
	r.Report(&models.DeploymentResult{
		Status: models.Failed,
		Err:    clierrors.NewDeploymentError(clierrors.ErrTxReverted, nil),
	}, nil)
	require.Contains(t, buf.String(), "[TransactionReverted]")
}

func TestWarn(t *testing.T) {
	r, buf := newTestReporter()
	r.Warn("verification failed: %s", "rate limited")
	require.Contains(t, buf.String(), "verification failed: rate limited")
}
