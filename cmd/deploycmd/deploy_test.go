// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanche-contract-deployer/internal/mocks"
	"github.com/ava-labs/avalanche-contract-deployer/internal/testutils"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/application"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/clierrors"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/cobrautils"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/evm"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/models"
	ethereum "github.com/ava-labs/libevm"
	"github.com/ava-labs/libevm/core/types"
	"github.com/ava-labs/libevm/crypto"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	artifactPath = "/project/artifacts/contracts/Greeter.sol/Greeter.json"
	counterPath  = "/project/out/Counter.sol/Counter.json"
	sourcePath   = "/project/standard-input.json"
	testRPCURL   = "http://127.0.0.1:9650/ext/bc/C/rpc"
)

func setupDeployTest(t *testing.T, client evm.Client) (*application.Deployer, *bytes.Buffer) {
	t.Setenv("RPC_URL", testRPCURL)
	t.Setenv("PRIVATE_KEY", "0x"+testutils.FixturePrivateKey)
	t.Setenv("POLL_INTERVAL_MS", "1")
	t.Setenv("NETWORK_NAME", "")
	t.Setenv("CONFIRMATION_TIMEOUT_MS", "")
	app := application.NewTestApp(t, func(_ context.Context, _ string) (evm.Client, error) {
		if client == nil {
			return nil, errors.New("no client")
		}
		return client, nil
	})
	require.NoError(t, afero.WriteFile(app.FS, artifactPath, []byte(testutils.GreeterArtifact), 0o644))
	return app, &bytes.Buffer{}
}

func runDeploy(app *application.Deployer, out *bytes.Buffer, args ...string) error {
	cmd := NewCmd(app)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func expectDeployment(client *mocks.EVMClient, receipt *types.Receipt, sendErr error) {
	client.On("ChainID", mock.Anything).Return(new(big.Int).SetUint64(models.FujiChainID), nil)
	client.On("BlockNumber", mock.Anything).Return(uint64(12340), nil)
	client.On("PendingNonceAt", mock.Anything, mock.Anything).Return(uint64(0), nil)
	client.On("HeaderByNumber", mock.Anything, mock.Anything).
		Return(&types.Header{BaseFee: big.NewInt(25_000_000_000)}, nil)
	client.On("SuggestGasTipCap", mock.Anything).Return(big.NewInt(1_000_000_000), nil)
	client.On("EstimateGas", mock.Anything, mock.Anything).Return(uint64(450_000), nil)
	client.On("SendTransaction", mock.Anything, mock.Anything).Return(sendErr).Once()
	if receipt != nil {
		client.On("TransactionReceipt", mock.Anything, mock.Anything).Return(nil, ethereum.NotFound).Once()
		client.On("TransactionReceipt", mock.Anything, mock.Anything).Return(receipt, nil).Once()
	}
	client.On("Close").Once()
}

func TestDeployCommand(t *testing.T) {
	require := require.New(t)
	client := mocks.NewEVMClient(t)
	app, out := setupDeployTest(t, client)
	deployer := crypto.PubkeyToAddress(testutils.FixtureKey(t).PublicKey)
	address := crypto.CreateAddress(deployer, 0)
	expectDeployment(client, &types.Receipt{
		Status:          types.ReceiptStatusSuccessful,
		BlockNumber:     big.NewInt(12345),
		GasUsed:         412_000,
		ContractAddress: address,
	}, nil)

	err := runDeploy(app, out, "--artifact", artifactPath, "--args", "'Hello, Fuji'")
	require.NoError(err)
	require.Contains(out.String(), "Contract deployed to "+address.Hex())
	require.Contains(out.String(), "12345")
	require.NotContains(out.String(), testutils.FixturePrivateKey)
}

func TestDeployCommandWithoutConstructor(t *testing.T) {
	require := require.New(t)
	client := mocks.NewEVMClient(t)
	app, out := setupDeployTest(t, client)
	require.NoError(afero.WriteFile(app.FS, counterPath, []byte(testutils.CounterFoundryArtifact), 0o644))
	deployer := crypto.PubkeyToAddress(testutils.FixtureKey(t).PublicKey)
	address := crypto.CreateAddress(deployer, 0)
	expectDeployment(client, &types.Receipt{
		Status:          types.ReceiptStatusSuccessful,
		BlockNumber:     big.NewInt(12345),
		GasUsed:         98_000,
		ContractAddress: address,
	}, nil)

	err := runDeploy(app, out, "--artifact", counterPath)
	require.NoError(err)
	require.Contains(out.String(), "Contract deployed to "+address.Hex())
	require.Contains(out.String(), "12345")
}

func TestDeployCommandSubmissionFailed(t *testing.T) {
	require := require.New(t)
	client := mocks.NewEVMClient(t)
	app, out := setupDeployTest(t, client)
	expectDeployment(client, nil, errors.New("insufficient funds for gas * price + value"))

	err := runDeploy(app, out, "--artifact", artifactPath, "--args", "Hello")
	require.ErrorIs(err, clierrors.ErrSubmissionFailed)
	var reported cobrautils.ReportedError
	require.ErrorAs(err, &reported)
	require.Contains(out.String(), "Deployment failed [SubmissionFailed]")
	require.Contains(out.String(), "insufficient funds")
	require.NotContains(out.String(), "Contract deployed to")
}

func TestDeployCommandConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		env      map[string]string
		expected string
		kind     error
	}{
		{
			name:     "unknown network",
			args:     []string{"--artifact", artifactPath, "--network", "mainnet", "--args", "Hello"},
			expected: "Deployment failed [UnknownNetwork]",
			kind:     clierrors.ErrUnknownNetwork,
		},
		{
			name:     "invalid key",
			args:     []string{"--artifact", artifactPath, "--args", "Hello"},
			env:      map[string]string{"PRIVATE_KEY": "0x1234"},
			expected: "Deployment failed [InvalidCredential]",
			kind:     clierrors.ErrInvalidCredential,
		},
		{
			name:     "invalid endpoint",
			args:     []string{"--artifact", artifactPath, "--args", "Hello"},
			env:      map[string]string{"RPC_URL": "127.0.0.1:9650"},
			expected: "Deployment failed [InvalidEndpoint]",
			kind:     clierrors.ErrInvalidEndpoint,
		},
		{
			name:     "missing artifact",
			args:     []string{"--artifact", "/project/Missing.json"},
			expected: "Deployment failed [MalformedArtifact]",
			kind:     clierrors.ErrMalformedArtifact,
		},
		{
			name:     "wrong constructor args",
			args:     []string{"--artifact", artifactPath},
			expected: "constructor expects 1 args, got 0",
			kind:     clierrors.ErrMalformedArtifact,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := setupDeployTest(t, nil)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			err := runDeploy(app, out, tt.args...)
			require.ErrorIs(t, err, tt.kind)
			require.Contains(t, out.String(), tt.expected)
		})
	}
}

func TestDeployCommandNegativeTimeout(t *testing.T) {
	app, out := setupDeployTest(t, nil)
	err := runDeploy(app, out, "--artifact", artifactPath, "--timeout-ms", "-5")
	require.ErrorContains(t, err, "must not be negative")
}

func TestDeployCommandRequiresArtifact(t *testing.T) {
	app, out := setupDeployTest(t, nil)
	err := runDeploy(app, out)
	require.ErrorContains(t, err, "artifact")
}

func TestDeployCommandVerify(t *testing.T) {
	require := require.New(t)
	var actions []string
	explorerServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(r.ParseForm())
		action := r.Form.Get("action")
		actions = append(actions, action)
		result := map[string]string{"status": "1", "message": "OK", "result": "guid-1"}
		if action == "checkverifystatus" {
			result["result"] = "Pass - Verified"
		}
		require.NoError(json.NewEncoder(w).Encode(result))
	}))
	defer explorerServer.Close()

	configPath := filepath.Join(t.TempDir(), "deployer.json")
	require.NoError(os.WriteFile(configPath, []byte(`{
  "networks": {
    "local": {
      "rpcEndpoint": "`+testRPCURL+`",
      "chainId": 43113,
      "explorerApiBase": "`+explorerServer.URL+`"
    }
  }
}`), 0o600))

	client := mocks.NewEVMClient(t)
	app, out := setupDeployTest(t, client)
	app.ConfigFile = configPath
	require.NoError(afero.WriteFile(app.FS, sourcePath, []byte(`{"language":"Solidity"}`), 0o644))
	deployer := crypto.PubkeyToAddress(testutils.FixtureKey(t).PublicKey)
	expectDeployment(client, &types.Receipt{
		Status:          types.ReceiptStatusSuccessful,
		BlockNumber:     big.NewInt(12345),
		ContractAddress: crypto.CreateAddress(deployer, 0),
	}, nil)

	err := runDeploy(app, out,
		"--artifact", artifactPath,
		"--network", "local",
		"--args", "Hello",
		"--verify",
		"--source", sourcePath,
		"--compiler-version", "v0.8.24+commit.e11b9ed9",
	)
	require.NoError(err)
	require.Equal([]string{"verifysourcecode", "checkverifystatus"}, actions)
	require.Contains(out.String(), "Source verified")
}

func TestDeployCommandVerifyFailureIsNotFatal(t *testing.T) {
	require := require.New(t)
	client := mocks.NewEVMClient(t)
	app, out := setupDeployTest(t, client)
	deployer := crypto.PubkeyToAddress(testutils.FixtureKey(t).PublicKey)
	expectDeployment(client, &types.Receipt{
		Status:          types.ReceiptStatusSuccessful,
		BlockNumber:     big.NewInt(12345),
		ContractAddress: crypto.CreateAddress(deployer, 0),
	}, nil)

	// no --source given
	err := runDeploy(app, out, "--artifact", artifactPath, "--args", "Hello", "--verify")
	require.NoError(err)
	require.Contains(out.String(), "Contract deployed to")
	require.Contains(out.String(), "Source verification failed")
}
