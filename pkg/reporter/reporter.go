// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package reporter

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ava-labs/avalanche-contract-deployer/pkg/clierrors"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/models"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/ux"
)

var errUnknownFailure = errors.New("unknown failure")

// Reporter prints the outcome of a deployment to the user
type Reporter struct {
	ul *ux.UserLog
}

func New(ul *ux.UserLog) *Reporter {
	if ul == nil {
		ul = ux.Logger
	}
	return &Reporter{ul: ul}
}

// Report prints either the deployed address with a summary table, or a single
// failure line carrying the error kind and its cause
func (r *Reporter) Report(result *models.DeploymentResult, err error) {
	if err == nil && result != nil && result.Status == models.Confirmed {
		r.success(result)
		return
	}
	if err == nil && result != nil {
		err = result.Err
	}
	if err == nil {
		err = errUnknownFailure
	}
	r.ul.RedXToUser("Deployment failed [%s]: %s", KindName(err), causeText(err))
}

func (r *Reporter) success(result *models.DeploymentResult) {
	r.ul.GreenCheckmarkToUser("Contract deployed to %s", result.ContractAddress.Hex())
	rows := [][2]string{
		{"Contract", result.ContractName},
		{"Network", result.Network.Name},
		{"Chain ID", strconv.FormatUint(result.Network.ChainID, 10)},
		{"Address", result.ContractAddress.Hex()},
		{"Deployer", result.Deployer.Hex()},
		{"Tx Hash", result.TransactionHash.Hex()},
		{"Block", strconv.FormatUint(result.BlockNumber, 10)},
		{"Gas Used", ux.ConvertToStringWithThousandSeparator(result.GasUsed)},
	}
	if !result.SubmittedAt.IsZero() && !result.FinishedAt.IsZero() {
		rows = append(rows, [2]string{"Confirmed In", ux.FormatDuration(result.FinishedAt.Sub(result.SubmittedAt))})
	}
	if url := result.Network.AddressURL(result.ContractAddress); url != "" {
		rows = append(rows, [2]string{"Explorer", url})
	}
	r.ul.PrintToUser("%s", ux.KeyValueTable("Deployment", rows))
}

// Warn prints a non fatal problem, such as a failed explorer verification
func (r *Reporter) Warn(msg string, args ...interface{}) {
	r.ul.YellowWarningToUser(msg, args...)
}

// Info prints a plain progress line
func (r *Reporter) Info(msg string, args ...interface{}) {
	r.ul.PrintToUser(msg, args...)
}

// KindName maps a classified error to the name shown to the user
func KindName(err error) string {
	switch kind := clierrors.Kind(err); {
	case kind == nil:
		return "Error"
	case errors.Is(kind, clierrors.ErrUnknownNetwork):
		return "UnknownNetwork"
	case errors.Is(kind, clierrors.ErrInvalidCredential):
		return "InvalidCredential"
	case errors.Is(kind, clierrors.ErrInvalidEndpoint):
		return "InvalidEndpoint"
	case errors.Is(kind, clierrors.ErrMalformedArtifact):
		return "MalformedArtifact"
	case errors.Is(kind, clierrors.ErrSubmissionFailed):
		return "SubmissionFailed"
	case errors.Is(kind, clierrors.ErrConfirmationTimeout):
		return "ConfirmationTimeout"
	case errors.Is(kind, clierrors.ErrTxReverted):
		return "TransactionReverted"
	default:
		return kind.Error()
	}
}

func causeText(err error) string {
	if cause := clierrors.Cause(err); cause != nil {
		return cause.Error()
	}
	if kind := clierrors.Kind(err); kind != nil {
		return kind.Error()
	}
	return fmt.Sprint(err)
}
