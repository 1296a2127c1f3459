// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package models

import (
	"time"

	"github.com/ava-labs/libevm/common"
)

type DeploymentStatus int64

const (
	Pending DeploymentStatus = iota
	Confirmed
	Failed
)

func (s DeploymentStatus) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Confirmed:
		return "Confirmed"
	case Failed:
		return "Failed"
	}
	return "Unknown"
}

// Terminal indicates the status will not change anymore
func (s DeploymentStatus) Terminal() bool {
	return s == Confirmed || s == Failed
}

// DeploymentResult is created once the deployment tx is submitted, and only
// advanced by the orchestrator until it reaches a terminal status
type DeploymentResult struct {
	RequestID        string
	Network          NetworkProfile
	ContractName     string
	Deployer         common.Address
	ContractAddress  common.Address
	TransactionHash  common.Hash
	Nonce            uint64
	SubmittedAtBlock uint64
	BlockNumber      uint64
	GasUsed          uint64
	Status           DeploymentStatus
	Err              error
	SubmittedAt      time.Time
	FinishedAt       time.Time
}

// HasAddress indicates a contract address has been set on the result
func (r *DeploymentResult) HasAddress() bool {
	return r.ContractAddress != (common.Address{})
}

func (r *DeploymentResult) Submitted() bool {
	return r.TransactionHash != (common.Hash{})
}
