// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package clierrors

import (
	"errors"
	"fmt"
)

// error kinds. match them with errors.Is against any ConfigError, BindError or DeploymentError
var (
	ErrUnknownNetwork      = errors.New("unknown network")
	ErrInvalidCredential   = errors.New("invalid credential")
	ErrInvalidEndpoint     = errors.New("invalid endpoint")
	ErrMalformedArtifact   = errors.New("malformed artifact")
	ErrSubmissionFailed    = errors.New("submission failed")
	ErrConfirmationTimeout = errors.New("confirmation timeout")
	ErrTxReverted          = errors.New("transaction reverted")

	ErrDeploymentInFlight = errors.New("deployment request is already in flight")
	ErrChainIDMismatch    = errors.New("rpc endpoint chain id does not match network profile")
)

// kindError is the shared shape of the three error families
type kindError struct {
	family string
	Kind   error
	Err    error
}

func (e *kindError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.family, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.family, e.Kind, e.Err)
}

func (e *kindError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ConfigError is fatal: the operator must fix the configuration
type ConfigError struct{ kindError }

// BindError is returned when an artifact cannot be bound to a network
type BindError struct{ kindError }

// DeploymentError classifies submission and confirmation failures
type DeploymentError struct{ kindError }

func NewConfigError(kind error, err error) *ConfigError {
	return &ConfigError{kindError{family: "config error", Kind: kind, Err: err}}
}

func NewBindError(kind error, err error) *BindError {
	return &BindError{kindError{family: "bind error", Kind: kind, Err: err}}
}

func NewDeploymentError(kind error, err error) *DeploymentError {
	return &DeploymentError{kindError{family: "deployment error", Kind: kind, Err: err}}
}

// Kind returns the classified kind of [err], or nil if [err] does not belong
// to the taxonomy
func Kind(err error) error {
	var (
		cerr *ConfigError
		berr *BindError
		derr *DeploymentError
	)
	switch {
	case errors.As(err, &cerr):
		return cerr.Kind
	case errors.As(err, &berr):
		return berr.Kind
	case errors.As(err, &derr):
		return derr.Kind
	}
	return nil
}

// Cause returns the underlying cause of a classified error, or [err] itself
func Cause(err error) error {
	var (
		cerr *ConfigError
		berr *BindError
		derr *DeploymentError
	)
	switch {
	case errors.As(err, &cerr):
		return cerr.Err
	case errors.As(err, &berr):
		return berr.Err
	case errors.As(err, &derr):
		return derr.Err
	}
	return err
}
