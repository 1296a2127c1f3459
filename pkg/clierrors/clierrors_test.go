// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package clierrors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindMatching(t *testing.T) {
	cause := errors.New("insufficient funds")
	err := NewDeploymentError(ErrSubmissionFailed, cause)
	require.ErrorIs(t, err, ErrSubmissionFailed)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, ErrConfirmationTimeout)
	require.Equal(t, "deployment error: submission failed: insufficient funds", err.Error())

	wrapped := fmt.Errorf("deploying Greeter: %w", err)
	require.ErrorIs(t, wrapped, ErrSubmissionFailed)
	require.Equal(t, ErrSubmissionFailed, Kind(wrapped))
	require.Equal(t, cause, Cause(wrapped))
}

func TestFamilies(t *testing.T) {
	var (
		configErr     *ConfigError
		bindErr       *BindError
		deploymentErr *DeploymentError
	)
	err := error(NewConfigError(ErrUnknownNetwork, nil))
	require.ErrorAs(t, err, &configErr)
	require.False(t, errors.As(err, &bindErr))
	require.Equal(t, "config error: unknown network", err.Error())
	require.Nil(t, Cause(err))

	err = NewBindError(ErrMalformedArtifact, errors.New("empty bytecode"))
	require.ErrorAs(t, err, &bindErr)
	require.False(t, errors.As(err, &deploymentErr))
	require.Equal(t, ErrMalformedArtifact, Kind(err))

	err = NewDeploymentError(ErrConfirmationTimeout, context.DeadlineExceeded)
	require.ErrorAs(t, err, &deploymentErr)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestUnclassified(t *testing.T) {
	err := errors.New("boom")
	require.Nil(t, Kind(err))
	require.Equal(t, err, Cause(err))
	require.Nil(t, Kind(nil))
}
