// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"testing"

	"github.com/ava-labs/avalanche-contract-deployer/pkg/evm"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// NewTestApp returns a Deployer backed by an in memory filesystem and [dial]
func NewTestApp(t *testing.T, dial evm.Dialer) *Deployer {
	return &Deployer{
		baseDir: t.TempDir(),
		Log:     logging.NoLog{},
		Viper:   viper.New(),
		FS:      afero.NewMemMapFs(),
		Dial:    dial,
	}
}
