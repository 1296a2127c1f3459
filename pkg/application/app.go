// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"path/filepath"

	"github.com/ava-labs/avalanche-contract-deployer/pkg/config"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/constants"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/evm"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Deployer carries the process wide dependencies shared by all commands
type Deployer struct {
	Log     logging.Logger
	baseDir string
	Viper   *viper.Viper
	FS      afero.Fs
	// optional json config file, set by the --config flag
	ConfigFile string
	// Dial opens rpc connections. Replaced in tests
	Dial evm.Dialer
}

func New() *Deployer {
	return &Deployer{
		Log:   logging.NoLog{},
		Viper: viper.New(),
		FS:    afero.NewOsFs(),
		Dial:  evm.Dial,
	}
}

func (app *Deployer) Setup(baseDir string, log logging.Logger) {
	app.baseDir = baseDir
	app.Log = log
}

func (app *Deployer) GetBaseDir() string {
	return app.baseDir
}

func (app *Deployer) GetLogDir() string {
	return filepath.Join(app.baseDir, constants.LogDir)
}

// LoadConfig reads env variables and the optional config file into a Config
func (app *Deployer) LoadConfig() (*config.Config, error) {
	if err := config.New(app.Log, app.Viper, app.ConfigFile); err != nil {
		return nil, err
	}
	return config.Load(app.Viper)
}
