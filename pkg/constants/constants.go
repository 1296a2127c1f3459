// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "time"

const (
	DefaultPerms755        = 0o755
	WriteReadReadPerms     = 0o644
	WriteReadUserOnlyPerms = 0o600

	BaseDirName = ".avalanche-deployer"
	LogDir      = "logs"
	LogName     = "deployer"

	MaxLogFileSize   = 4
	MaxNumOfLogFiles = 5
	RetainOldFiles   = 0 // retain all old log files

	// http
	APIRequestTimeout = 30 * time.Second

	DefaultNetworkName         = "fuji"
	DefaultPollInterval        = 2 * time.Second
	DefaultConfirmationTimeout = 0 // wait indefinitely

	// env / config file keys
	ConfigRPCURLKey                = "rpc_url"
	ConfigPrivateKeyKey            = "private_key"
	ConfigNetworkNameKey           = "network_name"
	ConfigConfirmationTimeoutMsKey = "confirmation_timeout_ms"
	ConfigPollIntervalMsKey        = "poll_interval_ms"
	ConfigExplorerAPIKeyKey        = "explorer_api_key"
	ConfigNetworksKey              = "networks"
)
