// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package testutils

const (
	GreeterBytecode = "0x6080604052348015600f57600080fd5b50603f80601d6000396000f3fe6080604052600080fdfea164736f6c6343000818000a"

	GreeterABI = `[
  {"inputs":[{"internalType":"string","name":"_greeting","type":"string"}],"stateMutability":"nonpayable","type":"constructor"},
  {"inputs":[],"name":"greet","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
  {"anonymous":false,"inputs":[{"indexed":false,"internalType":"string","name":"greeting","type":"string"}],"name":"GreetingChanged","type":"event"}
]`

	// hardhat artifact layout
	GreeterArtifact = `{
  "_format": "hh-sol-artifact-1",
  "contractName": "Greeter",
  "sourceName": "contracts/Greeter.sol",
  "abi": ` + GreeterABI + `,
  "bytecode": "` + GreeterBytecode + `",
  "deployedBytecode": "0x6080604052600080fdfea164736f6c6343000818000a",
  "linkReferences": {},
  "deployedLinkReferences": {}
}`

	// foundry artifact layout, no constructor
	CounterFoundryArtifact = `{
  "abi": [
    {"type":"function","name":"increment","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
    {"type":"function","name":"number","inputs":[],"outputs":[{"name":"","type":"uint256","internalType":"uint256"}],"stateMutability":"view"}
  ],
  "bytecode": {"object": "` + GreeterBytecode + `", "sourceMap": "", "linkReferences": {}}
}`
)
