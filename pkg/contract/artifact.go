// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanche-contract-deployer/pkg/utils"
	"github.com/ava-labs/libevm/accounts/abi"
	"github.com/spf13/afero"
)

var (
	errEmptyBytecode   = errors.New("empty bytecode")
	errMissingABI      = errors.New("missing abi")
	validABIEntryTypes = []string{"function", "constructor", "event", "error", "fallback", "receive"}
	namedABIEntryTypes = []string{"function", "event", "error"}
)

type ABIArgument struct {
	Name         string        `json:"name"`
	Type         string        `json:"type"`
	InternalType string        `json:"internalType,omitempty"`
	Indexed      bool          `json:"indexed,omitempty"`
	Components   []ABIArgument `json:"components,omitempty"`
}

// ABIEntry is one element of the standard contract abi json
type ABIEntry struct {
	Type            string        `json:"type"`
	Name            string        `json:"name,omitempty"`
	Inputs          []ABIArgument `json:"inputs,omitempty"`
	Outputs         []ABIArgument `json:"outputs,omitempty"`
	StateMutability string        `json:"stateMutability,omitempty"`
	Anonymous       bool          `json:"anonymous,omitempty"`
}

// Artifact is the compiled contract: creation bytecode plus its abi
type Artifact struct {
	ContractName string
	SourceName   string
	Bytecode     []byte
	Entries      []ABIEntry
	RawABI       json.RawMessage
}

// covers both hardhat (bytecode as string) and foundry (bytecode.object) outputs
type artifactFile struct {
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
}

type foundryBytecode struct {
	Object string `json:"object"`
}

// LoadArtifact reads and parses the artifact file at [path]
func LoadArtifact(fs afero.Fs, path string) (*Artifact, error) {
	bs, err := afero.ReadFile(fs, utils.GetRealFilePath(path))
	if err != nil {
		return nil, fmt.Errorf("failure reading artifact %s: %w", path, err)
	}
	artifact, err := ParseArtifact(bs)
	if err != nil {
		return nil, fmt.Errorf("failure parsing artifact %s: %w", path, err)
	}
	return artifact, nil
}

// ParseArtifact parses a hardhat or foundry artifact json. Structural checks
// are left to Validate
func ParseArtifact(bs []byte) (*Artifact, error) {
	var file artifactFile
	if err := json.Unmarshal(bs, &file); err != nil {
		return nil, err
	}
	bytecode, err := parseBytecode(file.Bytecode)
	if err != nil {
		return nil, err
	}
	artifact := &Artifact{
		ContractName: file.ContractName,
		SourceName:   file.SourceName,
		Bytecode:     bytecode,
		RawABI:       file.ABI,
	}
	if len(file.ABI) == 0 || string(file.ABI) == "null" {
		return artifact, nil
	}
	if err := json.Unmarshal(file.ABI, &artifact.Entries); err != nil {
		return nil, fmt.Errorf("abi is not a list of entries: %w", err)
	}
	return artifact, nil
}

func parseBytecode(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var hexStr string
	if err := json.Unmarshal(raw, &hexStr); err != nil {
		var fb foundryBytecode
		if err := json.Unmarshal(raw, &fb); err != nil {
			return nil, fmt.Errorf("unexpected bytecode format: %w", err)
		}
		hexStr = fb.Object
	}
	bs, err := hex.DecodeString(utils.TrimHexPrefix(strings.TrimSpace(hexStr)))
	if err != nil {
		// unlinked library placeholders also end up here
		return nil, fmt.Errorf("bytecode is not valid hex: %w", err)
	}
	return bs, nil
}

// Validate checks the artifact can be deployed: non empty bytecode, and
// a structurally valid abi
func (a *Artifact) Validate() error {
	_, err := a.ParseABI()
	return err
}

// ParseABI validates the artifact and returns its parsed abi
func (a *Artifact) ParseABI() (abi.ABI, error) {
	if len(a.Bytecode) == 0 {
		return abi.ABI{}, errEmptyBytecode
	}
	if len(a.RawABI) == 0 || string(a.RawABI) == "null" {
		return abi.ABI{}, errMissingABI
	}
	for i, entry := range a.Entries {
		if err := entry.validate(); err != nil {
			return abi.ABI{}, fmt.Errorf("abi entry %d: %w", i, err)
		}
	}
	parsed, err := abi.JSON(bytes.NewReader(a.RawABI))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("invalid abi: %w", err)
	}
	return parsed, nil
}

func (e ABIEntry) validate() error {
	if !utils.Belongs(validABIEntryTypes, e.Type) {
		return fmt.Errorf("unknown entry type %q", e.Type)
	}
	if utils.Belongs(namedABIEntryTypes, e.Type) && e.Name == "" {
		return fmt.Errorf("%s entry without name", e.Type)
	}
	for _, arg := range append(append([]ABIArgument{}, e.Inputs...), e.Outputs...) {
		if arg.Type == "" {
			return fmt.Errorf("%s %q has an argument %q without type", e.Type, e.Name, arg.Name)
		}
	}
	return nil
}

// Constructor returns the constructor entry, if the abi declares one
func (a *Artifact) Constructor() (ABIEntry, bool) {
	for _, entry := range a.Entries {
		if entry.Type == "constructor" {
			return entry, true
		}
	}
	return ABIEntry{}, false
}
