// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package explorer submits source verification requests to etherscan
// compatible block explorer apis (snowtrace / routescan)
package explorer

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ava-labs/avalanche-contract-deployer/pkg/utils"
	"github.com/ava-labs/libevm/common"
)

const (
	statusOK           = "1"
	standardJSONFormat = "solidity-standard-json-input"
	StatusVerified     = "Pass - Verified"
	StatusPending      = "Pending in queue"
)

var (
	ErrNoAPIURL        = errors.New("explorer api url not configured")
	ErrMissingMetadata = errors.New("missing source metadata")
)

type VerificationRequest struct {
	Address common.Address
	// fully qualified name, eg contracts/GameToken.sol:GameToken
	ContractName    string
	CompilerVersion string
	// solidity standard json input
	SourceCode      string
	ConstructorArgs []byte
}

func (r VerificationRequest) validate() error {
	switch {
	case r.Address == (common.Address{}):
		return fmt.Errorf("%w: contract address", ErrMissingMetadata)
	case r.ContractName == "":
		return fmt.Errorf("%w: contract name", ErrMissingMetadata)
	case r.CompilerVersion == "":
		return fmt.Errorf("%w: compiler version", ErrMissingMetadata)
	case r.SourceCode == "":
		return fmt.Errorf("%w: source code", ErrMissingMetadata)
	}
	return nil
}

type apiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

type Client struct {
	apiURL string
	apiKey string
}

func NewClient(apiURL string, apiKey string) *Client {
	return &Client{
		apiURL: apiURL,
		apiKey: apiKey,
	}
}

// Verify submits [req] and returns the explorer verification guid
func (c *Client) Verify(ctx context.Context, req VerificationRequest) (string, error) {
	if err := c.checkAPIURL(); err != nil {
		return "", err
	}
	if err := req.validate(); err != nil {
		return "", err
	}
	values := url.Values{}
	values.Set("apikey", c.apiKey)
	values.Set("module", "contract")
	values.Set("action", "verifysourcecode")
	values.Set("contractaddress", req.Address.Hex())
	values.Set("sourceCode", req.SourceCode)
	values.Set("codeformat", standardJSONFormat)
	values.Set("contractname", req.ContractName)
	values.Set("compilerversion", req.CompilerVersion)
	// the misspelling is part of the etherscan api
	values.Set("constructorArguements", hex.EncodeToString(req.ConstructorArgs))
	resp, err := c.call(func() ([]byte, error) {
		return utils.MakePostFormRequest(ctx, c.apiURL, values)
	})
	if err != nil {
		return "", fmt.Errorf("verification of %s rejected: %w", req.Address.Hex(), err)
	}
	return resp.Result, nil
}

// CheckStatus returns the explorer status for verification [guid]
func (c *Client) CheckStatus(ctx context.Context, guid string) (string, error) {
	if err := c.checkAPIURL(); err != nil {
		return "", err
	}
	values := url.Values{}
	values.Set("apikey", c.apiKey)
	values.Set("module", "contract")
	values.Set("action", "checkverifystatus")
	values.Set("guid", guid)
	sep := "?"
	if strings.Contains(c.apiURL, "?") {
		sep = "&"
	}
	resp, err := c.call(func() ([]byte, error) {
		return utils.MakeGetRequest(ctx, c.apiURL+sep+values.Encode())
	})
	if err != nil {
		// pending verifications are reported with status 0
		if resp.Result == StatusPending {
			return resp.Result, nil
		}
		return "", err
	}
	return resp.Result, nil
}

func (c *Client) checkAPIURL() error {
	if c.apiURL == "" {
		return ErrNoAPIURL
	}
	if err := utils.ValidateURLFormat(c.apiURL); err != nil {
		return fmt.Errorf("invalid explorer api url %q: %w", c.apiURL, err)
	}
	return nil
}

func (*Client) call(request func() ([]byte, error)) (apiResponse, error) {
	bs, err := request()
	if err != nil {
		return apiResponse{}, err
	}
	var resp apiResponse
	if err := json.Unmarshal(bs, &resp); err != nil {
		return apiResponse{}, fmt.Errorf("unexpected explorer response %q: %w", string(bs), err)
	}
	if resp.Status != statusOK {
		return resp, fmt.Errorf("explorer error: %s: %s", resp.Message, resp.Result)
	}
	return resp, nil
}
