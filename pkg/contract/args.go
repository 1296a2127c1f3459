// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"

	"github.com/ava-labs/avalanche-contract-deployer/pkg/utils"
	"github.com/ava-labs/libevm/accounts/abi"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/common/hexutil"
)

var bigIntType = reflect.TypeOf(&big.Int{})

// SplitArgs splits a comma separated list of args. Commas inside single
// quotes are kept
func SplitArgs(s string) []string {
	return utils.Map(utils.SplitStringWithQuotes(s, ','), utils.RemoveSingleQuotes)
}

// ParseConstructorArgs converts [raw] string values into the go types
// expected by the constructor inputs of [contractABI]
func ParseConstructorArgs(contractABI abi.ABI, raw []string) ([]interface{}, error) {
	inputs := contractABI.Constructor.Inputs
	if len(inputs) != len(raw) {
		return nil, fmt.Errorf("constructor expects %d args, got %d", len(inputs), len(raw))
	}
	args := make([]interface{}, 0, len(raw))
	for i, input := range inputs {
		arg, err := parseArg(input.Type, raw[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = strconv.Itoa(i)
			}
			return nil, fmt.Errorf("constructor arg %s: %w", name, err)
		}
		args = append(args, arg)
	}
	return args, nil
}

func parseArg(t abi.Type, s string) (interface{}, error) {
	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("%q is not an address", s)
		}
		return common.HexToAddress(s), nil
	case abi.BoolTy:
		return strconv.ParseBool(s)
	case abi.StringTy:
		return s, nil
	case abi.BytesTy:
		return hexutil.Decode(utils.AddHexPrefix(s))
	case abi.FixedBytesTy:
		bs, err := hexutil.Decode(utils.AddHexPrefix(s))
		if err != nil {
			return nil, err
		}
		if len(bs) != t.Size {
			return nil, fmt.Errorf("expected %d bytes for %s, got %d", t.Size, t.String(), len(bs))
		}
		v := reflect.New(t.GetType()).Elem()
		reflect.Copy(v, reflect.ValueOf(bs))
		return v.Interface(), nil
	case abi.IntTy, abi.UintTy:
		return parseInteger(t, s)
	}
	return nil, fmt.Errorf("unsupported constructor arg type %s", t.String())
}

func parseInteger(t abi.Type, s string) (interface{}, error) {
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("%q is not an integer", s)
	}
	if t.T == abi.UintTy && n.Sign() < 0 {
		return nil, fmt.Errorf("%s can't be negative", t.String())
	}
	goType := t.GetType()
	if goType == bigIntType {
		// uintN: [0, 2^N), intN: [-2^(N-1), 2^(N-1))
		bits := uint(t.Size)
		if t.T == abi.IntTy {
			bits--
		}
		upper := new(big.Int).Lsh(big.NewInt(1), bits)
		lower := new(big.Int).Neg(upper)
		if n.Cmp(upper) >= 0 || (t.T == abi.IntTy && n.Cmp(lower) < 0) {
			return nil, fmt.Errorf("%s overflows %s", s, t.String())
		}
		return n, nil
	}
	v := reflect.New(goType).Elem()
	if t.T == abi.UintTy {
		if !n.IsUint64() || v.OverflowUint(n.Uint64()) {
			return nil, fmt.Errorf("%s overflows %s", s, t.String())
		}
		v.SetUint(n.Uint64())
	} else {
		if !n.IsInt64() || v.OverflowInt(n.Int64()) {
			return nil, fmt.Errorf("%s overflows %s", s, t.String())
		}
		v.SetInt(n.Int64())
	}
	return v.Interface(), nil
}
