// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitStringWithQuotes(t *testing.T) {
	require.Equal(t, []string{" arg1", "arg2", "'hello, world'"}, SplitStringWithQuotes(" arg1,arg2,'hello, world'", ','))
	require.Equal(t, []string{"arg1", "arg2", "'hello world'"}, SplitStringWithQuotes(" arg1 arg2 'hello world' ", ' '))
	require.Empty(t, SplitStringWithQuotes("", ','))
}

func TestRemoveSingleQuotes(t *testing.T) {
	tests := map[string]string{
		"'hello'":   "hello",
		" 'a, b' ":  "a, b",
		"plain":     "plain",
		"'":         "'",
		"'unclosed": "'unclosed",
		"''":        "",
	}
	for input, expected := range tests {
		require.Equal(t, expected, RemoveSingleQuotes(input), input)
	}
}

func TestHexPrefix(t *testing.T) {
	require.Equal(t, "abcd", TrimHexPrefix("0xabcd"))
	require.Equal(t, "abcd", TrimHexPrefix("0Xabcd"))
	require.Equal(t, "abcd", TrimHexPrefix("abcd"))
	require.Equal(t, "0xabcd", AddHexPrefix("abcd"))
	require.Equal(t, "0xabcd", AddHexPrefix("0xabcd"))
	require.Equal(t, "0x", AddHexPrefix(""))
}
