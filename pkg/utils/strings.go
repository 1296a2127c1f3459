// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package utils

import (
	"strings"
)

// SplitStringWithQuotes split string with a rune, ignoring the ones inside single quotes
func SplitStringWithQuotes(str string, r rune) []string {
	quoted := false
	return strings.FieldsFunc(str, func(r1 rune) bool {
		if r1 == '\'' {
			quoted = !quoted
		}
		return !quoted && r1 == r
	})
}

// RemoveSingleQuotes trims spaces and one level of surrounding single quotes
func RemoveSingleQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'") {
		return s[1 : len(s)-1]
	}
	return s
}

// TrimHexPrefix removes a leading 0x/0X, if any
func TrimHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}

// AddHexPrefix adds the 0x prefix if not already present
func AddHexPrefix(s string) string {
	return "0x" + TrimHexPrefix(s)
}
