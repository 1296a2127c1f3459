// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package ux

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration returns a user friendly string for the time a deployment took.
// Durations under one second are printed in milliseconds.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Second {
		return fmt.Sprintf("%d ms", d.Milliseconds())
	}
	parts := []string{}
	h := d / time.Hour
	if h > 0 {
		d -= h * time.Hour
		parts = append(parts, fmt.Sprintf("%d hours", h))
	}
	m := d / time.Minute
	if m > 0 {
		d -= m * time.Minute
		parts = append(parts, fmt.Sprintf("%d minutes", m))
	}
	s := d / time.Second
	if s > 0 {
		parts = append(parts, fmt.Sprintf("%d seconds", s))
	}
	return strings.Join(parts, " ")
}
