// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deployer

import (
	"sync"

	"github.com/ava-labs/libevm/common"
)

// signerLocks serializes nonce assignment per signer address
type signerLocks struct {
	mutex sync.Mutex
	locks map[common.Address]*sync.Mutex
}

// lock blocks until [address] is free and returns its unlock function
func (s *signerLocks) lock(address common.Address) func() {
	s.mutex.Lock()
	if s.locks == nil {
		s.locks = map[common.Address]*sync.Mutex{}
	}
	m, ok := s.locks[address]
	if !ok {
		m = &sync.Mutex{}
		s.locks[address] = m
	}
	s.mutex.Unlock()
	m.Lock()
	return m.Unlock
}
