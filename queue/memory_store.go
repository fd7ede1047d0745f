/*
 * memory_store.go, part of voxdock.
 *
 * Copyright 2026 The voxdock Authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package queue

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store for tests and single-node runs: no
// network, no persistence, same claim/lease semantics as RedisStore.
type MemoryStore struct {
	mu      sync.Mutex
	jobs    map[string]*JobDocument
	leaseAt map[string]time.Time
	order   []string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: map[string]*JobDocument{}, leaseAt: map[string]time.Time{}}
}

// PutJob seeds the store with a pending job.
func (s *MemoryStore) PutJob(doc JobDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := doc
	s.jobs[doc.ID] = &cp
	s.order = append(s.order, doc.ID)
}

func (s *MemoryStore) Claim(_ context.Context, leaseTTL time.Duration) (*JobDocument, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, id := range s.order {
		job, ok := s.jobs[id]
		if !ok {
			continue
		}
		leasedUntil, leased := s.leaseAt[id]
		if leased && now.Before(leasedUntil) {
			continue
		}
		s.leaseAt[id] = now.Add(leaseTTL)
		job.Progress++
		cp := *job
		return &cp, true, nil
	}
	return nil, false, nil
}

func (s *MemoryStore) Heartbeat(_ context.Context, id string, leaseTTL time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaseAt[id] = time.Now().Add(leaseTTL)
	return nil
}

func (s *MemoryStore) AdvanceProgress(_ context.Context, id string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		job.Progress += delta
	}
	return nil
}

func (s *MemoryStore) Complete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
	delete(s.leaseAt, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

var _ Store = (*MemoryStore)(nil)
