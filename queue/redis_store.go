/*
 * redis_store.go, part of voxdock.
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
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/korralabs/voxdock/dockerr"
)

// claimScript atomically scans the pending set for a job whose lease key
// is absent (never claimed, or expired) and, if found, sets the lease key
// with the given TTL and returns the job's id; otherwise returns an empty
// string. KEYS[1] is the pending ZSET (members are job ids), KEYS[2] is
// the lease key prefix; ARGV[1] is the TTL in milliseconds.
const claimScript = `
local ids = redis.call('ZRANGE', KEYS[1], 0, -1)
for _, id in ipairs(ids) do
    local leaseKey = KEYS[2] .. id
    if redis.call('SET', leaseKey, '1', 'NX', 'PX', ARGV[1]) then
        return id
    end
end
return ''
`

// RedisStore implements Store against a Redis job queue: a ZSET of
// pending job ids, a per-job lease key with a TTL (claim timeout), and a
// hash per job id holding the JobDocument payload and progress counter.
type RedisStore struct {
	client      *redis.Client
	claim       *redis.Script
	pendingKey  string
	leasePrefix string
	jobPrefix   string
}

// NewRedisStore builds a RedisStore over client, namespaced under prefix
// (e.g. "voxdock:").
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client:      client,
		claim:       redis.NewScript(claimScript),
		pendingKey:  prefix + "pending",
		leasePrefix: prefix + "lease:",
		jobPrefix:   prefix + "job:",
	}
}

func (s *RedisStore) Claim(ctx context.Context, leaseTTL time.Duration) (*JobDocument, bool, error) {
	id, err := s.claim.Run(ctx, s.client, []string{s.pendingKey, s.leasePrefix}, leaseTTL.Milliseconds()).Text()
	if err != nil && err != redis.Nil {
		return nil, false, dockerr.Classify(dockerr.KindIOFatal, fmt.Errorf("queue: claim script: %w", err))
	}
	if id == "" {
		return nil, false, nil
	}

	raw, err := s.client.HGet(ctx, s.jobPrefix+id, "doc").Result()
	if err != nil {
		return nil, false, dockerr.Classify(dockerr.KindIOFatal, fmt.Errorf("queue: fetching job %s: %w", id, err))
	}
	var doc JobDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, false, dockerr.Classify(dockerr.KindIOFatal, fmt.Errorf("queue: decoding job %s: %w", id, err))
	}
	if err := s.client.HIncrBy(ctx, s.jobPrefix+id, "progress", 1).Err(); err != nil {
		return nil, false, dockerr.Classify(dockerr.KindIOFatal, fmt.Errorf("queue: marking job %s taken: %w", id, err))
	}
	doc.Progress++
	return &doc, true, nil
}

func (s *RedisStore) Heartbeat(ctx context.Context, id string, leaseTTL time.Duration) error {
	if err := s.client.Set(ctx, s.leasePrefix+id, "1", leaseTTL).Err(); err != nil {
		return dockerr.Classify(dockerr.KindIOFatal, fmt.Errorf("queue: heartbeat job %s: %w", id, err))
	}
	return nil
}

func (s *RedisStore) AdvanceProgress(ctx context.Context, id string, delta int) error {
	if err := s.client.HIncrBy(ctx, s.jobPrefix+id, "progress", int64(delta)).Err(); err != nil {
		return dockerr.Classify(dockerr.KindIOFatal, fmt.Errorf("queue: advancing job %s: %w", id, err))
	}
	return nil
}

func (s *RedisStore) Complete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.ZRem(ctx, s.pendingKey, id)
	pipe.Del(ctx, s.leasePrefix+id)
	if _, err := pipe.Exec(ctx); err != nil {
		return dockerr.Classify(dockerr.KindIOFatal, fmt.Errorf("queue: completing job %s: %w", id, err))
	}
	return nil
}

// PutJob seeds the queue with a pending job, used by operator tooling and
// tests.
func (s *RedisStore) PutJob(ctx context.Context, doc JobDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return dockerr.Classify(dockerr.KindIOFatal, fmt.Errorf("queue: encoding job %s: %w", doc.ID, err))
	}
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.jobPrefix+doc.ID, "doc", raw, "progress", doc.Progress)
	pipe.ZAdd(ctx, s.pendingKey, redis.Z{Score: 0, Member: doc.ID})
	_, err = pipe.Exec(ctx)
	if err != nil {
		return dockerr.Classify(dockerr.KindIOFatal, fmt.Errorf("queue: seeding job %s: %w", doc.ID, err))
	}
	return nil
}
