package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	// claimsKeyPrefix namespaces cached verified claims in Redis.
	claimsKeyPrefix = "auth_claims:"
	// maxClaimsTTL caps how long verified claims may be served from cache.
	maxClaimsTTL = 5 * time.Minute
)

// ClaimsCache stores verified token claims in Redis keyed by token hash,
// so repeated requests with the same bearer token skip signature
// verification. Entries never outlive the token itself.
type ClaimsCache struct {
	Client *redis.Client
}

func NewClaimsCache(client *redis.Client) *ClaimsCache {
	return &ClaimsCache{Client: client}
}

func claimsKey(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return claimsKeyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached identity for a token, or nil on a miss.
func (c *ClaimsCache) Get(ctx context.Context, rawToken string) (*Identity, error) {
	if c == nil || c.Client == nil {
		return nil, nil
	}

	payload, err := c.Client.Get(ctx, claimsKey(rawToken)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get claims from Redis: %w", err)
	}

	var identity Identity
	if err := json.Unmarshal([]byte(payload), &identity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached claims: %w", err)
	}
	return &identity, nil
}

// Set stores a verified identity, expiring with the token (capped at
// maxClaimsTTL).
func (c *ClaimsCache) Set(ctx context.Context, rawToken string, identity Identity) error {
	if c == nil || c.Client == nil {
		return nil
	}

	ttl := maxClaimsTTL
	if exp, err := TokenExpiry(rawToken); err == nil {
		remaining := time.Until(exp)
		if remaining <= 0 {
			return nil
		}
		if remaining < ttl {
			ttl = remaining
		}
	}

	payload, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to marshal claims: %w", err)
	}

	if err := c.Client.Set(ctx, claimsKey(rawToken), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store claims in Redis: %w", err)
	}
	return nil
}
