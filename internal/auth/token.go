package auth

import (
	"context" // Context for Redis operations
	"time"    // Time for token expiration

	"github.com/golang-jwt/jwt/v5"  // JWT library
	"github.com/redis/go-redis/v9" // Redis client
)

const tokenTTL = 24 * time.Hour // Session tokens expire after 24 hours

// Claims carried by a session token
type Claims struct {
	UserID               uint `json:"user_id"` // Custom claim for user ID
	jwt.RegisteredClaims      // Standard JWT claims
}

// IssueToken creates a signed session token for a given user ID
func IssueToken(userID uint, secret string) (string, error) {
	// Set token claims
	claims := Claims{
		UserID: userID, // Custom claim for user ID
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)), // Token expiry
			IssuedAt:  jwt.NewNumericDate(time.Now()),               // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseToken parses and validates a session token string
func ParseToken(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	})
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}

// RevokeToken puts a token on the Redis denylist until it would have expired
// anyway. Tokens are stateless, so logout works by refusing revoked tokens in
// the auth middleware rather than by deleting server-side session state.
func RevokeToken(ctx context.Context, rdb *redis.Client, tokenStr string, claims *Claims) error {
	ttl := tokenTTL // Fallback TTL if the token carries no expiry
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time) // Keep the entry only as long as the token lives
		if ttl <= 0 {
			return nil // Already expired, nothing to deny
		}
	}
	return rdb.Set(ctx, revokedKey(tokenStr), "1", ttl).Err() // Add token to denylist
}

// IsTokenRevoked reports whether a token has been logged out
func IsTokenRevoked(ctx context.Context, rdb *redis.Client, tokenStr string) (bool, error) {
	_, err := rdb.Get(ctx, revokedKey(tokenStr)).Result() // Look up the denylist entry
	if err == redis.Nil {
		return false, nil // Token was never revoked
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, nil // Token is on the denylist
}

// revokedKey builds the Redis key for a denylisted token
func revokedKey(tokenStr string) string {
	return "session:revoked:" + tokenStr
}
