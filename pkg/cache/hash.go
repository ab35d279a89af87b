package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/nestgraph/pkg/network"
)

// hashKey returns "prefix:" followed by the SHA-256 of the JSON-encoded parts.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// NetworkHash hashes the db serialization of net. Two networks that
// serialize identically, ids included, hash identically.
func NetworkHash(net *network.Network) (string, error) {
	data, err := net.MarshalTarget(network.TargetDB)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}
