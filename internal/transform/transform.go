// Package transform maps plaintext RADIUS attribute inputs to their stored
// values through named one-way transforms. Transforms are keyed by attribute
// name; attributes without a registered transform pass through verbatim.
package transform

import (
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/md4" //nolint:staticcheck // NT-Password is defined over MD4
	"golang.org/x/text/encoding/unicode"
)

// NTPasswordAttribute is the RADIUS check attribute holding an NT hash.
const NTPasswordAttribute = "NT-Password"

// Func converts a plaintext input into the value to persist.
type Func func(plaintext string) (string, error)

var (
	mu       sync.RWMutex
	registry = map[string]Func{}
)

// Register installs fn as the transform for the given attribute, replacing
// any previous registration.
func Register(attribute string, fn Func) {
	mu.Lock()
	defer mu.Unlock()

	registry[attribute] = fn
}

// Lookup returns the transform registered for attribute, if any.
func Lookup(attribute string) (Func, bool) {
	mu.RLock()
	defer mu.RUnlock()

	fn, ok := registry[attribute]

	return fn, ok
}

// Apply runs the transform registered for attribute on plaintext. If no
// transform is registered the plaintext is returned unchanged.
func Apply(attribute, plaintext string) (string, error) {
	fn, ok := Lookup(attribute)
	if !ok {
		return plaintext, nil
	}

	return fn(plaintext)
}

// NTPassword computes the legacy FreeRADIUS NT-Password digest: the MD4 sum
// of the UTF-16 little-endian encoding of the plaintext, hex encoded.
func NTPassword(plaintext string) (string, error) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()

	encoded, err := enc.Bytes([]byte(plaintext))
	if err != nil {
		return "", err
	}

	digest := md4.New()
	if _, err = digest.Write(encoded); err != nil {
		return "", err
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}

func init() { //nolint: gochecknoinits
	Register(NTPasswordAttribute, NTPassword)
}
