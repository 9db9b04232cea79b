package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strconv"
	"sync"

	"github.com/cespare/xxhash"
)

// HashHeader is the request and response header that carries the hex encoded
// HMAC-SHA256 of the body.
const HashHeader = "HashSHA256"

// hasherPool is a package-level pool of reusable HMAC-SHA256 hash instances.
// Must be initialized via InitHasherPool before use.
var hasherPool sync.Pool

// InitHasherPool initializes a sync.Pool of HMAC-SHA256 hashers keyed with
// hashKey. It has to be called once before [Hash] is used.
func InitHasherPool(hashKey string) {
	hasherPool = sync.Pool{
		New: func() any {
			return hmac.New(sha256.New, []byte(hashKey))
		},
	}
}

// Hash computes an HMAC-SHA256 signature over data using a hasher from the
// global pool.
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// HashString computes a hex encoded HMAC-SHA256 of data with hashKey without
// touching the global pool. The client uses it to sign outgoing bodies.
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}

// ContentETag returns a strong ETag value for a note revision.
//
// The tag is derived from the xxhash of the title, the content and the
// public edit flag, so it changes whenever anything a share link viewer can
// see changes.
func ContentETag(title, content string, allowPublicEdit bool) string {
	d := xxhash.New()
	d.Write([]byte(title))
	d.Write([]byte{0})
	d.Write([]byte(content))
	d.Write([]byte{0})
	d.Write([]byte(strconv.FormatBool(allowPublicEdit)))

	return `"` + strconv.FormatUint(d.Sum64(), 16) + `"`
}

// ContentKey returns the xxhash of a markdown source, used as a render
// cache key.
func ContentKey(source string) uint64 {
	return xxhash.Sum64String(source)
}
