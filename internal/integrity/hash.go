package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/alfredjeanlab/esaudit/internal/model"
)

// NullHash is the predecessor hash carried by the first event of a chain.
const NullHash = "0000000000000000000000000000000000000000000000000000000000000000"

// DigestLength is the length of a hex-encoded SHA-256 digest.
const DigestLength = sha256.Size * 2

func hashString(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func hashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// EventHash computes the digest of a single event.
//
// The metadata fields are joined with "|" in a fixed order and hashed; the data
// value is hashed separately, using original verbatim when it is non-nil and a
// canonical re-serialization of evt.Data otherwise. The result is the hash of
// the two hex digests concatenated.
func EventHash(evt model.Event, original []byte) (string, error) {
	metadata := strings.Join([]string{
		evt.SpecVersion,
		evt.ID,
		evt.PredecessorHash,
		evt.Time,
		evt.Source,
		evt.Subject,
		evt.Type,
		evt.DataContentType,
	}, "|")

	payload := original
	if payload == nil {
		var err error
		payload, err = Canonical(evt.Data)
		if err != nil {
			return "", err
		}
	}

	return hashString(hashString(metadata), hashBytes(payload)), nil
}

// EntryHash computes the digest of a backup entry, preferring the verbatim data
// bytes captured at read time.
func EntryHash(e model.Entry) (string, error) {
	return EventHash(e.Payload.Event, e.OriginalData)
}

// HashPair combines two digests into their parent digest. Order matters.
func HashPair(left, right string) string {
	return hashString(left, right)
}

// IsDigest reports whether s looks like a digest produced by this package.
func IsDigest(s string) bool {
	if len(s) != DigestLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
