package analysis

import (
	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

// Shake256 is a length-preserving SHAKE256 hash used as a classical control.
func Shake256(data []byte) ([]byte, error) {
	h := sha3.NewShake256()
	h.Write(data)
	out := make([]byte, len(data))
	if _, err := h.Read(out); err != nil {
		return nil, errors.Wrap(err, "shake256 read")
	}
	return out, nil
}

// Blake3 is a length-preserving BLAKE3 XOF hash used as a classical control.
func Blake3(data []byte) ([]byte, error) {
	h := blake3.New()
	if _, err := h.Write(data); err != nil {
		return nil, errors.Wrap(err, "blake3 write")
	}
	out := make([]byte, len(data))
	if _, err := h.Digest().Read(out); err != nil {
		return nil, errors.Wrap(err, "blake3 read")
	}
	return out, nil
}

// Baseline returns the named control hash. "none" and "" return nil.
func Baseline(name string) (HashFunc, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "shake256":
		return Shake256, nil
	case "blake3":
		return Blake3, nil
	}
	return nil, errors.Errorf("unknown baseline %q (want none, shake256 or blake3)", name)
}
