package crypto

import (
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/tarantool/go-vss/hasher"
)

const (
	// CompactSignatureSize is the size of a compact r||s signature.
	CompactSignatureSize = 64
	// PublicKeySize is the size of a compressed public key.
	PublicKeySize = secp256k1.PubKeyBytesLenCompressed
)

var (
	// ErrMissingPrivateKey is returned on Sign without a private key.
	ErrMissingPrivateKey = errors.New("private key is missing")
	// ErrMissingPublicKey is returned on Verify without a public key.
	ErrMissingPublicKey = errors.New("public key is missing")
	// ErrInvalidSignature is returned when a signature does not match the data.
	ErrInvalidSignature = errors.New("invalid signature")
)

var _ SignerVerifier = Secp256k1{} //nolint:exhaustruct

// Secp256k1 represents ECDSA over secp256k1 for signing/verification
// (with SHA256 as digest calculation function). Signatures are
// serialized in the 64-byte compact form.
type Secp256k1 struct {
	privateKey *secp256k1.PrivateKey
	publicKey  *secp256k1.PublicKey
	hasher     hasher.Hasher
}

// NewSecp256k1 creates a signer-verifier for the private key.
func NewSecp256k1(privKey *secp256k1.PrivateKey) Secp256k1 {
	var pubKey *secp256k1.PublicKey
	if privKey != nil {
		pubKey = privKey.PubKey()
	}

	return Secp256k1{
		privateKey: privKey,
		publicKey:  pubKey,
		hasher:     hasher.NewSHA256Hasher(),
	}
}

// NewSecp256k1Verifier creates a verify-only instance for the public key.
func NewSecp256k1Verifier(pubKey *secp256k1.PublicKey) Secp256k1 {
	return Secp256k1{
		privateKey: nil,
		publicKey:  pubKey,
		hasher:     hasher.NewSHA256Hasher(),
	}
}

// Name implements SignerVerifier interface.
func (s Secp256k1) Name() string {
	return "ECDSA-secp256k1"
}

// PublicKey returns the public key in its 33-byte compressed form.
func (s Secp256k1) PublicKey() []byte {
	if s.publicKey == nil {
		return nil
	}

	return s.publicKey.SerializeCompressed()
}

// Sign generates SHA-256 digest and signs it with RFC 6979 nonces.
func (s Secp256k1) Sign(data []byte) ([]byte, error) {
	if s.privateKey == nil {
		return nil, fmt.Errorf("failed to sign: %w", ErrMissingPrivateKey)
	}

	digest, err := s.hasher.Hash(data)
	if err != nil {
		return nil, fmt.Errorf("failed to get hash: %w", err)
	}

	sig := ecdsa.Sign(s.privateKey, digest)

	out := make([]byte, CompactSignatureSize)
	r, sv := sig.R(), sig.S()
	r.PutBytesUnchecked(out[:32])
	sv.PutBytesUnchecked(out[32:])

	return out, nil
}

// Verify checks a compact signature against the SHA-256 digest of data.
func (s Secp256k1) Verify(data []byte, signature []byte) error {
	if s.publicKey == nil {
		return fmt.Errorf("failed to verify: %w", ErrMissingPublicKey)
	}

	if len(signature) != CompactSignatureSize {
		return fmt.Errorf("failed to verify: %w: expected %d bytes, got %d",
			ErrInvalidSignature, CompactSignatureSize, len(signature))
	}

	digest, err := s.hasher.Hash(data)
	if err != nil {
		return fmt.Errorf("failed to get hash: %w", err)
	}

	var r, sv secp256k1.ModNScalar
	if overflow := r.SetByteSlice(signature[:32]); overflow || r.IsZero() {
		return fmt.Errorf("failed to verify: %w: bad r", ErrInvalidSignature)
	}

	if overflow := sv.SetByteSlice(signature[32:]); overflow || sv.IsZero() {
		return fmt.Errorf("failed to verify: %w: bad s", ErrInvalidSignature)
	}

	if !ecdsa.NewSignature(&r, &sv).Verify(digest, s.publicKey) {
		return fmt.Errorf("failed to verify: %w", ErrInvalidSignature)
	}

	return nil
}
