package header

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/tarantool/go-vss/crypto"
	"github.com/tarantool/go-vss/internal/options"
)

// SigningConstant is a 64-byte salt which, with the public key and the timestamp
// appended, is signed to prove knowledge of the private key.
const SigningConstant = "VSS Signature Authorizer Signing Salt Constant.................."

// AuthorizationHeader carries the token.
const AuthorizationHeader = "Authorization"

var (
	// ErrClockBeforeEpoch is returned when the system clock is before 1970.
	ErrClockBeforeEpoch = errors.New("system time must be at least Jan 1, 1970")
	// ErrInvalidToken is returned by ParseToken for malformed tokens.
	ErrInvalidToken = errors.New("invalid token")
)

type sigsAuthOptions struct {
	now func() time.Time
}

// WithClock overrides the clock used to timestamp tokens.
func WithClock(now func() time.Time) options.OptionCallback[sigsAuthOptions] {
	return func(opts *sigsAuthOptions) {
		opts.now = now
	}
}

// SigsAuth proves knowledge of a private key on every request.
//
// It needs no round trip to establish identity and lets the server bind all data
// of one key to one namespace. A fresh token is signed on every call.
type SigsAuth struct {
	signer   crypto.Signer
	pubKey   []byte
	defaults map[string]string
	now      func() time.Time
}

var _ Provider = (*SigsAuth)(nil)

// NewSigsAuth creates a provider signing with key. The defaults are added to every
// request; an Authorization entry among them is always replaced by the token.
func NewSigsAuth(
	key *secp256k1.PrivateKey,
	defaults map[string]string,
	sOpts ...options.OptionCallback[sigsAuthOptions],
) *SigsAuth {
	var pubKey *secp256k1.PublicKey
	if key != nil {
		pubKey = key.PubKey()
	}

	return NewSigsAuthWithSigner(crypto.NewSecp256k1(key), pubKey, defaults, sOpts...)
}

// NewSigsAuthWithSigner creates a provider with an external signer, e.g. one
// keeping the private key out of process. The signer must produce compact
// secp256k1 signatures over the SHA-256 digest for pubKey.
func NewSigsAuthWithSigner(
	signer crypto.Signer,
	pubKey *secp256k1.PublicKey,
	defaults map[string]string,
	sOpts ...options.OptionCallback[sigsAuthOptions],
) *SigsAuth {
	opts := options.ApplyOptions(func() sigsAuthOptions {
		return sigsAuthOptions{now: time.Now}
	}, sOpts)

	filtered := make(map[string]string, len(defaults))

	for name, value := range defaults {
		if !strings.EqualFold(name, AuthorizationHeader) {
			filtered[name] = value
		}
	}

	var rawPubKey []byte
	if pubKey != nil {
		rawPubKey = pubKey.SerializeCompressed()
	}

	return &SigsAuth{
		signer:   signer,
		pubKey:   rawPubKey,
		defaults: filtered,
		now:      opts.now,
	}
}

// Headers implements Provider interface. The request body is not signed.
func (p *SigsAuth) Headers(_ context.Context, _ []byte) (map[string]string, error) {
	token, err := p.Token()
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(p.defaults)+1)
	maps.Copy(headers, p.defaults)
	headers[AuthorizationHeader] = token

	return headers, nil
}

// Token builds a token for the current time.
func (p *SigsAuth) Token() (string, error) {
	now := p.now().Unix()
	if now < 0 {
		return "", ErrClockBeforeEpoch
	}

	pubKey := p.pubKey
	timestamp := strconv.FormatInt(now, 10)

	sig, err := p.signer.Sign(signedBytes(pubKey, timestamp))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	var b strings.Builder

	b.Grow(2*len(pubKey) + 2*len(sig) + len(timestamp))
	b.WriteString(hex.EncodeToString(pubKey))
	b.WriteString(hex.EncodeToString(sig))
	b.WriteString(timestamp)

	return b.String(), nil
}

func signedBytes(pubKey []byte, timestamp string) []byte {
	data := make([]byte, 0, len(SigningConstant)+len(pubKey)+len(timestamp))
	data = append(data, SigningConstant...)
	data = append(data, pubKey...)
	data = append(data, timestamp...)

	return data
}

// Token is a decoded Authorization token.
type Token struct {
	PublicKey *secp256k1.PublicKey
	Signature []byte
	Timestamp int64
}

// ParseToken decodes a token produced by SigsAuth.
func ParseToken(token string) (Token, error) {
	const (
		pubKeyHexLen = 2 * crypto.PublicKeySize
		sigHexLen    = 2 * crypto.CompactSignatureSize
	)

	if len(token) <= pubKeyHexLen+sigHexLen {
		return Token{}, fmt.Errorf("%w: too short", ErrInvalidToken)
	}

	rawPubKey, err := hex.DecodeString(token[:pubKeyHexLen])
	if err != nil {
		return Token{}, fmt.Errorf("%w: public key: %w", ErrInvalidToken, err)
	}

	pubKey, err := secp256k1.ParsePubKey(rawPubKey)
	if err != nil {
		return Token{}, fmt.Errorf("%w: public key: %w", ErrInvalidToken, err)
	}

	sig, err := hex.DecodeString(token[pubKeyHexLen : pubKeyHexLen+sigHexLen])
	if err != nil {
		return Token{}, fmt.Errorf("%w: signature: %w", ErrInvalidToken, err)
	}

	timestamp, err := strconv.ParseInt(token[pubKeyHexLen+sigHexLen:], 10, 64)
	if err != nil || timestamp < 0 {
		return Token{}, fmt.Errorf("%w: timestamp", ErrInvalidToken)
	}

	return Token{PublicKey: pubKey, Signature: sig, Timestamp: timestamp}, nil
}

// Verify checks the signature of the token. Freshness of the timestamp is not checked.
func (t Token) Verify() error {
	data := signedBytes(t.PublicKey.SerializeCompressed(), strconv.FormatInt(t.Timestamp, 10))

	var verifier crypto.Verifier = crypto.NewSecp256k1Verifier(t.PublicKey)

	return verifier.Verify(data, t.Signature)
}
