package crypto_test

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	"github.com/tarantool/go-vss/crypto"
)

func newKey(t *testing.T) *secp256k1.PrivateKey {
	t.Helper()

	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	return key
}

func TestSecp256k1WithoutKeys(t *testing.T) {
	t.Parallel()

	signer := crypto.NewSecp256k1(nil)

	data := []byte("abc")

	sig, err := signer.Sign(data)
	require.ErrorIs(t, err, crypto.ErrMissingPrivateKey)
	require.Nil(t, sig, "signature must be nil")

	err = signer.Verify(data, make([]byte, crypto.CompactSignatureSize))
	require.ErrorIs(t, err, crypto.ErrMissingPublicKey)
	require.Nil(t, signer.PublicKey())
}

func TestSecp256k1SignVerify(t *testing.T) {
	t.Parallel()

	signer := crypto.NewSecp256k1(newKey(t))

	data := []byte("abc")

	sig, err := signer.Sign(data)
	require.NoError(t, err, "Sign must be successful")
	require.Len(t, sig, crypto.CompactSignatureSize)

	err = signer.Verify(data, sig)
	require.NoError(t, err, "Verify must be successful")
}

func TestSecp256k1Deterministic(t *testing.T) {
	t.Parallel()

	signer := crypto.NewSecp256k1(newKey(t))

	first, err := signer.Sign([]byte("abc"))
	require.NoError(t, err)

	second, err := signer.Sign([]byte("abc"))
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestSecp256k1VerifyOnly(t *testing.T) {
	t.Parallel()

	key := newKey(t)
	signer := crypto.NewSecp256k1(key)

	sig, err := signer.Sign([]byte("abc"))
	require.NoError(t, err)

	verifier := crypto.NewSecp256k1Verifier(key.PubKey())
	require.NoError(t, verifier.Verify([]byte("abc"), sig))

	_, err = verifier.Sign([]byte("abc"))
	require.ErrorIs(t, err, crypto.ErrMissingPrivateKey)
}

func TestSecp256k1VerifyMismatch(t *testing.T) {
	t.Parallel()

	signer := crypto.NewSecp256k1(newKey(t))

	sig, err := signer.Sign([]byte("abc"))
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
		sig  []byte
	}{
		{"other data", []byte("abd"), sig},
		{"short signature", []byte("abc"), sig[:10]},
		{"zero signature", []byte("abc"), make([]byte, crypto.CompactSignatureSize)},
		{"other key", []byte("abc"), func() []byte {
			other, err := crypto.NewSecp256k1(newKey(t)).Sign([]byte("abc"))
			require.NoError(t, err)

			return other
		}()},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			require.ErrorIs(t, signer.Verify(test.data, test.sig), crypto.ErrInvalidSignature)
		})
	}
}

func TestSecp256k1_PublicKey(t *testing.T) {
	t.Parallel()

	key := newKey(t)
	signer := crypto.NewSecp256k1(key)

	require.Equal(t, "ECDSA-secp256k1", signer.Name())
	require.Len(t, signer.PublicKey(), crypto.PublicKeySize)
	require.Equal(t, key.PubKey().SerializeCompressed(), signer.PublicKey())
}
