// Package ecdsap256 wraps NIST P-256 ECDSA key generation and fixed-format
// signing/verification over a pre-computed SHA-256 digest, matching the
// original implementation's use of ring's ECDSA_P256_SHA256_FIXED_SIGNING.
//
// P-256 is a standard NIST curve with direct support in the standard
// library; no third-party elliptic-curve package in the reference corpus
// implements it (the teacher's own crypto dependency, go-secp256k1, is
// restricted to the secp256k1 curve), so crypto/ecdsa is used here
// rather than an ecosystem package.
package ecdsap256

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"math/big"

	"github.com/pkg/errors"
)

// signatureFieldLen is the fixed byte width of each of r and s in the
// P-256 fixed-format signature encoding (32 bytes each, concatenated).
const signatureFieldLen = 32

// PublicKeyLen is the fixed byte length of the raw (uncompressed,
// concatenated X||Y) public key encoding used on the wire.
const PublicKeyLen = 2 * signatureFieldLen

// NewKeyPair generates a new P-256 keypair and returns its PKCS8-encoded
// private key plus its raw (X||Y) public key.
func NewKeyPair() (pkcs8, publicKey []byte, err error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to generate P-256 key")
	}

	pkcs8, err = x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to marshal PKCS8 private key")
	}

	return pkcs8, marshalPublicKey(&priv.PublicKey), nil
}

// Sign signs digest (the trimmed-copy transaction id, see transaction
// package) with the PKCS8-encoded private key and returns a fixed-format
// (r||s) signature.
func Sign(pkcs8, digest []byte) ([]byte, error) {
	key, err := parsePrivateKey(pkcs8)
	if err != nil {
		return nil, err
	}

	r, s, err := ecdsa.Sign(rand.Reader, key, digest)
	if err != nil {
		return nil, errors.Wrap(err, "ecdsa sign failed")
	}

	return marshalSignature(r, s), nil
}

// Verify verifies a fixed-format (r||s) signature over digest against the
// raw (X||Y) public key.
func Verify(publicKey, signature, digest []byte) bool {
	if len(publicKey) != PublicKeyLen || len(signature) != 2*signatureFieldLen {
		return false
	}

	x := new(big.Int).SetBytes(publicKey[:signatureFieldLen])
	y := new(big.Int).SetBytes(publicKey[signatureFieldLen:])
	key := &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}

	r := new(big.Int).SetBytes(signature[:signatureFieldLen])
	s := new(big.Int).SetBytes(signature[signatureFieldLen:])

	return ecdsa.Verify(key, digest, r, s)
}

func parsePrivateKey(pkcs8 []byte) (*ecdsa.PrivateKey, error) {
	raw, err := x509.ParsePKCS8PrivateKey(pkcs8)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse PKCS8 private key")
	}
	key, ok := raw.(*ecdsa.PrivateKey)
	if !ok {
		return nil, errors.New("PKCS8 key is not an ECDSA private key")
	}
	return key, nil
}

func marshalPublicKey(pub *ecdsa.PublicKey) []byte {
	out := make([]byte, PublicKeyLen)
	pub.X.FillBytes(out[:signatureFieldLen])
	pub.Y.FillBytes(out[signatureFieldLen:])
	return out
}

func marshalSignature(r, s *big.Int) []byte {
	out := make([]byte, 2*signatureFieldLen)
	r.FillBytes(out[:signatureFieldLen])
	s.FillBytes(out[signatureFieldLen:])
	return out
}
