// Package hashutil provides the digest and address-encoding primitives
// shared by wallet, block and transaction: SHA-256, RIPEMD-160, and
// Base58Check.
package hashutil

import (
	"crypto/sha256"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/crypto/ripemd160"
)

// AddressChecksumLen is the length, in bytes, of the checksum appended to
// a Base58Check address payload.
const AddressChecksumLen = 4

// AddressVersion is the version byte prefixed to every address payload.
const AddressVersion = 0x00

// Sha256 returns the SHA-256 digest of data.
func Sha256(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// Ripemd160 returns the RIPEMD-160 digest of data.
func Ripemd160(data []byte) []byte {
	h := ripemd160.New()
	h.Write(data) // ripemd160.digest.Write never returns an error
	return h.Sum(nil)
}

// HashPubKey computes RIPEMD-160(SHA-256(pubKey)), the 20-byte value an
// output is locked to.
func HashPubKey(pubKey []byte) []byte {
	return Ripemd160(Sha256(pubKey))
}

// Checksum returns the first AddressChecksumLen bytes of
// SHA-256(SHA-256(payload)).
func Checksum(payload []byte) []byte {
	first := Sha256(payload)
	second := Sha256(first)
	return second[:AddressChecksumLen]
}

// ConvertAddress builds a Base58Check address string from a pubkey hash:
// Base58(version || pubKeyHash || checksum(version || pubKeyHash)).
func ConvertAddress(pubKeyHash []byte) string {
	payload := make([]byte, 0, 1+len(pubKeyHash)+AddressChecksumLen)
	payload = append(payload, AddressVersion)
	payload = append(payload, pubKeyHash...)
	payload = append(payload, Checksum(payload)...)
	return base58.Encode(payload)
}

// ValidateAddress reports whether address is a well-formed Base58Check
// address whose checksum matches its payload.
func ValidateAddress(address string) bool {
	payload := base58.Decode(address)
	if len(payload) <= AddressChecksumLen {
		return false
	}
	actualChecksum := payload[len(payload)-AddressChecksumLen:]
	version := payload[0]
	pubKeyHash := payload[1 : len(payload)-AddressChecksumLen]

	target := make([]byte, 0, 1+len(pubKeyHash))
	target = append(target, version)
	target = append(target, pubKeyHash...)
	targetChecksum := Checksum(target)

	return string(actualChecksum) == string(targetChecksum)
}

// PubKeyHashFromAddress extracts the pubkey hash payload from an address.
// The checksum is not checked (see ValidateAddress); a string that does
// not decode to a payload longer than the checksum yields nil.
func PubKeyHashFromAddress(address string) []byte {
	payload := base58.Decode(address)
	if len(payload) <= AddressChecksumLen {
		return nil
	}
	return payload[1 : len(payload)-AddressChecksumLen]
}
