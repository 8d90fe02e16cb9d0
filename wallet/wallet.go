// Package wallet holds a single keypair and derives its address,
// grounded on original_source/src/wallet.rs's Wallet.
package wallet

import (
	"github.com/pkg/errors"

	"github.com/ZhuZhengyi/blockchain-go/ecdsap256"
	"github.com/ZhuZhengyi/blockchain-go/hashutil"
)

// Wallet is a single ECDSA P-256 keypair, identified by its derived
// address.
type Wallet struct {
	Pkcs8     []byte
	PublicKey []byte
}

// New generates a fresh wallet.
func New() (*Wallet, error) {
	pkcs8, publicKey, err := ecdsap256.NewKeyPair()
	if err != nil {
		return nil, errors.Wrap(err, "wallet: generate keypair")
	}
	return &Wallet{Pkcs8: pkcs8, PublicKey: publicKey}, nil
}

// GetAddress returns this wallet's Base58Check address.
func (w *Wallet) GetAddress() string {
	return hashutil.ConvertAddress(hashutil.HashPubKey(w.PublicKey))
}
