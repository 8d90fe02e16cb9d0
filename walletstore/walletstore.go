// Package walletstore persists the local address book of wallets to
// disk, grounded on original_source/src/wallets.rs's Wallets
// (save_to_file/load_from_file), rendered with encoding/gob in place of
// bincode.
package walletstore

import (
	"encoding/gob"
	"os"

	"github.com/pkg/errors"

	"github.com/ZhuZhengyi/blockchain-go/wallet"
)

// WalletFile is the default file name wallets are persisted under,
// relative to the working directory.
const WalletFile = "wallet.dat"

// Store is an address-book of locally-held wallets, backed by a single
// gob-encoded file.
type Store struct {
	path    string
	wallets map[string]*wallet.Wallet
}

// Load reads the wallet file at path, or returns an empty Store if it
// does not yet exist.
func Load(path string) (*Store, error) {
	s := &Store{path: path, wallets: make(map[string]*wallet.Wallet)}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "walletstore: open wallet file")
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(&s.wallets); err != nil {
		return nil, errors.Wrap(err, "walletstore: decode wallet file")
	}
	return s, nil
}

// Save writes the store's contents back to its file.
func (s *Store) Save() error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return errors.Wrap(err, "walletstore: open wallet file for write")
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(s.wallets); err != nil {
		return errors.Wrap(err, "walletstore: encode wallet file")
	}
	return nil
}

// CreateWallet generates a fresh wallet, adds it to the store, persists
// the store, and returns its address.
func (s *Store) CreateWallet() (string, error) {
	w, err := wallet.New()
	if err != nil {
		return "", err
	}

	address := w.GetAddress()
	s.wallets[address] = w

	if err := s.Save(); err != nil {
		return "", err
	}
	log.Infof("created wallet %s", address)
	return address, nil
}

// GetAddresses returns every address held in the store.
func (s *Store) GetAddresses() []string {
	addresses := make([]string, 0, len(s.wallets))
	for address := range s.wallets {
		addresses = append(addresses, address)
	}
	return addresses
}

// GetWallet returns the wallet for the given address, if held.
func (s *Store) GetWallet(address string) (*wallet.Wallet, bool) {
	w, ok := s.wallets[address]
	return w, ok
}
