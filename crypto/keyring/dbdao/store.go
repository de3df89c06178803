package dbdao

import (
	"encoding/json"
	"sort"

	errorsmod "cosmossdk.io/errors"
	dbm "github.com/cosmos/cosmos-db"

	"github.com/initia-labs/gaia-sdk-go/crypto/keyring"
	"github.com/initia-labs/gaia-sdk-go/types"
)

var walletPrefix = []byte("wallet/")

var (
	_ keyring.KeyDAO  = (*Store)(nil)
	_ keyring.Deleter = (*Store)(nil)
)

// Store is a KeyDAO on a cosmos-db database. Wallets are JSON encoded
// under wallet/<name>.
type Store struct {
	db dbm.DB
}

// NewStore wraps db.
func NewStore(db dbm.DB) *Store {
	return &Store{db: db}
}

// OpenStore opens (or creates) a goleveldb backed store called name in dir.
func OpenStore(name, dir string) (*Store, error) {
	db, err := dbm.NewDB(name, dbm.GoLevelDBBackend, dir)
	if err != nil {
		return nil, err
	}

	return NewStore(db), nil
}

// NewMemStore returns a store that lives in memory.
func NewMemStore() *Store {
	return NewStore(dbm.NewMemDB())
}

func walletKey(name string) []byte {
	return append(append([]byte{}, walletPrefix...), name...)
}

func (s *Store) Write(name string, wallet keyring.Wallet) error {
	bz, err := json.Marshal(wallet)
	if err != nil {
		return err
	}

	return s.db.SetSync(walletKey(name), bz)
}

func (s *Store) Read(name string) (keyring.Wallet, error) {
	bz, err := s.db.Get(walletKey(name))
	if err != nil {
		return keyring.Wallet{}, err
	}
	if bz == nil {
		return keyring.Wallet{}, errorsmod.Wrap(types.ErrKeyNotFound, name)
	}

	var wallet keyring.Wallet
	if err := json.Unmarshal(bz, &wallet); err != nil {
		return keyring.Wallet{}, errorsmod.Wrapf(types.ErrInvalidArgument, "corrupted wallet %s: %s", name, err)
	}

	return wallet, nil
}

func (s *Store) Delete(name string) error {
	key := walletKey(name)

	ok, err := s.db.Has(key)
	if err != nil {
		return err
	}
	if !ok {
		return errorsmod.Wrap(types.ErrKeyNotFound, name)
	}

	return s.db.DeleteSync(key)
}

// List returns the stored wallet names in sorted order.
func (s *Store) List() ([]string, error) {
	iter, err := dbm.IteratePrefix(s.db, walletPrefix)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var names []string
	for ; iter.Valid(); iter.Next() {
		names = append(names, string(iter.Key()[len(walletPrefix):]))
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	sort.Strings(names)

	return names, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
