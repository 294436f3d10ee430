package keys

import (
	"context"
	"math"

	json "github.com/goccy/go-json"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/jsonerr"
	"github.com/kbukum/faultline/kvstore"
)

// AccountInfo is the state kept for a public key.
type AccountInfo struct {
	Balance    uint64    `json:"balance"`
	Owner      PublicKey `json:"owner"`
	Executable bool      `json:"executable"`
	Data       []byte    `json:"data,omitempty"`
}

// Accounts stores AccountInfo records in a kvstore collection keyed by
// public key.
type Accounts struct {
	coll *kvstore.Collection
}

// NewAccounts wraps coll.
func NewAccounts(coll *kvstore.Collection) *Accounts {
	return &Accounts{coll: coll}
}

// Get returns the account for pk. A missing record is AccountNotFound and
// a record that does not decode is UnableToDeserializeAccountInfo.
func (a *Accounts) Get(ctx context.Context, pk PublicKey) (AccountInfo, *errors.Error) {
	res := a.coll.Get(ctx, pk[:])
	if err := res.Err(); err != nil {
		return AccountInfo{}, accountErr(err)
	}
	return decodeAccount(res.Value())
}

// Put replaces the account for pk.
func (a *Accounts) Put(ctx context.Context, pk PublicKey, info AccountInfo) *errors.Error {
	data, err := jsonerr.Marshal(info)
	if err != nil {
		return err
	}
	return a.coll.Put(ctx, pk[:], data)
}

// Credit adds amount to the balance of pk, creating the account when it
// does not exist.
func (a *Accounts) Credit(ctx context.Context, pk PublicKey, amount uint64) *errors.Error {
	return a.adjust(ctx, pk, true, func(info *AccountInfo) *errors.Error {
		if info.Balance > math.MaxUint64-amount {
			return errors.Transaction("balance overflow for " + pk.String())
		}
		info.Balance += amount
		return nil
	})
}

// Debit subtracts amount from the balance of pk.
func (a *Accounts) Debit(ctx context.Context, pk PublicKey, amount uint64) *errors.Error {
	return a.adjust(ctx, pk, false, func(info *AccountInfo) *errors.Error {
		if info.Balance < amount {
			return errors.Transaction("insufficient funds for " + pk.String())
		}
		info.Balance -= amount
		return nil
	})
}

func (a *Accounts) adjust(ctx context.Context, pk PublicKey, create bool, fn func(*AccountInfo) *errors.Error) *errors.Error {
	err := a.coll.Update(ctx, pk[:], func(old []byte, found bool) ([]byte, error) {
		var info AccountInfo
		switch {
		case found:
			var derr *errors.Error
			if info, derr = decodeAccount(old); derr != nil {
				return nil, derr
			}
		case !create:
			return nil, errors.New(errors.KindAccountNotFound)
		default:
			info.Owner = pk
		}
		if ferr := fn(&info); ferr != nil {
			return nil, ferr
		}
		data, merr := jsonerr.Marshal(info)
		if merr != nil {
			return nil, merr
		}
		return data, nil
	})
	if err != nil {
		return accountErr(err)
	}
	return nil
}

func decodeAccount(data []byte) (AccountInfo, *errors.Error) {
	var info AccountInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return AccountInfo{}, errors.New(errors.KindUnableToDeserializeAccountInfo)
	}
	return info, nil
}

func accountErr(err *errors.Error) *errors.Error {
	if s, ok := err.Store(); ok && s.Code == errors.StoreKeyNotFound {
		return errors.New(errors.KindAccountNotFound)
	}
	return err
}
