package sui

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/BigdraCo1/sui-object-model-workshop/api"
)

// DefaultFundThreshold is the minimum balance, in MIST, a coin must hold
// to be considered able to cover gas in the examples. Exposed as
// configuration; override per call where a different floor applies.
var DefaultFundThreshold = uint64(5_000_000)

// CoinPager fetches one page of coins at a time. *NodeClient implements
// it; tests substitute their own.
type CoinPager interface {
	GetCoins(ctx context.Context, owner AccountAddress, coinType string, cursor *string, limit *uint32) (*api.CoinPage, error)
}

// CoinIterator walks the coins of one owner lazily, fetching pages from
// the node only as they are consumed. The order is the node's pagination
// order. Restart by creating a new iterator; coins are always fetched
// fresh because they may have been spent since a previous query.
type CoinIterator struct {
	pager    CoinPager
	owner    AccountAddress
	coinType string
	page     []*api.Coin
	cursor   *string
	started  bool
	done     bool
}

// NewCoinIterator creates an iterator over owner's coins of coinType.
func NewCoinIterator(pager CoinPager, owner AccountAddress, coinType string) *CoinIterator {
	return &CoinIterator{pager: pager, owner: owner, coinType: coinType}
}

// Next returns the next coin, or nil when the stream is exhausted.
// Exhaustion is a normal condition, not an error.
func (it *CoinIterator) Next(ctx context.Context) (*api.Coin, error) {
	for len(it.page) == 0 {
		if it.done {
			return nil, nil
		}
		if err := it.fetchPage(ctx); err != nil {
			return nil, err
		}
	}
	coin := it.page[0]
	it.page = it.page[1:]
	return coin, nil
}

func (it *CoinIterator) fetchPage(ctx context.Context) error {
	if it.started && it.cursor == nil {
		it.done = true
		return nil
	}
	page, err := it.pager.GetCoins(ctx, it.owner, it.coinType, it.cursor, nil)
	if err != nil {
		return err
	}
	it.started = true
	it.page = page.Data
	if page.HasNextPage {
		cursor := page.NextCursor
		it.cursor = &cursor
	} else {
		it.cursor = nil
		if len(page.Data) == 0 {
			it.done = true
		}
	}
	return nil
}

// FetchCoin returns the first coin of owner whose balance meets
// minBalance, consuming the stream no further than that coin. Returns
// (nil, nil) when no coin qualifies; callers fall back to the faucet.
func FetchCoin(ctx context.Context, pager CoinPager, owner AccountAddress, coinType string, minBalance uint64) (*api.Coin, error) {
	iterator := NewCoinIterator(pager, owner, coinType)
	for {
		coin, err := iterator.Next(ctx)
		if err != nil {
			return nil, err
		}
		if coin == nil {
			return nil, nil
		}
		balance, err := coin.BalanceUint64()
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "coin %s balance", coin.CoinObjectId), ErrNetwork)
		}
		if balance >= minBalance {
			return coin, nil
		}
	}
}

// CoinObjectRef converts a coin query result into the object reference
// used as a transaction input or gas payment.
func CoinObjectRef(coin *api.Coin) (ObjectRef, error) {
	objectId, err := ParseAccountAddress(coin.CoinObjectId)
	if err != nil {
		return ObjectRef{}, err
	}
	version, err := coin.VersionUint64()
	if err != nil {
		return ObjectRef{}, errors.Wrapf(err, "coin %s version", coin.CoinObjectId)
	}
	digest, err := ParseObjectDigest(coin.Digest)
	if err != nil {
		return ObjectRef{}, err
	}
	return ObjectRef{ObjectId: objectId, Version: version, Digest: digest}, nil
}
