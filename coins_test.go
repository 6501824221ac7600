package sui

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BigdraCo1/sui-object-model-workshop/api"
)

// fakeCoinPager serves pre-canned pages and records how far consumers
// actually read.
type fakeCoinPager struct {
	pages       [][]*api.Coin
	fetchCalls  int
	servedCoins int
}

func (p *fakeCoinPager) GetCoins(_ context.Context, _ AccountAddress, _ string, cursor *string, _ *uint32) (*api.CoinPage, error) {
	index := 0
	if cursor != nil {
		parsed, err := strconv.Atoi(*cursor)
		if err != nil {
			return nil, err
		}
		index = parsed
	}
	p.fetchCalls++
	if index >= len(p.pages) {
		return &api.CoinPage{}, nil
	}
	page := &api.CoinPage{Data: p.pages[index]}
	p.servedCoins += len(page.Data)
	if index+1 < len(p.pages) {
		page.HasNextPage = true
		page.NextCursor = strconv.Itoa(index + 1)
	}
	return page, nil
}

func testCoin(id string, balance uint64) *api.Coin {
	return &api.Coin{
		CoinType:     SuiCoinType,
		CoinObjectId: id,
		Version:      "3",
		Digest:       ObjectDigest{1}.String(),
		Balance:      strconv.FormatUint(balance, 10),
	}
}

func TestFetchCoin_StopsAtFirstQualifyingCoin(t *testing.T) {
	pager := &fakeCoinPager{pages: [][]*api.Coin{
		{testCoin("0x1", 1_000_000), testCoin("0x2", 2_000_000)},
		{testCoin("0x3", 6_000_000)},
		{testCoin("0x4", 9_000_000)},
	}}

	coin, err := FetchCoin(context.Background(), pager, AccountTwo, SuiCoinType, 5_000_000)
	assert.NoError(t, err)
	assert.NotNil(t, coin)
	assert.Equal(t, "0x3", coin.CoinObjectId)

	// The page holding 0x4 must never have been fetched.
	assert.Equal(t, 2, pager.fetchCalls)
	assert.Equal(t, 3, pager.servedCoins)
}

func TestFetchCoin_NoMatchIsNotAnError(t *testing.T) {
	pager := &fakeCoinPager{pages: [][]*api.Coin{
		{testCoin("0x1", 1_000)},
	}}

	coin, err := FetchCoin(context.Background(), pager, AccountTwo, SuiCoinType, 5_000_000)
	assert.NoError(t, err)
	assert.Nil(t, coin)
}

func TestFetchCoin_EmptyStream(t *testing.T) {
	pager := &fakeCoinPager{}

	coin, err := FetchCoin(context.Background(), pager, AccountTwo, SuiCoinType, 1)
	assert.NoError(t, err)
	assert.Nil(t, coin)
	assert.Equal(t, 1, pager.fetchCalls)
}

func TestCoinIterator_WalksAllPages(t *testing.T) {
	pager := &fakeCoinPager{pages: [][]*api.Coin{
		{testCoin("0x1", 1), testCoin("0x2", 2)},
		{testCoin("0x3", 3)},
	}}

	iterator := NewCoinIterator(pager, AccountTwo, SuiCoinType)
	var seen []string
	for {
		coin, err := iterator.Next(context.Background())
		assert.NoError(t, err)
		if coin == nil {
			break
		}
		seen = append(seen, coin.CoinObjectId)
	}
	assert.Equal(t, []string{"0x1", "0x2", "0x3"}, seen)

	// Exhausted iterators stay exhausted.
	coin, err := iterator.Next(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, coin)
}

func TestCoinObjectRef(t *testing.T) {
	coin := testCoin("0x2", 10)
	ref, err := CoinObjectRef(coin)
	assert.NoError(t, err)
	assert.Equal(t, AccountTwo, ref.ObjectId)
	assert.Equal(t, uint64(3), ref.Version)
	assert.Equal(t, ObjectDigest{1}, ref.Digest)

	coin.Digest = "???"
	_, err = CoinObjectRef(coin)
	assert.Error(t, err)
}
