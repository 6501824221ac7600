package api

import "strconv"

// Coin is one coin object owned by an address, as returned by the
// paginated coin query.
type Coin struct {
	CoinType     string `json:"coinType"`
	CoinObjectId string `json:"coinObjectId"`
	// Version and Balance are decimal strings on the wire.
	Version             string `json:"version"`
	Digest              string `json:"digest"`
	Balance             string `json:"balance"`
	PreviousTransaction string `json:"previousTransaction,omitempty"`
}

// BalanceUint64 parses the coin balance, in the smallest unit (MIST).
func (c *Coin) BalanceUint64() (uint64, error) {
	return strconv.ParseUint(c.Balance, 10, 64)
}

// VersionUint64 parses the coin object version.
func (c *Coin) VersionUint64() (uint64, error) {
	return strconv.ParseUint(c.Version, 10, 64)
}

// CoinPage is one page of a coin query. NextCursor is only meaningful
// when HasNextPage is true.
type CoinPage struct {
	Data        []*Coin `json:"data"`
	NextCursor  string  `json:"nextCursor,omitempty"`
	HasNextPage bool    `json:"hasNextPage"`
}
