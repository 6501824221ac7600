package sui

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/BigdraCo1/sui-object-model-workshop/api"
)

// NetworkConfig is a configuration for the Client and which network to use.
// Use one of the preconfigured [TestnetConfig], [DevnetConfig],
// [MainnetConfig], or [LocalnetConfig] unless you have your own full node.
//
// If FaucetUrl is an empty string "", no faucet client will be made.
type NetworkConfig struct {
	Name      string
	NodeUrl   string
	FaucetUrl string
}

// DevnetConfig is for use with devnet. Devnet resets regularly.
var DevnetConfig = NetworkConfig{
	Name:      "devnet",
	NodeUrl:   "https://fullnode.devnet.sui.io:443",
	FaucetUrl: "https://faucet.devnet.sui.io",
}

// TestnetConfig is for use with testnet. Testnet does not reset.
var TestnetConfig = NetworkConfig{
	Name:      "testnet",
	NodeUrl:   "https://fullnode.testnet.sui.io:443",
	FaucetUrl: "https://faucet.testnet.sui.io",
}

// MainnetConfig is for use with mainnet. There is no faucet for Mainnet,
// as these are real user assets.
var MainnetConfig = NetworkConfig{
	Name:    "mainnet",
	NodeUrl: "https://fullnode.mainnet.sui.io:443",
}

// LocalnetConfig is for use against a locally running network.
var LocalnetConfig = NetworkConfig{
	Name:      "localnet",
	NodeUrl:   "http://127.0.0.1:9000",
	FaucetUrl: "http://127.0.0.1:9123",
}

// NamedNetworks Map from network name to NetworkConfig
var NamedNetworks map[string]NetworkConfig

func init() {
	NamedNetworks = make(map[string]NetworkConfig, 4)
	setNN := func(nc NetworkConfig) {
		NamedNetworks[nc.Name] = nc
	}
	setNN(DevnetConfig)
	setNN(TestnetConfig)
	setNN(MainnetConfig)
	setNN(LocalnetConfig)
}

// SuiClient is an interface for all functionality on the Client. It is a
// combination of [SuiRpcClient] and [SuiFaucetClient] for the purposes of
// mocking and convenience.
type SuiClient interface {
	SuiRpcClient
	SuiFaucetClient
}

// SuiFaucetClient is an interface for all functionality on the Client
// that is faucet related. Its main implementation is [FaucetClient].
type SuiFaucetClient interface {
	// RequestFunds uses the faucet to fund an address, only applies to
	// non-production networks
	RequestFunds(ctx context.Context, address AccountAddress) (uuid.UUID, error)
}

// SuiRpcClient is an interface for all functionality on the Client that
// is node RPC related. Its main implementation is [NodeClient].
type SuiRpcClient interface {
	// SetTimeout adjusts the HTTP client timeout
	SetTimeout(timeout time.Duration)

	// RpcApiVersion retrieves the node's RPC API version
	RpcApiVersion(ctx context.Context) (string, error)

	// GetCoins retrieves one page of coins owned by an address
	GetCoins(ctx context.Context, owner AccountAddress, coinType string, cursor *string, limit *uint32) (*api.CoinPage, error)

	// GetObject retrieves an object by id, including owner metadata such
	// as the initial shared version of shared objects
	GetObject(ctx context.Context, objectId ObjectID, options api.SuiObjectDataOptions) (*api.SuiObjectResponse, error)

	// GetInitialSharedVersion retrieves the initial shared version of a
	// shared object, failing if the object is not shared
	GetInitialSharedVersion(ctx context.Context, objectId ObjectID) (uint64, error)

	// GetReferenceGasPrice retrieves the current reference gas price
	GetReferenceGasPrice(ctx context.Context) (uint64, error)

	// ExecuteTransactionBlock submits a signed transaction with the
	// requested confirmation level
	ExecuteTransactionBlock(ctx context.Context, signedTxn *SignedTransaction, options api.SuiTransactionBlockResponseOptions, requestType api.ExecuteTransactionRequestType) (*api.SuiTransactionBlockResponse, error)
}

// Client is a facade over the multiple types of underlying clients, as the
// user doesn't actually care where the data comes from. It will be then
// handled underneath
//
// To create a new client, please use [NewClient]. An example below for
// Testnet:
//
//	client := NewClient(TestnetConfig)
//
// Implements SuiClient
type Client struct {
	nodeClient   *NodeClient
	faucetClient *FaucetClient
}

// NewClient Creates a new client with a specific network config that can
// be extended in the future
func NewClient(config NetworkConfig) (*Client, error) {
	nodeClient, err := NewNodeClient(config.NodeUrl)
	if err != nil {
		return nil, err
	}
	// Faucet may not be present
	var faucetClient *FaucetClient
	if config.FaucetUrl != "" {
		faucetClient, err = NewFaucetClient(config.FaucetUrl)
		if err != nil {
			return nil, err
		}
	}
	return &Client{
		nodeClient:   nodeClient,
		faucetClient: faucetClient,
	}, nil
}

// SetTimeout adjusts the HTTP client timeout
//
//	client.SetTimeout(5 * time.Millisecond)
func (client *Client) SetTimeout(timeout time.Duration) {
	client.nodeClient.SetTimeout(timeout)
}

// RpcApiVersion retrieves the node's RPC API version
func (client *Client) RpcApiVersion(ctx context.Context) (string, error) {
	return client.nodeClient.RpcApiVersion(ctx)
}

// GetCoins retrieves one page of coins of coinType owned by owner
func (client *Client) GetCoins(ctx context.Context, owner AccountAddress, coinType string, cursor *string, limit *uint32) (*api.CoinPage, error) {
	return client.nodeClient.GetCoins(ctx, owner, coinType, cursor, limit)
}

// GetObject retrieves an object by id
func (client *Client) GetObject(ctx context.Context, objectId ObjectID, options api.SuiObjectDataOptions) (*api.SuiObjectResponse, error) {
	return client.nodeClient.GetObject(ctx, objectId, options)
}

// GetInitialSharedVersion retrieves the initial shared version of a
// shared object, failing if the object is not shared
func (client *Client) GetInitialSharedVersion(ctx context.Context, objectId ObjectID) (uint64, error) {
	return client.nodeClient.GetInitialSharedVersion(ctx, objectId)
}

// GetReferenceGasPrice retrieves the current reference gas price
func (client *Client) GetReferenceGasPrice(ctx context.Context) (uint64, error) {
	return client.nodeClient.GetReferenceGasPrice(ctx)
}

// ExecuteTransactionBlock submits a signed transaction with the requested
// confirmation level
func (client *Client) ExecuteTransactionBlock(ctx context.Context, signedTxn *SignedTransaction, options api.SuiTransactionBlockResponseOptions, requestType api.ExecuteTransactionRequestType) (*api.SuiTransactionBlockResponse, error) {
	return client.nodeClient.ExecuteTransactionBlock(ctx, signedTxn, options, requestType)
}

// RequestFunds uses the faucet to fund an address, only applies to
// non-production networks
func (client *Client) RequestFunds(ctx context.Context, address AccountAddress) (uuid.UUID, error) {
	if client.faucetClient == nil {
		return uuid.Nil, errors.Wrap(ErrConfig, "network has no faucet")
	}
	return client.faucetClient.FundAccount(ctx, address)
}

// FetchCoin returns the first coin of owner with balance of at least
// minBalance, or nil if none qualifies
func (client *Client) FetchCoin(ctx context.Context, owner AccountAddress, coinType string, minBalance uint64) (*api.Coin, error) {
	return FetchCoin(ctx, client.nodeClient, owner, coinType, minBalance)
}

// FetchCoinOrRequestFunds returns a qualifying coin, falling back to one
// faucet request and a re-query. Propagates ErrInsufficientFunds when the
// faucet fallback did not produce a qualifying coin either; it never
// returns a non-qualifying coin.
func (client *Client) FetchCoinOrRequestFunds(ctx context.Context, owner AccountAddress, coinType string, minBalance uint64) (*api.Coin, error) {
	coin, err := client.FetchCoin(ctx, owner, coinType, minBalance)
	if err != nil {
		return nil, err
	}
	if coin != nil {
		return coin, nil
	}
	if _, err := client.RequestFunds(ctx, owner); err != nil {
		return nil, errors.WithSecondaryError(ErrInsufficientFunds, err)
	}
	// The deposit lands asynchronously; give the faucet a moment before
	// the re-query.
	select {
	case <-time.After(waitAfterFaucet):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	coin, err = client.FetchCoin(ctx, owner, coinType, minBalance)
	if err != nil {
		return nil, err
	}
	if coin == nil {
		return nil, errors.Wrapf(ErrInsufficientFunds, "address %s has no coin with balance >= %d after faucet request", owner, minBalance)
	}
	return coin, nil
}
