package sui

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/BigdraCo1/sui-object-model-workshop/api"
	"github.com/BigdraCo1/sui-object-model-workshop/internal/util"
)

const defaultHTTPTimeout = 60 * time.Second

// NodeClient speaks JSON-RPC 2.0 to a Sui full node. Most callers use the
// [Client] facade instead.
type NodeClient struct {
	client *resty.Client
	logger zerolog.Logger
}

// NewNodeClient creates a client for one full node RPC endpoint.
func NewNodeClient(rpcUrl string) (*NodeClient, error) {
	if rpcUrl == "" {
		return nil, errors.Wrap(ErrConfig, "node RPC URL is empty")
	}
	restyClient := resty.New().
		SetBaseURL(rpcUrl).
		SetTimeout(defaultHTTPTimeout).
		SetHeader("Content-Type", "application/json")
	return &NodeClient{
		client: restyClient,
		logger: zerolog.Nop(),
	}, nil
}

// SetLogger installs a logger for request debugging.
func (rc *NodeClient) SetLogger(logger zerolog.Logger) {
	rc.logger = logger
}

// SetTimeout adjusts the HTTP client timeout
//
//	client.SetTimeout(5 * time.Millisecond)
func (rc *NodeClient) SetTimeout(timeout time.Duration) {
	rc.client.SetTimeout(timeout)
}

// SetHeader sets the header for all future requests
//
//	client.SetHeader("Authorization", "Bearer abcde")
func (rc *NodeClient) SetHeader(key string, value string) {
	rc.client.SetHeader(key, value)
}

// RemoveHeader removes the header from being automatically set all future requests.
//
//	client.RemoveHeader("Authorization")
func (rc *NodeClient) RemoveHeader(key string) {
	rc.client.Header.Del(key)
}

type jsonRpcRequest struct {
	JsonRpc string `json:"jsonrpc"`
	Id      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type jsonRpcResponse struct {
	JsonRpc string          `json:"jsonrpc"`
	Id      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonRpcError   `json:"error,omitempty"`
}

type jsonRpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// call performs one JSON-RPC request and decodes the result into out.
// Transport failures map to ErrNetwork; RPC-level errors are returned
// for the caller to classify.
func (rc *NodeClient) call(ctx context.Context, method string, params []any, out any) error {
	if params == nil {
		params = []any{}
	}
	request := jsonRpcRequest{JsonRpc: "2.0", Id: 1, Method: method, Params: params}
	var response jsonRpcResponse

	rc.logger.Debug().Str("method", method).Msg("rpc call")
	resp, err := rc.client.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&response).
		Post("")
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "rpc %s", method), ErrNetwork)
	}
	if resp.IsError() {
		return errors.Mark(errors.Newf("rpc %s: http status %d", method, resp.StatusCode()), ErrNetwork)
	}
	if response.Error != nil {
		return errors.Newf("rpc %s: %s (code %d)", method, response.Error.Message, response.Error.Code)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(response.Result, out); err != nil {
		return errors.Mark(errors.Wrapf(err, "rpc %s: malformed result", method), ErrNetwork)
	}
	return nil
}

// RpcApiVersion reports the node's RPC API version.
func (rc *NodeClient) RpcApiVersion(ctx context.Context) (string, error) {
	var discover struct {
		Info struct {
			Version string `json:"version"`
		} `json:"info"`
	}
	if err := rc.call(ctx, "rpc.discover", nil, &discover); err != nil {
		return "", err
	}
	return discover.Info.Version, nil
}

// GetCoins fetches one page of coins of coinType owned by owner. A nil
// cursor starts from the beginning; a nil limit uses the node default.
func (rc *NodeClient) GetCoins(ctx context.Context, owner AccountAddress, coinType string, cursor *string, limit *uint32) (*api.CoinPage, error) {
	params := []any{owner.String(), coinType}
	if cursor != nil {
		params = append(params, *cursor)
	} else {
		params = append(params, nil)
	}
	if limit != nil {
		params = append(params, *limit)
	}
	page := &api.CoinPage{}
	if err := rc.call(ctx, "suix_getCoins", params, page); err != nil {
		return nil, err
	}
	return page, nil
}

// GetObject looks up an object by id with the given options.
func (rc *NodeClient) GetObject(ctx context.Context, objectId ObjectID, options api.SuiObjectDataOptions) (*api.SuiObjectResponse, error) {
	response := &api.SuiObjectResponse{}
	if err := rc.call(ctx, "sui_getObject", []any{objectId.String(), options}, response); err != nil {
		return nil, err
	}
	return response, nil
}

// GetInitialSharedVersion looks up an object and extracts the initial
// shared version from its owner metadata, failing if the object is not
// shared. A fresh lookup immediately before building is the only correct
// source for this number.
func (rc *NodeClient) GetInitialSharedVersion(ctx context.Context, objectId ObjectID) (uint64, error) {
	response, err := rc.GetObject(ctx, objectId, api.SuiObjectDataOptions{ShowOwner: true})
	if err != nil {
		return 0, err
	}
	if response.Data == nil {
		if response.Error != nil {
			return 0, errors.Newf("object %s: %s", objectId, response.Error.Code)
		}
		return 0, errors.Newf("object %s: no data returned", objectId)
	}
	owner := response.Data.Owner
	if owner == nil {
		return 0, errors.Newf("object %s: owner information not returned", objectId)
	}
	if owner.Shared == nil {
		return 0, errors.Mark(errors.Newf("object %s is not shared", objectId), ErrBuild)
	}
	return owner.Shared.InitialSharedVersion, nil
}

// GetReferenceGasPrice fetches the network's current reference gas price.
func (rc *NodeClient) GetReferenceGasPrice(ctx context.Context) (uint64, error) {
	var price string
	if err := rc.call(ctx, "suix_getReferenceGasPrice", nil, &price); err != nil {
		return 0, err
	}
	value, err := util.StrToUint64(price)
	if err != nil {
		return 0, errors.Mark(errors.Wrap(err, "reference gas price"), ErrNetwork)
	}
	return value, nil
}

// GetTotalTransactionBlocks fetches the total number of transaction
// blocks the node knows about.
func (rc *NodeClient) GetTotalTransactionBlocks(ctx context.Context) (uint64, error) {
	var total string
	if err := rc.call(ctx, "sui_getTotalTransactionBlocks", nil, &total); err != nil {
		return 0, err
	}
	value, err := util.StrToUint64(total)
	if err != nil {
		return 0, errors.Mark(errors.Wrap(err, "total transaction blocks"), ErrNetwork)
	}
	return value, nil
}

// ExecuteTransactionBlock submits a signed transaction. This is the
// terminal step of the pipeline: failures surface as ErrSubmission with
// no compensating action.
func (rc *NodeClient) ExecuteTransactionBlock(
	ctx context.Context,
	signedTxn *SignedTransaction,
	options api.SuiTransactionBlockResponseOptions,
	requestType api.ExecuteTransactionRequestType,
) (*api.SuiTransactionBlockResponse, error) {
	txBytes, err := signedTxn.TxBytes()
	if err != nil {
		return nil, err
	}
	params := []any{txBytes, signedTxn.SerializedSignatures(), options, string(requestType)}
	response := &api.SuiTransactionBlockResponse{}
	if err := rc.call(ctx, "sui_executeTransactionBlock", params, response); err != nil {
		if errors.Is(err, ErrNetwork) {
			return nil, err
		}
		return nil, errors.Mark(err, ErrSubmission)
	}
	return response, nil
}
