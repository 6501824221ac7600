package sui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"

	"github.com/BigdraCo1/sui-object-model-workshop/api"
)

type rpcHandler func(params []json.RawMessage) (any, *jsonRpcError)

// newMockNode serves a JSON-RPC endpoint backed by per-method handlers.
func newMockNode(t *testing.T, handlers map[string]rpcHandler) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			Id     uint64            `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&request))

		handler, ok := handlers[request.Method]
		if !ok {
			t.Errorf("unexpected rpc method %s", request.Method)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		result, rpcErr := handler(request.Params)
		response := map[string]any{"jsonrpc": "2.0", "id": request.Id}
		if rpcErr != nil {
			response["error"] = rpcErr
		} else {
			response["result"] = result
		}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(response))
	}))
}

func newTestClient(t *testing.T, nodeUrl string, faucetUrl string) *Client {
	t.Helper()
	client, err := NewClient(NetworkConfig{Name: "test", NodeUrl: nodeUrl, FaucetUrl: faucetUrl})
	assert.NoError(t, err)
	return client
}

func TestNamedConfig(t *testing.T) {
	names := []string{"mainnet", "testnet", "devnet", "localnet"}
	for _, name := range names {
		assert.Equal(t, name, NamedNetworks[name].Name)
	}
}

func TestClient_RpcApiVersion(t *testing.T) {
	server := newMockNode(t, map[string]rpcHandler{
		"rpc.discover": func([]json.RawMessage) (any, *jsonRpcError) {
			return map[string]any{"info": map[string]any{"version": "1.39.0"}}, nil
		},
	})
	defer server.Close()

	client := newTestClient(t, server.URL, "")
	version, err := client.RpcApiVersion(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "1.39.0", version)
}

func TestClient_GetReferenceGasPrice(t *testing.T) {
	server := newMockNode(t, map[string]rpcHandler{
		"suix_getReferenceGasPrice": func([]json.RawMessage) (any, *jsonRpcError) {
			return "750", nil
		},
	})
	defer server.Close()

	client := newTestClient(t, server.URL, "")
	price, err := client.GetReferenceGasPrice(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, uint64(750), price)
}

func TestClient_GetCoinsPassesCursor(t *testing.T) {
	var sawCursor string
	server := newMockNode(t, map[string]rpcHandler{
		"suix_getCoins": func(params []json.RawMessage) (any, *jsonRpcError) {
			if len(params) > 2 && string(params[2]) != "null" {
				assert.NoError(t, json.Unmarshal(params[2], &sawCursor))
			}
			return api.CoinPage{Data: []*api.Coin{testCoin("0x2", 10)}}, nil
		},
	})
	defer server.Close()

	client := newTestClient(t, server.URL, "")
	cursor := "0xcafe"
	page, err := client.GetCoins(context.Background(), AccountTwo, SuiCoinType, &cursor, nil)
	assert.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, "0xcafe", sawCursor)
}

func TestClient_GetInitialSharedVersion(t *testing.T) {
	server := newMockNode(t, map[string]rpcHandler{
		"sui_getObject": func([]json.RawMessage) (any, *jsonRpcError) {
			return api.SuiObjectResponse{Data: &api.SuiObjectData{
				ObjectId: AccountTwo.String(),
				Version:  "10",
				Digest:   ObjectDigest{1}.String(),
				Owner:    &api.Owner{Shared: &api.SharedOwner{InitialSharedVersion: 7}},
			}}, nil
		},
	})
	defer server.Close()

	client := newTestClient(t, server.URL, "")
	version, err := client.GetInitialSharedVersion(context.Background(), AccountTwo)
	assert.NoError(t, err)
	assert.Equal(t, uint64(7), version)
}

func TestClient_GetInitialSharedVersionOfOwnedObject(t *testing.T) {
	server := newMockNode(t, map[string]rpcHandler{
		"sui_getObject": func([]json.RawMessage) (any, *jsonRpcError) {
			return api.SuiObjectResponse{Data: &api.SuiObjectData{
				ObjectId: AccountTwo.String(),
				Version:  "10",
				Digest:   ObjectDigest{1}.String(),
				Owner:    &api.Owner{AddressOwner: "0xa1"},
			}}, nil
		},
	})
	defer server.Close()

	client := newTestClient(t, server.URL, "")
	_, err := client.GetInitialSharedVersion(context.Background(), AccountTwo)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrBuild))
}

func TestClient_ExecuteTransactionBlock(t *testing.T) {
	var sawTxBytes, sawRequestType string
	var sawSignatures []string
	server := newMockNode(t, map[string]rpcHandler{
		"sui_executeTransactionBlock": func(params []json.RawMessage) (any, *jsonRpcError) {
			assert.Len(t, params, 4)
			assert.NoError(t, json.Unmarshal(params[0], &sawTxBytes))
			assert.NoError(t, json.Unmarshal(params[1], &sawSignatures))
			assert.NoError(t, json.Unmarshal(params[3], &sawRequestType))
			confirmed := true
			return api.SuiTransactionBlockResponse{
				Digest:                  "9gTJLqhS3pVoDCuuvvQKjTQefWdp84W1rFpAVY8B7V6u",
				ConfirmedLocalExecution: &confirmed,
				Effects: &api.TransactionBlockEffects{
					Status: api.ExecutionStatus{Status: "success"},
				},
			}, nil
		},
	})
	defer server.Close()

	keystore, err := NewFileBasedKeystore(t.TempDir() + "/sui.keystore")
	assert.NoError(t, err)
	sender, err := keystore.GenerateAndAddKey()
	assert.NoError(t, err)
	txData := buildSplitMergeTransaction(t, sender)
	signedTxn, err := keystore.SignTransaction(sender, txData)
	assert.NoError(t, err)

	client := newTestClient(t, server.URL, "")
	response, err := client.ExecuteTransactionBlock(
		context.Background(),
		signedTxn,
		api.SuiTransactionBlockResponseOptions{ShowEffects: true},
		api.WaitForLocalExecution,
	)
	assert.NoError(t, err)
	assert.Equal(t, "9gTJLqhS3pVoDCuuvvQKjTQefWdp84W1rFpAVY8B7V6u", response.Digest)
	assert.True(t, response.Effects.Status.IsSuccess())
	assert.True(t, *response.ConfirmedLocalExecution)

	expectedTxBytes, err := signedTxn.TxBytes()
	assert.NoError(t, err)
	assert.Equal(t, expectedTxBytes, sawTxBytes)
	assert.Equal(t, signedTxn.SerializedSignatures(), sawSignatures)
	assert.Equal(t, string(api.WaitForLocalExecution), sawRequestType)
}

func TestClient_ExecuteTransactionBlockRejected(t *testing.T) {
	server := newMockNode(t, map[string]rpcHandler{
		"sui_executeTransactionBlock": func([]json.RawMessage) (any, *jsonRpcError) {
			return nil, &jsonRpcError{Code: -32002, Message: "Transaction validator signing failed: insufficient gas"}
		},
	})
	defer server.Close()

	keystore, err := NewFileBasedKeystore(t.TempDir() + "/sui.keystore")
	assert.NoError(t, err)
	sender, err := keystore.GenerateAndAddKey()
	assert.NoError(t, err)
	signedTxn, err := keystore.SignTransaction(sender, buildSplitMergeTransaction(t, sender))
	assert.NoError(t, err)

	client := newTestClient(t, server.URL, "")
	_, err = client.ExecuteTransactionBlock(
		context.Background(),
		signedTxn,
		api.SuiTransactionBlockResponseOptions{},
		api.WaitForEffectsCert,
	)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrSubmission))
}

func TestClient_UnreachableNodeIsNetworkError(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1", "")
	_, err := client.GetReferenceGasPrice(context.Background())
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
}

func TestClient_RequestFunds(t *testing.T) {
	faucet := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/gas", r.URL.Path)
		var body struct {
			FixedAmountRequest struct {
				Recipient string `json:"recipient"`
			} `json:"FixedAmountRequest"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, AccountTwo.String(), body.FixedAmountRequest.Recipient)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"task":"2f0f1c3e-8cf7-44d6-9c4d-6ad8f6a4e3b1"}`))
	}))
	defer faucet.Close()

	client := newTestClient(t, "http://127.0.0.1:1", faucet.URL)
	task, err := client.RequestFunds(context.Background(), AccountTwo)
	assert.NoError(t, err)
	assert.Equal(t, "2f0f1c3e-8cf7-44d6-9c4d-6ad8f6a4e3b1", task.String())
}

func TestClient_RequestFundsRateLimited(t *testing.T) {
	faucet := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer faucet.Close()

	client := newTestClient(t, "http://127.0.0.1:1", faucet.URL)
	_, err := client.RequestFunds(context.Background(), AccountTwo)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrFaucet))
}

func TestClient_RequestFundsWithoutFaucet(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1", "")
	_, err := client.RequestFunds(context.Background(), AccountTwo)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestClient_FetchCoinOrRequestFunds(t *testing.T) {
	restore := waitAfterFaucet
	waitAfterFaucet = time.Millisecond
	defer func() { waitAfterFaucet = restore }()

	var coinCalls int
	server := newMockNode(t, map[string]rpcHandler{
		"suix_getCoins": func([]json.RawMessage) (any, *jsonRpcError) {
			coinCalls++
			if coinCalls == 1 {
				// Nothing qualifying before the faucet deposit lands.
				return api.CoinPage{Data: []*api.Coin{testCoin("0x1", 1_000)}}, nil
			}
			return api.CoinPage{Data: []*api.Coin{testCoin("0x2", 20_000_000)}}, nil
		},
	})
	defer server.Close()

	var faucetCalls int
	faucet := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		faucetCalls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer faucet.Close()

	client := newTestClient(t, server.URL, faucet.URL)
	coin, err := client.FetchCoinOrRequestFunds(context.Background(), AccountTwo, SuiCoinType, DefaultFundThreshold)
	assert.NoError(t, err)
	assert.NotNil(t, coin)
	assert.Equal(t, "0x2", coin.CoinObjectId)
	assert.Equal(t, 1, faucetCalls)
	assert.Equal(t, 2, coinCalls)
}

func TestClient_FetchCoinOrRequestFundsExhausted(t *testing.T) {
	restore := waitAfterFaucet
	waitAfterFaucet = time.Millisecond
	defer func() { waitAfterFaucet = restore }()

	server := newMockNode(t, map[string]rpcHandler{
		"suix_getCoins": func([]json.RawMessage) (any, *jsonRpcError) {
			return api.CoinPage{Data: []*api.Coin{testCoin("0x1", 1_000)}}, nil
		},
	})
	defer server.Close()

	faucet := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer faucet.Close()

	client := newTestClient(t, server.URL, faucet.URL)
	coin, err := client.FetchCoinOrRequestFunds(context.Background(), AccountTwo, SuiCoinType, DefaultFundThreshold)
	assert.Nil(t, coin)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientFunds))
}

// TestClient_EndToEnd drives the whole pipeline against mock services:
// locate a coin, build a move call, sign from the keystore, and submit
// with wait-for-local-execution.
func TestClient_EndToEnd(t *testing.T) {
	keystore, err := NewFileBasedKeystore(t.TempDir() + "/sui.keystore")
	assert.NoError(t, err)
	sender, err := keystore.GenerateAndAddKey()
	assert.NoError(t, err)

	server := newMockNode(t, map[string]rpcHandler{
		"suix_getCoins": func([]json.RawMessage) (any, *jsonRpcError) {
			return api.CoinPage{Data: []*api.Coin{testCoin("0x2", 20_000_000)}}, nil
		},
		"suix_getReferenceGasPrice": func([]json.RawMessage) (any, *jsonRpcError) {
			return "1000", nil
		},
		"sui_executeTransactionBlock": func([]json.RawMessage) (any, *jsonRpcError) {
			confirmed := true
			return api.SuiTransactionBlockResponse{
				Digest:                  "B5FPmUAPAhYzXj3KRDcCr4c2zQjnE4ZWbqtYC6ijqBjc",
				ConfirmedLocalExecution: &confirmed,
				Effects: &api.TransactionBlockEffects{
					Status: api.ExecutionStatus{Status: "success"},
				},
			}, nil
		},
	})
	defer server.Close()
	client := newTestClient(t, server.URL, "")
	ctx := context.Background()

	coin, err := client.FetchCoin(ctx, sender, SuiCoinType, DefaultFundThreshold)
	assert.NoError(t, err)
	assert.NotNil(t, coin)
	gasRef, err := CoinObjectRef(coin)
	assert.NoError(t, err)

	ptb := NewProgrammableTransactionBuilder()
	_, err = ptb.Command(&MoveCall{Package: AccountTwo, Module: "banana", Function: "new"})
	assert.NoError(t, err)
	pt, err := ptb.Finish()
	assert.NoError(t, err)

	gasPrice, err := client.GetReferenceGasPrice(ctx)
	assert.NoError(t, err)
	txData, err := NewProgrammableTransactionData(sender, []ObjectRef{gasRef}, pt, DefaultGasBudget, gasPrice)
	assert.NoError(t, err)

	signedTxn, err := keystore.SignTransaction(sender, txData)
	assert.NoError(t, err)

	response, err := client.ExecuteTransactionBlock(
		ctx,
		signedTxn,
		api.SuiTransactionBlockResponseOptions{ShowEffects: true},
		api.WaitForLocalExecution,
	)
	assert.NoError(t, err)
	assert.NotEmpty(t, response.Digest)
	assert.True(t, response.Effects.Status.IsSuccess())
}
