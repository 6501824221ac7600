package sui

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// FaucetClient requests funds from a network faucet. One request per
// call, no retry: the caller decides whether to re-check the balance and
// treat persistent absence of funds as fatal.
type FaucetClient struct {
	client *resty.Client
}

// NewFaucetClient creates a faucet client for the given endpoint.
func NewFaucetClient(faucetUrl string) (*FaucetClient, error) {
	if faucetUrl == "" {
		return nil, errors.Wrap(ErrConfig, "faucet URL is empty; the network has no faucet")
	}
	restyClient := resty.New().
		SetBaseURL(faucetUrl).
		SetTimeout(defaultHTTPTimeout).
		SetHeader("Content-Type", "application/json")
	return &FaucetClient{client: restyClient}, nil
}

type faucetRequest struct {
	FixedAmountRequest faucetRecipient `json:"FixedAmountRequest"`
}

type faucetRecipient struct {
	Recipient string `json:"recipient"`
}

type faucetResponse struct {
	Task  string `json:"task,omitempty"`
	Error string `json:"error,omitempty"`
}

// FundAccount asks the faucet to deposit funds to the address. The
// deposit lands asynchronously; confirmation is only observable by
// re-querying the balance. The returned id identifies the faucet's
// internal task.
func (fc *FaucetClient) FundAccount(ctx context.Context, address AccountAddress) (uuid.UUID, error) {
	body := faucetRequest{FixedAmountRequest: faucetRecipient{Recipient: address.String()}}
	var response faucetResponse

	resp, err := fc.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&response).
		SetError(&response).
		Post("/v2/gas")
	if err != nil {
		return uuid.Nil, errors.Mark(errors.Wrap(err, "faucet request"), ErrNetwork)
	}
	if resp.IsError() {
		if response.Error != "" {
			return uuid.Nil, errors.Wrapf(ErrFaucet, "status %d: %s", resp.StatusCode(), response.Error)
		}
		return uuid.Nil, errors.Wrapf(ErrFaucet, "status %d", resp.StatusCode())
	}
	if response.Task == "" {
		// Some faucet deployments return 200 with no task id.
		return uuid.Nil, nil
	}
	task, err := uuid.Parse(response.Task)
	if err != nil {
		return uuid.Nil, errors.Mark(errors.Wrap(err, "faucet task id"), ErrNetwork)
	}
	return task, nil
}

// waitAfterFaucet is how long the convenience paths pause before
// re-querying the balance, since the deposit is asynchronous.
var waitAfterFaucet = 2 * time.Second
