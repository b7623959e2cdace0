package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/solarena/rlgl/internal/game"
	"github.com/solarena/rlgl/utils"
)

// TxInfo is the slice of an on-chain transaction the deposit verifier
// needs: who signed it, which accounts it touched, and the lamport
// balances around it.
type TxInfo struct {
	Signer       string
	AccountKeys  []string
	PreBalances  []uint64
	PostBalances []uint64
	Failed       bool
}

// AccountIndex returns the position of an address in the transaction's
// account list, or -1.
func (t *TxInfo) AccountIndex(address string) int {
	for i, key := range t.AccountKeys {
		if key == address {
			return i
		}
	}
	return -1
}

// BalanceDelta is the lamport change of the account at index across the
// transaction.
func (t *TxInfo) BalanceDelta(index int) int64 {
	if index < 0 || index >= len(t.PreBalances) || index >= len(t.PostBalances) {
		return 0
	}
	return int64(t.PostBalances[index]) - int64(t.PreBalances[index])
}

// TxFetcher resolves a transaction signature against the chain.
type TxFetcher interface {
	GetTransaction(ctx context.Context, signature string) (*TxInfo, error)
}

// Client queries an ordered list of redundant RPC endpoints. Each request
// gets its own short timeout; any transport, timeout or rate-limit error
// moves on to the next endpoint so one dead node never stalls a deposit.
type Client struct {
	endpoints  []string
	httpClient *http.Client
	logger     *utils.Logger
}

func NewClient(endpoints []string, timeout time.Duration, logger *utils.Logger) *Client {
	return &Client{
		endpoints:  endpoints,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	Result *struct {
		Meta *struct {
			Err          json.RawMessage `json:"err"`
			PreBalances  []uint64        `json:"preBalances"`
			PostBalances []uint64        `json:"postBalances"`
		} `json:"meta"`
		Transaction struct {
			Message struct {
				AccountKeys []struct {
					Pubkey string `json:"pubkey"`
					Signer bool   `json:"signer"`
				} `json:"accountKeys"`
			} `json:"message"`
		} `json:"transaction"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// GetTransaction tries each endpoint in priority order and stops at the
// first clean answer. A clean null result means the signature is unknown
// to the chain (ErrTransactionNotFound); only when every endpoint fails on
// transport or rate limits does it report ErrNetworkUnavailable, so the
// caller can tell "check your hash" apart from "retry later".
func (c *Client) GetTransaction(ctx context.Context, signature string) (*TxInfo, error) {
	var lastErr error

	for _, endpoint := range c.endpoints {
		info, err := c.fetchOne(ctx, endpoint, signature)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warnf("RPC failed (%s): %v", utils.ShortenAddress(endpoint), err)
			lastErr = err
			continue
		}
		if info == nil {
			return nil, game.ErrTransactionNotFound
		}
		return info, nil
	}

	c.logger.Errorf("all %d chain endpoints failed, last error: %v", len(c.endpoints), lastErr)
	return nil, game.ErrNetworkUnavailable
}

// fetchOne returns (nil, nil) when the endpoint answered cleanly but does
// not know the signature.
func (c *Client) fetchOne(ctx context.Context, endpoint, signature string) (*TxInfo, error) {
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "getTransaction",
		Params: []interface{}{
			signature,
			map[string]interface{}{
				"encoding":                       "jsonParsed",
				"commitment":                     "confirmed",
				"maxSupportedTransactionVersion": 0,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}

	var body rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("invalid RPC response: %w", err)
	}

	if body.Error != nil {
		return nil, fmt.Errorf("RPC error %d: %s", body.Error.Code, body.Error.Message)
	}

	if body.Result == nil {
		return nil, nil
	}

	info := &TxInfo{}
	for _, key := range body.Result.Transaction.Message.AccountKeys {
		info.AccountKeys = append(info.AccountKeys, key.Pubkey)
		if key.Signer && info.Signer == "" {
			info.Signer = key.Pubkey
		}
	}
	// Legacy fallback: the fee payer at index 0 is always a signer.
	if info.Signer == "" && len(info.AccountKeys) > 0 {
		info.Signer = info.AccountKeys[0]
	}

	if meta := body.Result.Meta; meta != nil {
		info.PreBalances = meta.PreBalances
		info.PostBalances = meta.PostBalances
		info.Failed = len(meta.Err) > 0 && string(meta.Err) != "null"
	}

	return info, nil
}
