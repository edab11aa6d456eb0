// Package chain talks to an Ethereum-compatible JSON-RPC node to verify
// that a submitted payment transaction actually confirmed on chain with
// the expected recipient and amount. A wallet returning a hash is not
// proof of payment; this client is what turns processing into completed.
package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	rpcURL     string
	httpClient *http.Client
}

func NewClient(rpcURL string) *Client {
	return &Client{
		rpcURL:     rpcURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type txInfo struct {
	Hash        string `json:"hash"`
	To          string `json:"to"`
	Value       string `json:"value"`
	BlockNumber string `json:"blockNumber"`
}

type receiptInfo struct {
	Status      string `json:"status"`
	BlockNumber string `json:"blockNumber"`
}

type VerifyParams struct {
	TxHash           string
	Recipient        string
	MinWei           *big.Int
	MinConfirmations uint64
}

// VerifyResult is tri-state: Confirmed, Failed (terminal, with Reason),
// or neither — the transaction simply hasn't confirmed yet.
type VerifyResult struct {
	Confirmed bool
	Failed    bool
	Reason    string
}

func (c *Client) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", Method: method, Params: params, ID: 1})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rpc %s: unexpected status %d", method, resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("rpc %s: decode response: %w", method, err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("rpc %s: %s (code %d)", method, rpcResp.Error.Message, rpcResp.Error.Code)
	}
	return json.Unmarshal(rpcResp.Result, out)
}

func (c *Client) blockNumber(ctx context.Context) (uint64, error) {
	var hex string
	if err := c.call(ctx, "eth_blockNumber", []interface{}{}, &hex); err != nil {
		return 0, err
	}
	return hexToUint64(hex)
}

// VerifyPayment checks one transaction against the expected recipient,
// minimum value and confirmation depth.
func (c *Client) VerifyPayment(ctx context.Context, p VerifyParams) (VerifyResult, error) {
	var tx *txInfo
	if err := c.call(ctx, "eth_getTransactionByHash", []interface{}{p.TxHash}, &tx); err != nil {
		return VerifyResult{}, err
	}
	if tx == nil {
		// Unknown to the node; may still be propagating.
		return VerifyResult{}, nil
	}
	if tx.BlockNumber == "" {
		// In the mempool, not mined yet.
		return VerifyResult{}, nil
	}

	var receipt *receiptInfo
	if err := c.call(ctx, "eth_getTransactionReceipt", []interface{}{p.TxHash}, &receipt); err != nil {
		return VerifyResult{}, err
	}
	if receipt == nil {
		return VerifyResult{}, nil
	}

	if receipt.Status != "0x1" {
		return VerifyResult{Failed: true, Reason: "transaction reverted"}, nil
	}
	if !strings.EqualFold(tx.To, p.Recipient) {
		return VerifyResult{Failed: true, Reason: "unexpected recipient"}, nil
	}

	value, err := hexToBig(tx.Value)
	if err != nil {
		return VerifyResult{}, err
	}
	if p.MinWei != nil && value.Cmp(p.MinWei) < 0 {
		return VerifyResult{Failed: true, Reason: "value below expected amount"}, nil
	}

	head, err := c.blockNumber(ctx)
	if err != nil {
		return VerifyResult{}, err
	}
	mined, err := hexToUint64(receipt.BlockNumber)
	if err != nil {
		return VerifyResult{}, err
	}
	if head < mined {
		return VerifyResult{}, nil
	}
	if head-mined+1 >= p.MinConfirmations {
		return VerifyResult{Confirmed: true}, nil
	}
	return VerifyResult{}, nil
}

func hexToUint64(s string) (uint64, error) {
	n, ok := new(big.Int).SetString(strings.TrimPrefix(s, "0x"), 16)
	if !ok {
		return 0, fmt.Errorf("malformed hex quantity %q", s)
	}
	return n.Uint64(), nil
}

func hexToBig(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(strings.TrimPrefix(s, "0x"), 16)
	if !ok {
		return nil, fmt.Errorf("malformed hex quantity %q", s)
	}
	return n, nil
}

// WeiFromETH converts a display ETH amount into wei.
func WeiFromETH(eth float64) *big.Int {
	wei, _ := new(big.Float).Mul(big.NewFloat(eth), big.NewFloat(1e18)).Int(nil)
	return wei
}
