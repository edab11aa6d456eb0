package chain

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gallery = "0xAbCdEf0123456789abcdef0123456789ABCDEF01"

type fakeNode struct {
	tx      map[string]interface{}
	receipt map[string]interface{}
	head    string
}

func (n fakeNode) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		var result interface{}
		switch req.Method {
		case "eth_getTransactionByHash":
			result = n.tx
		case "eth_getTransactionReceipt":
			result = n.receipt
		case "eth_blockNumber":
			result = n.head
		default:
			t.Errorf("unexpected rpc method %s", req.Method)
		}

		raw, err := json.Marshal(result)
		require.NoError(t, err)
		_ = json.NewEncoder(w).Encode(rpcResponse{Result: raw})
	}
}

func verify(t *testing.T, node fakeNode, p VerifyParams) VerifyResult {
	t.Helper()
	srv := httptest.NewServer(node.handler(t))
	t.Cleanup(srv.Close)

	res, err := NewClient(srv.URL).VerifyPayment(context.Background(), p)
	require.NoError(t, err)
	return res
}

func minedTx(to, value, block string) map[string]interface{} {
	return map[string]interface{}{
		"hash":        "0xtx",
		"to":          to,
		"value":       value,
		"blockNumber": block,
	}
}

func TestVerifyPaymentConfirmed(t *testing.T) {
	node := fakeNode{
		tx:      minedTx(gallery, "0xde0b6b3a7640000", "0x10"), // 1 ETH at block 16
		receipt: map[string]interface{}{"status": "0x1", "blockNumber": "0x10"},
		head:    "0x15",
	}
	res := verify(t, node, VerifyParams{
		TxHash:           "0xtx",
		Recipient:        gallery,
		MinWei:           WeiFromETH(1),
		MinConfirmations: 3,
	})
	assert.True(t, res.Confirmed)
	assert.False(t, res.Failed)
}

func TestVerifyPaymentRecipientCaseInsensitive(t *testing.T) {
	node := fakeNode{
		tx:      minedTx("0xabcdef0123456789abcdef0123456789abcdef01", "0xde0b6b3a7640000", "0x10"),
		receipt: map[string]interface{}{"status": "0x1", "blockNumber": "0x10"},
		head:    "0x15",
	}
	res := verify(t, node, VerifyParams{TxHash: "0xtx", Recipient: gallery, MinConfirmations: 1})
	assert.True(t, res.Confirmed)
}

func TestVerifyPaymentNotEnoughConfirmations(t *testing.T) {
	node := fakeNode{
		tx:      minedTx(gallery, "0xde0b6b3a7640000", "0x10"),
		receipt: map[string]interface{}{"status": "0x1", "blockNumber": "0x10"},
		head:    "0x11", // 2 confirmations
	}
	res := verify(t, node, VerifyParams{TxHash: "0xtx", Recipient: gallery, MinConfirmations: 3})
	assert.False(t, res.Confirmed)
	assert.False(t, res.Failed, "shallow is neither confirmed nor failed")
}

func TestVerifyPaymentReverted(t *testing.T) {
	node := fakeNode{
		tx:      minedTx(gallery, "0xde0b6b3a7640000", "0x10"),
		receipt: map[string]interface{}{"status": "0x0", "blockNumber": "0x10"},
		head:    "0x20",
	}
	res := verify(t, node, VerifyParams{TxHash: "0xtx", Recipient: gallery, MinConfirmations: 1})
	assert.True(t, res.Failed)
	assert.Equal(t, "transaction reverted", res.Reason)
}

func TestVerifyPaymentWrongRecipient(t *testing.T) {
	node := fakeNode{
		tx:      minedTx("0x1111111111111111111111111111111111111111", "0xde0b6b3a7640000", "0x10"),
		receipt: map[string]interface{}{"status": "0x1", "blockNumber": "0x10"},
		head:    "0x20",
	}
	res := verify(t, node, VerifyParams{TxHash: "0xtx", Recipient: gallery, MinConfirmations: 1})
	assert.True(t, res.Failed)
	assert.Equal(t, "unexpected recipient", res.Reason)
}

func TestVerifyPaymentUnderpaid(t *testing.T) {
	node := fakeNode{
		tx:      minedTx(gallery, "0x6f05b59d3b20000", "0x10"), // 0.5 ETH
		receipt: map[string]interface{}{"status": "0x1", "blockNumber": "0x10"},
		head:    "0x20",
	}
	res := verify(t, node, VerifyParams{
		TxHash:           "0xtx",
		Recipient:        gallery,
		MinWei:           WeiFromETH(1),
		MinConfirmations: 1,
	})
	assert.True(t, res.Failed)
	assert.Equal(t, "value below expected amount", res.Reason)
}

func TestVerifyPaymentPending(t *testing.T) {
	// Unknown hash.
	res := verify(t, fakeNode{tx: nil, head: "0x20"}, VerifyParams{TxHash: "0xtx", Recipient: gallery})
	assert.False(t, res.Confirmed)
	assert.False(t, res.Failed)

	// In the mempool, no block yet.
	node := fakeNode{
		tx:   map[string]interface{}{"hash": "0xtx", "to": gallery, "value": "0x1", "blockNumber": ""},
		head: "0x20",
	}
	res = verify(t, node, VerifyParams{TxHash: "0xtx", Recipient: gallery})
	assert.False(t, res.Confirmed)
	assert.False(t, res.Failed)
}

func TestWeiFromETH(t *testing.T) {
	assert.Equal(t, 0, WeiFromETH(1).Cmp(big.NewInt(1e18)))
	assert.Equal(t, 0, WeiFromETH(0.5).Cmp(big.NewInt(5e17)))
}
