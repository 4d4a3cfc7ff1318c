// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	v1 "github.com/ardanlabs/minichain/business/web/v1"
	"github.com/ardanlabs/minichain/foundation/blockchain/database"
	"github.com/ardanlabs/minichain/foundation/blockchain/state"
	"github.com/ardanlabs/minichain/foundation/events"
	"github.com/ardanlabs/minichain/foundation/web"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of public node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	h.Log.Infow("events", "traceid", v.TraceID, "status", "websocket open")

	id, ch := h.Evts.Subscribe()
	defer h.Evts.Unsubscribe(id)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// ChainStatus returns the node's view of the chain tip.
func (h Handlers) ChainStatus(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	status := chainStatus{
		LatestBlockHash:   hexutil.Encode(h.State.TipHash().Bytes()),
		LatestBlockNumber: uint64(h.State.ChainLength()),
		Difficulty:        h.State.Difficulty(),
		Uncommitted:       h.State.MempoolLength(),
		ChainValid:        h.State.VerifyChain(),
	}

	return web.Respond(ctx, w, status, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	mempool := h.State.RetrieveMempool()

	trans := make([]tx, len(mempool))
	for i, tran := range mempool {
		trans[i] = toTx(tran)
	}

	return web.Respond(ctx, w, trans, http.StatusOK)
}

// BlocksByNumber returns the blocks in the specified inclusive range.
func (h Handlers) BlocksByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	from, err := strconv.ParseUint(web.Param(r, "from"), 10, 64)
	if err != nil {
		return v1.NewRequestError(errors.New("invalid from block number"), http.StatusBadRequest)
	}

	to, err := strconv.ParseUint(web.Param(r, "to"), 10, 64)
	if err != nil {
		return v1.NewRequestError(errors.New("invalid to block number"), http.StatusBadRequest)
	}

	dbBlocks, err := h.State.RetrieveBlocks(from, to)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	if len(dbBlocks) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	if from == 0 {
		from = 1
	}

	blocks := make([]block, len(dbBlocks))
	for i, dbBlock := range dbBlocks {
		blocks[i] = toBlock(from+uint64(i), dbBlock)
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// TxProof returns the merkle inclusion proof for the transaction at the
// specified index inside the specified block.
func (h Handlers) TxProof(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	number, err := strconv.ParseUint(web.Param(r, "number"), 10, 64)
	if err != nil {
		return v1.NewRequestError(errors.New("invalid block number"), http.StatusBadRequest)
	}

	index, err := strconv.Atoi(web.Param(r, "index"))
	if err != nil {
		return v1.NewRequestError(errors.New("invalid transaction index"), http.StatusBadRequest)
	}

	steps, root, err := h.State.ProofForTx(number, index)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	dbBlocks, err := h.State.RetrieveBlocks(number, number)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	prf := proof{
		BlockNumber: number,
		MerkleRoot:  hexutil.Encode(root.Bytes()),
		Steps:       toProofSteps(steps),
	}

	if index < len(dbBlocks[0].Trans) {
		prf.TxID = hexutil.Encode(dbBlocks[0].Trans[index].TxID().Bytes())
	}

	return web.Respond(ctx, w, prf, http.StatusOK)
}

// SubmitTransaction adds a new transaction to the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var payload newTx
	if err := web.Decode(r, &payload); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	timestamp := database.Timestamp(payload.Timestamp)
	if timestamp == 0 {
		timestamp = database.Now()
	}

	dbTx := database.NewTx(payload.From, payload.To, payload.Amount, timestamp)

	h.Log.Infow("add tran", "traceid", v.TraceID, "tx", dbTx.TxID(), "from", dbTx.FromID, "to", dbTx.ToID, "amount", dbTx.Amount)
	if err := h.State.SubmitTx(dbTx); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	resp := struct {
		Status string `json:"status"`
		TxID   string `json:"tx_id"`
	}{
		Status: "transaction added to mempool",
		TxID:   hexutil.Encode(dbTx.TxID().Bytes()),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SignalMining signals the mining operation to start without waiting on
// a new transaction submission.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	h.State.Worker.SignalStartMining()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining signaled",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
