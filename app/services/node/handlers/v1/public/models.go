package public

import (
	"time"

	"github.com/ardanlabs/minichain/foundation/blockchain/database"
	"github.com/ardanlabs/minichain/foundation/blockchain/merkle"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// tx is the display form of a transaction. Hashes render 0x prefixed.
type tx struct {
	TxID      string `json:"tx_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    uint64 `json:"amount"`
	Timestamp uint32 `json:"timestamp"`
	Coinbase  bool   `json:"coinbase"`
}

func toTx(dbTx database.Tx) tx {
	return tx{
		TxID:      hexutil.Encode(dbTx.TxID().Bytes()),
		From:      dbTx.FromID,
		To:        dbTx.ToID,
		Amount:    dbTx.Amount,
		Timestamp: uint32(dbTx.Timestamp),
		Coinbase:  dbTx.IsCoinbase(),
	}
}

// block is the display form of a block and its transactions.
type block struct {
	Number        uint64    `json:"number"`
	Hash          string    `json:"hash"`
	PrevBlockHash string    `json:"prev_block_hash"`
	MerkleRoot    string    `json:"merkle_root"`
	Version       int32     `json:"version"`
	Timestamp     time.Time `json:"timestamp"`
	Nonce         uint32    `json:"nonce"`
	Transactions  []tx      `json:"transactions"`
}

func toBlock(number uint64, dbBlock database.Block) block {
	trans := make([]tx, len(dbBlock.Trans))
	for i, dbTx := range dbBlock.Trans {
		trans[i] = toTx(dbTx)
	}

	return block{
		Number:        number,
		Hash:          hexutil.Encode(dbBlock.Hash().Bytes()),
		PrevBlockHash: hexutil.Encode(dbBlock.Header.PrevBlockHash.Bytes()),
		MerkleRoot:    hexutil.Encode(dbBlock.Header.MerkleRoot.Bytes()),
		Version:       dbBlock.Header.Version,
		Timestamp:     dbBlock.Header.Timestamp.Time(),
		Nonce:         dbBlock.Header.Nonce,
		Transactions:  trans,
	}
}

// chainStatus reports the node's view of the chain tip.
type chainStatus struct {
	LatestBlockHash   string `json:"latest_block_hash"`
	LatestBlockNumber uint64 `json:"latest_block_number"`
	Difficulty        int    `json:"difficulty"`
	Uncommitted       int    `json:"uncommitted"`
	ChainValid        bool   `json:"chain_valid"`
}

// proofStep is the display form of one merkle proof step.
type proofStep struct {
	Hash     string `json:"hash"`
	Position string `json:"position"`
}

func toProofSteps(steps []merkle.ProofStep) []proofStep {
	out := make([]proofStep, len(steps))
	for i, step := range steps {
		position := "right"
		if step.Position == merkle.Left {
			position = "left"
		}
		out[i] = proofStep{
			Hash:     hexutil.Encode(step.Hash.Bytes()),
			Position: position,
		}
	}
	return out
}

// proof carries a merkle inclusion proof for a single transaction.
type proof struct {
	BlockNumber uint64      `json:"block_number"`
	TxID        string      `json:"tx_id"`
	MerkleRoot  string      `json:"merkle_root"`
	Steps       []proofStep `json:"steps"`
}

// newTx is the payload accepted by the tx submission endpoint.
type newTx struct {
	From      string `json:"from" validate:"required"`
	To        string `json:"to" validate:"required"`
	Amount    uint64 `json:"amount" validate:"required,gt=0"`
	Timestamp uint32 `json:"timestamp"`
}
