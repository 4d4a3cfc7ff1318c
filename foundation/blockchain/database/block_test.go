package database_test

import (
	"testing"

	"github.com/ardanlabs/minichain/foundation/blockchain/database"
	"github.com/ardanlabs/minichain/foundation/blockchain/digest"
)

func fixtureHeader() database.BlockHeader {
	return database.BlockHeader{
		Version: 0x3a000000,
		PrevBlockHash: digest.Hash{
			0x79, 0xf9, 0xb3, 0x11, 0x35, 0x2c, 0x48, 0x4b, 0xb6, 0x17, 0x20, 0xce, 0x16, 0x4d,
			0x6a, 0x5c, 0xa8, 0x8a, 0x0a, 0xf4, 0x26, 0x4e, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x00, 0x00,
		},
		MerkleRoot: digest.Hash{
			0xdf, 0x2d, 0xdb, 0x62, 0xb3, 0x58, 0x31, 0x73, 0xce, 0x87, 0x8a, 0x0a, 0x2e, 0x40,
			0x77, 0x3d, 0x9f, 0x4e, 0xf4, 0x2d, 0x12, 0xd7, 0x36, 0x47, 0xa6, 0x20, 0xf3, 0x0e,
			0xec, 0xa7, 0x46, 0xe7,
		},
		Timestamp: database.Timestamp(0x66808a09),
		Bits:      database.NewBits(0x17, 0x035d25),
		Nonce:     0x09c2f027,
	}
}

func fixtureTrans() []database.Tx {
	return []database.Tx{
		database.NewTx("alice", "bob", 1000, 0),
		database.NewTx("bob", "charlie", 500, 0),
		database.NewTx("charlie", "dave", 750, 0),
		database.NewCoinbaseTx("miner", 5_000_000, 0),
	}
}

// =============================================================================

func Test_BlockHeaderSerialization(t *testing.T) {
	t.Log("Given the need for a byte exact 80 byte header encoding.")
	{
		t.Logf("\tTest 0:\tWhen serializing a known header.")
		{
			data := fixtureHeader().ToBytes()

			exp := [database.HeaderLength]byte{
				0x00, 0x00, 0x00, 0x3a, 0x79, 0xf9, 0xb3, 0x11, 0x35, 0x2c, 0x48, 0x4b, 0xb6, 0x17,
				0x20, 0xce, 0x16, 0x4d, 0x6a, 0x5c, 0xa8, 0x8a, 0x0a, 0xf4, 0x26, 0x4e, 0x01, 0x00,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xdf, 0x2d, 0xdb, 0x62, 0xb3, 0x58,
				0x31, 0x73, 0xce, 0x87, 0x8a, 0x0a, 0x2e, 0x40, 0x77, 0x3d, 0x9f, 0x4e, 0xf4, 0x2d,
				0x12, 0xd7, 0x36, 0x47, 0xa6, 0x20, 0xf3, 0x0e, 0xec, 0xa7, 0x46, 0xe7, 0x09, 0x8a,
				0x80, 0x66, 0x25, 0x5d, 0x03, 0x17, 0x27, 0xf0, 0xc2, 0x09,
			}

			if data != exp {
				t.Fatalf("\t%s\tTest 0:\tShould serialize to the expected 80 bytes.\ngot: %x\nexp: %x", failed, data, exp)
			}
			t.Logf("\t%s\tTest 0:\tShould serialize to the expected 80 bytes.", success)
		}

		t.Logf("\tTest 1:\tWhen parsing the encoding back.")
		{
			header := fixtureHeader()
			parsed := database.ParseBlockHeader(header.ToBytes())

			if parsed != header {
				t.Fatalf("\t%s\tTest 1:\tShould reconstruct every field bit for bit.\ngot: %+v\nexp: %+v", failed, parsed, header)
			}
			t.Logf("\t%s\tTest 1:\tShould reconstruct every field bit for bit.", success)
		}
	}
}

func Test_BlockHeaderHash(t *testing.T) {
	t.Log("Given the need for a deterministic double hashed block identity.")
	{
		t.Logf("\tTest 0:\tWhen hashing a known header.")
		{
			hash := fixtureHeader().Hash()

			exp := "d2fd965841244f029e5b8ffce0536951a117cbaad65f00000000000000000000"
			if hash.Hex() != exp {
				t.Fatalf("\t%s\tTest 0:\tShould get the expected double hash: got %s, exp %s", failed, hash, exp)
			}
			t.Logf("\t%s\tTest 0:\tShould get the expected double hash.", success)
		}

		t.Logf("\tTest 1:\tWhen comparing headers.")
		{
			if !fixtureHeader().Equals(fixtureHeader()) {
				t.Fatalf("\t%s\tTest 1:\tShould treat headers with identical fields as equal.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould treat headers with identical fields as equal.", success)

			other := fixtureHeader()
			other.Version = 0x3b000000
			if fixtureHeader().Equals(other) {
				t.Fatalf("\t%s\tTest 1:\tShould treat headers with different fields as not equal.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould treat headers with different fields as not equal.", success)
		}
	}
}

func Test_Block(t *testing.T) {
	t.Log("Given the need to construct blocks over transactions.")
	{
		t.Logf("\tTest 0:\tWhen constructing a genesis block.")
		{
			block, err := database.GenesisBlock(fixtureTrans(), 0, 0)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to construct the block.", success)

			if !block.Header.PrevBlockHash.IsZero() {
				t.Fatalf("\t%s\tTest 0:\tShould carry a zero previous hash.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould carry a zero previous hash.", success)

			exp := "2ec7676f56d345c71f9bcf8b0f44de42a81a7edce4ab8f96a4c3da6533a902ab"
			if block.Hash().Hex() != exp {
				t.Fatalf("\t%s\tTest 0:\tShould get the expected block hash: got %s, exp %s", failed, block.Hash(), exp)
			}
			t.Logf("\t%s\tTest 0:\tShould get the expected block hash.", success)
		}

		t.Logf("\tTest 1:\tWhen constructing a successor block.")
		{
			genesis, err := database.GenesisBlock(fixtureTrans(), 0, 0)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to construct the genesis block: %v", failed, err)
			}

			trans := []database.Tx{
				database.NewTx("eve", "frank", 2000, 0),
				database.NewTx("frank", "grace", 1500, 0),
				database.NewTx("grace", "henry", 800, 0),
				database.NewCoinbaseTx("miner2", 5_000_000, 0),
			}

			block, err := database.NewBlock(genesis.Hash(), trans, 0, 0)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to construct the block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to construct the block.", success)

			if block.Header.PrevBlockHash != genesis.Hash() {
				t.Fatalf("\t%s\tTest 1:\tShould reference the genesis hash.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reference the genesis hash.", success)

			exp := "22365fbfe1880bef49e3261ec9e7ae3bf411abbd836685990a6b97bb96e7a68d"
			if block.Hash().Hex() != exp {
				t.Fatalf("\t%s\tTest 1:\tShould get the expected block hash: got %s, exp %s", failed, block.Hash(), exp)
			}
			t.Logf("\t%s\tTest 1:\tShould get the expected block hash.", success)
		}

		t.Logf("\tTest 2:\tWhen comparing blocks.")
		{
			block1, err := database.GenesisBlock(fixtureTrans(), 0, 0)
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to construct the first block: %v", failed, err)
			}

			block2, err := database.GenesisBlock(fixtureTrans(), 0, 0)
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to construct the second block: %v", failed, err)
			}

			if !block1.Equals(block2) {
				t.Fatalf("\t%s\tTest 2:\tShould treat blocks with the same transactions as equal.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould treat blocks with the same transactions as equal.", success)

			trans := fixtureTrans()
			trans[3] = database.NewCoinbaseTx("different_miner", 5_000_000, 0)
			block3, err := database.GenesisBlock(trans, 0, 0)
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to construct the third block: %v", failed, err)
			}

			if block1.Equals(block3) {
				t.Fatalf("\t%s\tTest 2:\tShould treat blocks with different transactions as not equal.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould treat blocks with different transactions as not equal.", success)
		}
	}
}
