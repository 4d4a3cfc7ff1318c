package mempool_test

import (
	"testing"

	"github.com/ardanlabs/minichain/foundation/blockchain/database"
	"github.com/ardanlabs/minichain/foundation/blockchain/mempool"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// =============================================================================

func Test_Mempool(t *testing.T) {
	t.Log("Given the need to manage uncommitted transactions.")
	{
		t.Logf("\tTest 0:\tWhen adding and removing transactions.")
		{
			mp := mempool.New()

			tx1 := database.NewTx("alice", "bob", 100, database.Timestamp(2))
			tx2 := database.NewTx("bob", "charlie", 200, database.Timestamp(1))

			mp.Upsert(tx1)
			mp.Upsert(tx2)

			if mp.Count() != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould hold two transactions: got %d", failed, mp.Count())
			}
			t.Logf("\t%s\tTest 0:\tShould hold two transactions.", success)

			// Resubmitting an identical transaction is a no-op.
			mp.Upsert(tx1)
			if mp.Count() != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould not grow on duplicate submission: got %d", failed, mp.Count())
			}
			t.Logf("\t%s\tTest 0:\tShould not grow on duplicate submission.", success)

			mp.Delete(tx1)
			if mp.Count() != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould remove a deleted transaction: got %d", failed, mp.Count())
			}
			t.Logf("\t%s\tTest 0:\tShould remove a deleted transaction.", success)

			mp.Truncate()
			if mp.Count() != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould be empty after truncate: got %d", failed, mp.Count())
			}
			t.Logf("\t%s\tTest 0:\tShould be empty after truncate.", success)
		}

		t.Logf("\tTest 1:\tWhen picking the best transactions.")
		{
			mp := mempool.New()

			tx1 := database.NewTx("alice", "bob", 100, database.Timestamp(3))
			tx2 := database.NewTx("bob", "charlie", 200, database.Timestamp(1))
			tx3 := database.NewTx("charlie", "dave", 300, database.Timestamp(2))

			mp.Upsert(tx1)
			mp.Upsert(tx2)
			mp.Upsert(tx3)

			picked := mp.PickBest(2)
			if len(picked) != 2 {
				t.Fatalf("\t%s\tTest 1:\tShould pick two transactions: got %d", failed, len(picked))
			}
			t.Logf("\t%s\tTest 1:\tShould pick two transactions.", success)

			if picked[0] != tx2 || picked[1] != tx3 {
				t.Fatalf("\t%s\tTest 1:\tShould pick the oldest transactions first.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould pick the oldest transactions first.", success)

			if len(mp.PickBest(-1)) != 3 {
				t.Fatalf("\t%s\tTest 1:\tShould return everything for a negative count.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould return everything for a negative count.", success)
		}
	}
}
