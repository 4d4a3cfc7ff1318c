package digest_test

import (
	"encoding/json"
	"testing"

	"github.com/ardanlabs/minichain/foundation/blockchain/digest"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// =============================================================================

func Test_Sum(t *testing.T) {
	t.Log("Given the need to produce canonical sha256 digests.")
	{
		t.Logf("\tTest 0:\tWhen hashing a known string.")
		{
			hash := digest.SumString("Hello, world!")

			exp := "315f5bdb76d078c43b8ac0064e4a0164612b1fce77c869345bfc94c75894edd3"
			if hash.Hex() != exp {
				t.Fatalf("\t%s\tTest 0:\tShould get the expected hex encoding: got %s, exp %s", failed, hash.Hex(), exp)
			}
			t.Logf("\t%s\tTest 0:\tShould get the expected hex encoding.", success)

			if hash.IsZero() {
				t.Fatalf("\t%s\tTest 0:\tShould not report a zero hash.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not report a zero hash.", success)
		}
	}
}

func Test_ZeroHash(t *testing.T) {
	t.Log("Given the need to represent the absence of a predecessor.")
	{
		t.Logf("\tTest 0:\tWhen checking the zero hash.")
		{
			if !digest.ZeroHash.IsZero() {
				t.Fatalf("\t%s\tTest 0:\tShould report the zero value as zero.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould report the zero value as zero.", success)

			exp := "0000000000000000000000000000000000000000000000000000000000000000"
			if digest.ZeroHash.Hex() != exp {
				t.Fatalf("\t%s\tTest 0:\tShould encode as 64 zero characters: got %s", failed, digest.ZeroHash.Hex())
			}
			t.Logf("\t%s\tTest 0:\tShould encode as 64 zero characters.", success)
		}
	}
}

func Test_ParseRoundTrip(t *testing.T) {
	t.Log("Given the need to parse a canonical hex encoding back into a hash.")
	{
		t.Logf("\tTest 0:\tWhen round tripping a digest.")
		{
			hash := digest.SumString("Tx1")

			parsed, err := digest.Parse(hash.Hex())
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to parse the encoding: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to parse the encoding.", success)

			if parsed != hash {
				t.Fatalf("\t%s\tTest 0:\tShould get back the identical hash.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get back the identical hash.", success)
		}

		t.Logf("\tTest 1:\tWhen parsing malformed input.")
		{
			if _, err := digest.Parse("zz"); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject non-hex input.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject non-hex input.", success)

			if _, err := digest.Parse("abcd"); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject input of the wrong length.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject input of the wrong length.", success)
		}
	}
}

func Test_JSON(t *testing.T) {
	t.Log("Given the need to marshal hashes inside block documents.")
	{
		t.Logf("\tTest 0:\tWhen marshaling and unmarshaling a hash.")
		{
			hash := digest.SumString("Tx2")

			data, err := json.Marshal(hash)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to marshal the hash: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to marshal the hash.", success)

			var back digest.Hash
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to unmarshal the hash: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to unmarshal the hash.", success)

			if back != hash {
				t.Fatalf("\t%s\tTest 0:\tShould get back the identical hash.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get back the identical hash.", success)
		}
	}
}
