package database_test

import (
	"testing"

	"github.com/ardanlabs/minichain/foundation/blockchain/database"
	"github.com/ardanlabs/minichain/foundation/blockchain/digest"
)

func Test_Bits(t *testing.T) {
	t.Log("Given the need to encode the compact difficulty target.")
	{
		t.Logf("\tTest 0:\tWhen constructing a compact target.")
		{
			bits := database.NewBits(0x17, 0x255d03)

			if bits.Exponent != 23 || bits.Coefficient != 0x255d03 {
				t.Fatalf("\t%s\tTest 0:\tShould keep the exponent and coefficient: got %d/%#x", failed, bits.Exponent, bits.Coefficient)
			}
			t.Logf("\t%s\tTest 0:\tShould keep the exponent and coefficient.", success)
		}

		t.Logf("\tTest 1:\tWhen the coefficient exceeds 24 bits.")
		{
			bits := database.NewBits(0x17, 0x25255d03)

			if bits.Coefficient != 0x255d03 {
				t.Fatalf("\t%s\tTest 1:\tShould clamp the coefficient to its low 24 bits: got %#x", failed, bits.Coefficient)
			}
			t.Logf("\t%s\tTest 1:\tShould clamp the coefficient to its low 24 bits.", success)
		}

		t.Logf("\tTest 2:\tWhen serializing to bytes.")
		{
			bits := database.NewBits(0x17, 0x255d03)

			exp := [4]byte{0x03, 0x5d, 0x25, 0x17}
			if bits.ToBytes() != exp {
				t.Fatalf("\t%s\tTest 2:\tShould serialize coefficient LE then exponent: got %#v", failed, bits.ToBytes())
			}
			t.Logf("\t%s\tTest 2:\tShould serialize coefficient LE then exponent.", success)

			if database.ParseBits(exp) != bits {
				t.Fatalf("\t%s\tTest 2:\tShould round trip through the encoding.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould round trip through the encoding.", success)
		}
	}
}

func Test_BitsTarget(t *testing.T) {
	t.Log("Given the need to derive and compare the 256 bit target.")
	{
		t.Logf("\tTest 0:\tWhen deriving the target array.")
		{
			bits := database.NewBits(0x1d, 0xffff00)

			exp := [32]byte{
				0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00,
			}
			if bits.Target() != exp {
				t.Fatalf("\t%s\tTest 0:\tShould place the coefficient at offset 32-exponent: got %#v", failed, bits.Target())
			}
			t.Logf("\t%s\tTest 0:\tShould place the coefficient at offset 32-exponent.", success)
		}

		t.Logf("\tTest 1:\tWhen a hash falls below the target.")
		{
			bits := database.NewBits(0x1d, 0xffff00)

			hash := digest.Hash{
				0x6f, 0xe2, 0x8c, 0x0a, 0xb6, 0xf1, 0xb3, 0x72, 0xc1, 0xa6, 0xa2, 0x46, 0xae, 0x63,
				0xf7, 0x4f, 0x93, 0x1e, 0x83, 0x65, 0xe1, 0x5a, 0x08, 0x9c, 0x68, 0xd6, 0x19, 0x00,
				0x00, 0x00, 0x00, 0x00,
			}

			if !bits.MeetsTarget(hash) {
				t.Fatalf("\t%s\tTest 1:\tShould meet the target.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould meet the target.", success)
		}

		t.Logf("\tTest 2:\tWhen a hash falls above the target.")
		{
			bits := database.NewBits(0x1d, 0xffff00)

			hash := digest.Hash{
				0x6f, 0xe2, 0x8c, 0x0a, 0xb6, 0xf1, 0xb3, 0x72, 0xc1, 0xa6, 0xa2, 0x46, 0xae, 0x63,
				0xf7, 0x4f, 0x93, 0x1e, 0x83, 0x65, 0xe1, 0x5a, 0x08, 0x9c, 0x68, 0xd6, 0x19, 0x00,
				0x00, 0x00, 0x00, 0x01,
			}

			if bits.MeetsTarget(hash) {
				t.Fatalf("\t%s\tTest 2:\tShould not meet the target.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould not meet the target.", success)
		}
	}
}
