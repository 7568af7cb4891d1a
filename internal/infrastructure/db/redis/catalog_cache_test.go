package redis

import (
	"testing"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
)

func TestCatalogCodec_RoundTrip(t *testing.T) {
	in := []domain.Sweet{
		{ID: 1, Name: "Gummy Bears", Category: "Candy", Price: 2.99, Quantity: 100},
		{ID: 2, Name: "Dark Chocolate Bar", Category: "Chocolate", Price: 4.99, Quantity: 50},
	}

	b, err := encodeCatalog(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := decodeCatalog(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || out[0].Name != "Gummy Bears" || out[1].Price != 4.99 {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

// An empty catalog must still round-trip as a hit: a nil listing encodes to an
// empty JSON array, and decoding yields an empty non-nil slice that callers
// can tell apart from a miss.
func TestCatalogCodec_EmptyListingIsNotAMiss(t *testing.T) {
	for _, in := range [][]domain.Sweet{nil, {}} {
		b, err := encodeCatalog(in)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if string(b) == "null" {
			t.Fatalf("empty listing encoded as null")
		}

		out, err := decodeCatalog(b)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if out == nil {
			t.Fatalf("empty listing decoded to nil, indistinguishable from a miss")
		}
		if len(out) != 0 {
			t.Fatalf("expected empty listing, got %+v", out)
		}
	}
}
