package uid

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerate(t *testing.T) {
	gen := NewUUID()

	a := gen.Generate()
	b := gen.Generate()
	if a == b {
		t.Fatalf("expected distinct ids, got %q twice", a)
	}

	id, err := uuid.Parse(a)
	if err != nil {
		t.Fatalf("generated id is not a uuid: %v", err)
	}
	if id.Version() != 7 {
		t.Fatalf("expected uuid v7, got v%d", id.Version())
	}
}
