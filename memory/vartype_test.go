package memory

import "testing"

func TestIntRangeTypeDomain(t *testing.T) {
	typ := NewIntRangeType(1, 3)
	got := typ.Domain()
	if len(got) != 3 {
		t.Fatalf("Domain() has %d entries, want 3", len(got))
	}
	for i, v := range []int{1, 2, 3} {
		if !got[i].Equal(Int(v)) {
			t.Errorf("Domain()[%d] = %v, want %d", i, got[i], v)
		}
	}
	if typ.Init().I != 1 {
		t.Errorf("Init() = %v, want 1", typ.Init())
	}
}

func TestIntRangeTypePanicsOnEmptyRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an empty range")
		}
	}()
	NewIntRangeType(3, 1)
}

func TestIntSetTypeInitIsFirstValue(t *testing.T) {
	typ := NewIntSetType(7, 2, 9)
	if typ.Init().I != 7 {
		t.Errorf("Init() = %v, want 7", typ.Init())
	}
	if err := typ.Validate(Int(2)); err != nil {
		t.Errorf("Validate(2): %v, want nil", err)
	}
	if err := typ.Validate(Int(3)); err == nil {
		t.Error("Validate(3): want error, got nil")
	}
}

func TestIntSetTypePanicsOnEmptySet(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an empty set")
		}
	}()
	NewIntSetType()
}

func TestBoolTypeValidate(t *testing.T) {
	typ := NewBoolType(true)
	if err := typ.Validate(Bool(false)); err != nil {
		t.Errorf("Validate(false): %v, want nil", err)
	}
	if err := typ.Validate(Int(0)); err == nil {
		t.Error("Validate(int): want error, got nil")
	}
}
