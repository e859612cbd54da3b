package renderer

import "testing"

func TestSlotTableIdempotent(t *testing.T) {
	st := NewSlotTable(4, 100)
	if slot, ok := st.Lookup(100); !ok || slot != 0 {
		t.Fatalf("white texture slot = %d, %v", slot, ok)
	}

	a := st.GetOrAssignSlot(7)
	b := st.GetOrAssignSlot(7)
	if a != 1 || b != 1 {
		t.Errorf("slots = %d, %d, want 1, 1", a, b)
	}
	if st.GetOrAssignSlot(8) != 2 {
		t.Errorf("second texture should get slot 2")
	}
}

func TestSlotTableExhaustion(t *testing.T) {
	st := NewSlotTable(3, 100)
	st.GetOrAssignSlot(1)
	st.GetOrAssignSlot(2)
	if !st.Full() {
		t.Fatal("table should be full")
	}

	if slot := st.GetOrAssignSlot(3); slot != 0 {
		t.Errorf("forced assignment = %d, want clamp to 0", slot)
	}
	if st.Overflows() != 1 {
		t.Errorf("overflows = %d, want 1", st.Overflows())
	}
	if slot := st.GetOrAssignSlot(2); slot != 2 {
		t.Errorf("existing handle on a full table = %d, want 2", slot)
	}
}

func TestSlotTableReset(t *testing.T) {
	st := NewSlotTable(4, 100)
	st.GetOrAssignSlot(5)
	st.GetOrAssignSlot(6)
	st.Reset()

	if st.Len() != 1 {
		t.Errorf("len after reset = %d, want 1", st.Len())
	}
	if _, ok := st.Lookup(5); ok {
		t.Errorf("handle survived reset")
	}
	if bound := st.Bound(); len(bound) != 1 || bound[0] != 100 {
		t.Errorf("bound after reset = %v", bound)
	}
	if st.GetOrAssignSlot(6) != 1 {
		t.Errorf("first assignment after reset should be slot 1")
	}
}
