package models

import (
	"testing"
)

func TestInt64ListScan(t *testing.T) {
	var l Int64List
	if err := l.Scan([]byte(`[5000, 12000]`)); err != nil {
		t.Fatalf("scan from bytes failed: %v", err)
	}
	if len(l) != 2 || l[0] != 5000 || l[1] != 12000 {
		t.Errorf("unexpected values: %v", l)
	}

	if err := l.Scan("[300]"); err != nil {
		t.Fatalf("scan from string failed: %v", err)
	}
	if len(l) != 1 || l[0] != 300 {
		t.Errorf("unexpected values: %v", l)
	}

	if err := l.Scan(nil); err != nil {
		t.Fatalf("scan from nil failed: %v", err)
	}
	if l != nil {
		t.Errorf("nil column should reset the list, got %v", l)
	}

	if err := l.Scan(42); err == nil {
		t.Errorf("scanning an unsupported type must fail")
	}
}

func TestInt64ListValue(t *testing.T) {
	v, err := Int64List{100, 500}.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	if v != "[100,500]" {
		t.Errorf("unexpected serialization: %v", v)
	}

	v, err = Int64List(nil).Value()
	if err != nil {
		t.Fatalf("value of nil list failed: %v", err)
	}
	if v != "[]" {
		t.Errorf("nil list should serialize as empty array, got %v", v)
	}
}
