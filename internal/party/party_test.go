package party

import (
	"reflect"
	"testing"
)

func TestAddressLines(t *testing.T) {
	addr := Address{
		Street1: "1 Main St",
		Street2: "Suite 4",
		City:    "Springfield",
		State:   "OR",
		Country: "US",
		Zip:     "97477",
	}
	want := []string{"1 Main St", "Suite 4", "Springfield, OR, US 97477"}
	if got := addr.Lines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Lines() = %v, want %v", got, want)
	}
}

func TestAddressLinesSkipsBlanks(t *testing.T) {
	addr := Address{Street1: "1 Main St", Zip: "97477"}
	want := []string{"1 Main St", "97477"}
	if got := addr.Lines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Lines() = %v, want %v", got, want)
	}
}

func TestAddressComplete(t *testing.T) {
	addr := Address{Street1: "1 Main St", City: "Springfield", State: "OR", Country: "US", Zip: "97477"}
	if !addr.Complete() {
		t.Fatalf("address with all required fields reported incomplete")
	}
	addr.City = ""
	if addr.Complete() {
		t.Fatalf("address missing city reported complete")
	}
}
