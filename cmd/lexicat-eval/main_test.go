package main

import (
	"reflect"
	"testing"
)

func TestParseRanks(t *testing.T) {
	got, err := parseRanks("1, 3,5")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []int{1, 3, 5}) {
		t.Errorf("got %v", got)
	}

	for _, bad := range []string{"0", "1,x", "-2", ""} {
		if _, err := parseRanks(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}
