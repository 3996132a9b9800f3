package test

import (
	"fmt"
	"testing"
)

func AssertEqual(t *testing.T, a interface{}, b interface{}) {
	t.Helper()
	if a != b {
		t.Fatalf("%v != %v", a, b)
	}
}

func AssertEqualStrings(t *testing.T, a []string, b []string) {
	t.Helper()
	if fmt.Sprintf("%q", a) != fmt.Sprintf("%q", b) {
		t.Fatalf("%q != %q\n%s", a, b, Diff(fmt.Sprintf("%#v", a), fmt.Sprintf("%#v", b), false))
	}
}
