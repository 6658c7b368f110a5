package testutils

import (
	"os"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kylelemons/godebug/diff"
)

var dump = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}

func Compare(t *testing.T, got, want []string) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
		t.Errorf("difference %+v", Difference(got, want))
	}
}

// Difference between two slices
func Difference(slice1, slice2 []string) []string {
	diff := []string{}
	m := map[string]int{}

	for _, v := range slice1 {
		m[v] = 1
	}
	for _, v := range slice2 {
		m[v] = m[v] + 1
	}

	for k, v := range m {
		if v == 1 {
			diff = append(diff, k)
		}
	}

	return diff
}

// Golden compares got with the content of the file at path
func Golden(t *testing.T, got, path string) {
	t.Helper()
	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden file: %s", err)
	}
	if got != string(want) {
		t.Errorf("%s mismatch (-want +got):\n%s", path, diff.Diff(string(want), got))
	}
}

// SameTree fails with a diff of both dumps when got and want differ
func SameTree(t *testing.T, want, got any) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Errorf("tree mismatch (-want +got):\n%s", diff.Diff(dump.Sdump(want), dump.Sdump(got)))
	}
}
