package buildenv

import (
	"reflect"
	"testing"
)

func TestFromEnviron(t *testing.T) {
	env := FromEnviron([]string{"A=1", "B=x=y", "broken", "=nokey", "EMPTY="})
	want := Env{"A": "1", "B": "x=y", "EMPTY": ""}
	if !reflect.DeepEqual(env, want) {
		t.Fatalf("FromEnviron = %v, want %v", env, want)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	base := Env{"A": "1"}
	c := base.Clone()
	c["A"] = "2"
	c["B"] = "3"
	if base["A"] != "1" || len(base) != 1 {
		t.Fatalf("base mutated: %v", base)
	}
}

func TestEnvironSorted(t *testing.T) {
	got := Env{"B": "2", "A": "1", "C": "3"}.Environ()
	want := []string{"A=1", "B=2", "C=3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Environ = %v, want %v", got, want)
	}
}
