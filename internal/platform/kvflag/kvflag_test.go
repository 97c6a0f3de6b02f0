package kvflag

import (
	"flag"
	"slices"
	"testing"
)

func TestParse(t *testing.T) {
	l := List{"w=4", " p = 0.3", "broken", "seed=7=8", "=5", "w=6"}
	got, bad := l.Parse()
	if got["w"] != "6" || got["p"] != "0.3" || got["seed"] != "7=8" || len(got) != 3 {
		t.Fatalf("values = %v", got)
	}
	if !slices.Equal(bad, []string{"broken", "=5"}) {
		t.Fatalf("malformed = %q", bad)
	}
}

func TestListIsFlagValue(t *testing.T) {
	var l List
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&l, "set", "override")
	if err := fs.Parse([]string{"-set", "w=3", "-set", "d=2"}); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(l, List{"w=3", "d=2"}) || l.String() != "w=3,d=2" {
		t.Fatalf("list = %q", l)
	}
}
