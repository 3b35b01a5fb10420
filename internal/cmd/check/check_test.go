package check_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kleenexp-go/kleenexp/internal/cmd/root"
)

func runRoot(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	cmd := root.NewCmdRoot()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), err
}

func TestCheckCommandReportsOkForValidPattern(t *testing.T) {
	out, err := runRoot(t, "check", "--no-color", "[#digit | #a..f]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "ok" {
		t.Errorf("got %q, want %q", out, "ok")
	}
}

func TestCheckCommandReportsErrorForCyclicDef(t *testing.T) {
	_, err := runRoot(t, "check", "--no-color", "[#a=[#b] #b=[#a] #a]")
	if err == nil {
		t.Fatal("want error for cyclic def")
	}
}
