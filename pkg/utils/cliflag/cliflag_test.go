package cliflag

import (
	"bytes"
	"strings"
	"testing"
)

func TestFlagSetOrder(t *testing.T) {
	var nfs NamedFlagSets
	nfs.FlagSet("server")
	nfs.FlagSet("store")
	nfs.FlagSet("server") // repeat must not duplicate

	if len(nfs.Order) != 2 || nfs.Order[0] != "server" || nfs.Order[1] != "store" {
		t.Errorf("order = %v", nfs.Order)
	}
}

func TestPrintSections(t *testing.T) {
	var nfs NamedFlagSets
	nfs.FlagSet("server").String("bind-address", "0.0.0.0", "The IP address to listen on.")
	nfs.FlagSet("store").String("db-path", "", "Path to the database file.")
	nfs.FlagSet("empty") // sections without flags are skipped

	var buf bytes.Buffer
	PrintSections(&buf, nfs, 0)

	out := buf.String()
	serverIdx := strings.Index(out, "Server flags:")
	storeIdx := strings.Index(out, "Store flags:")
	if serverIdx < 0 || storeIdx < 0 {
		t.Fatalf("missing section headers in %q", out)
	}
	if serverIdx > storeIdx {
		t.Error("sections printed out of declaration order")
	}
	if !strings.Contains(out, "--bind-address") || !strings.Contains(out, "--db-path") {
		t.Errorf("missing flags in %q", out)
	}
	if strings.Contains(out, "Empty flags:") {
		t.Error("empty section printed")
	}
}
