package pnutils

import (
	"strings"
	"testing"
)

func TestOrders(t *testing.T) {
	if !IsTmpltbankOrder("threePointFivePN") || IsTmpltbankOrder("fourPN") {
		t.Fatal("IsTmpltbankOrder mismatch")
	}
	eth := EthincaOrders()
	if len(eth) != 7 || eth[0] != "zeroPN" || eth[6] != "threePointFivePN" {
		t.Fatalf("EthincaOrders=%v", eth)
	}
	if _, ok := EthincaOrderIndex("taylorF4_45PN"); ok {
		t.Fatal("taylorF4_45PN is not an ethinca order")
	}
	if n, _ := EthincaOrderIndex("onePointFivePN"); n != 3 {
		t.Fatalf("onePointFivePN index=%d want 3", n)
	}
	help := OrdersHelp()
	for _, o := range TmpltbankOrders {
		if !strings.Contains(help, "* "+o+":") {
			t.Errorf("help missing %s", o)
		}
	}
}
