package pnutils

import (
	"fmt"
	"strings"
)

// PN orders accepted for the bank metric, lowest first.
var TmpltbankOrders = []string{
	"zeroPN",
	"onePN",
	"onePointFivePN",
	"twoPN",
	"twoPointFivePN",
	"threePN",
	"threePointFivePN",
	"taylorF4_45PN",
}

// ethincaOrders maps ethinca-capable orders to twice their PN order.
var ethincaOrders = map[string]int{
	"zeroPN":           0,
	"onePN":            2,
	"onePointFivePN":   3,
	"twoPN":            4,
	"twoPointFivePN":   5,
	"threePN":          6,
	"threePointFivePN": 7,
}

var orderDescriptions = map[string]string{
	"zeroPN":           "Will only include the dominant term (proportional to chirp mass)",
	"onePN":            "Will only include the leading orbit term and first correction at 1PN",
	"onePointFivePN":   "Will include orbit and spin terms to 1.5PN",
	"twoPN":            "Will include orbit and spin terms to 2PN",
	"twoPointFivePN":   "Will include orbit and spin terms to 2.5PN",
	"threePN":          "Will include orbit terms to 3PN and spin terms to 2.5PN",
	"threePointFivePN": "Include orbit terms to 3.5PN and spin terms to 2.5PN",
	"taylorF4_45PN":    "Will use the R2F4 metric to 4.5PN. This includes partial spin terms from 3 to 4.5PN",
}

// IsTmpltbankOrder reports whether order may be used for the bank metric.
func IsTmpltbankOrder(order string) bool {
	for _, o := range TmpltbankOrders {
		if o == order {
			return true
		}
	}
	return false
}

// EthincaOrders returns the PN orders usable for the ethinca metric, lowest first.
func EthincaOrders() []string {
	out := make([]string, 0, len(ethincaOrders))
	for _, o := range TmpltbankOrders {
		if _, ok := ethincaOrders[o]; ok {
			out = append(out, o)
		}
	}
	return out
}

// EthincaOrderIndex returns twice the PN order of an ethinca-capable order.
func EthincaOrderIndex(order string) (int, bool) {
	n, ok := ethincaOrders[order]
	return n, ok
}

// OrdersHelp renders one line per bank order with its description.
func OrdersHelp() string {
	var b strings.Builder
	for _, o := range TmpltbankOrders {
		fmt.Fprintf(&b, "* %s: %s\n", o, orderDescriptions[o])
	}
	return strings.TrimRight(b.String(), "\n")
}
