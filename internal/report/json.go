package report

import (
	"io"

	"tmpltbank/internal/jsonutil"
	"tmpltbank/pkg/api"
)

func init() {
	Register("json", func(w io.Writer, r *api.BankParamsV1) error { return jsonutil.EncodePretty(w, r) })
}
