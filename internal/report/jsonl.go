package report

import (
	"io"

	"tmpltbank/internal/jsonlutil"
	"tmpltbank/pkg/api"
)

// jsonl streams only the classified points, one object per line.
func init() {
	Register("jsonl", func(w io.Writer, r *api.BankParamsV1) error {
		return jsonlutil.WriteAll(w, r.Points, IsBrokenPipe)
	})
}
