package report

import (
	"io"

	"gopkg.in/yaml.v3"

	"tmpltbank/pkg/api"
)

func init() { Register("yaml", writeYAML) }

func writeYAML(w io.Writer, r *api.BankParamsV1) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
