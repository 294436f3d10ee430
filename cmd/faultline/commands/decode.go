package commands

import (
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/hexerr"
	"github.com/kbukum/faultline/internal/cli/output"
	"github.com/kbukum/faultline/jsonerr"
)

// faultView renders a decoded error as a table; other formats print the
// error itself.
type faultView struct {
	err *errors.Error
}

func (v faultView) Headers() []string {
	return []string{"KIND", "DISCRIMINANT", "MESSAGE"}
}

func (v faultView) Rows() [][]string {
	k := v.err.Kind()
	return [][]string{{k.String(), strconv.FormatUint(uint64(k), 10), v.err.Error()}}
}

func newDecodeCmd(a *app) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "decode [input]",
		Short: "Decode an encoded error and print it in the output format",
		Long: `Decode an error written as hex XDR, JSON or YAML and print it in the
selected output format, which converts between encodings.

Examples:
  # Inspect an XDR value
  faultline decode 0000000e00000001670000000000000000000001

  # Convert JSON to XDR
  faultline decode --from json '{"kind":"OddLength"}' -o binary

  # Read YAML from stdin
  faultline decode --from yaml -o json < fault.yml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			fault, err := decodeFault(from, input)
			if err != nil {
				return err
			}
			if a.printer.Format() == output.FormatTable {
				return errOrNil(a.printer.Print(faultView{fault}))
			}
			return errOrNil(a.printer.Print(fault))
		},
	}
	cmd.Flags().StringVar(&from, "from", "binary", "Input encoding (binary|json|yaml)")
	return cmd
}

// decodeFault parses input in the named encoding. Binary input is hex text.
func decodeFault(from string, input []byte) (*errors.Error, *errors.Error) {
	fault := new(errors.Error)
	switch from {
	case "binary", "xdr":
		raw, err := hexerr.Decode(string(input))
		if err != nil {
			return nil, err
		}
		if err := fault.UnmarshalBinary(raw); err != nil {
			return nil, errors.Serialization(err.Error())
		}
	case "json":
		if err := jsonerr.Unmarshal(input, fault); err != nil {
			return nil, err
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(input, fault); err != nil {
			return nil, errors.Serialization(err.Error())
		}
	default:
		return nil, errors.Unspecifiedf("unknown input encoding %q (valid: binary, json, yaml)", from)
	}
	return fault, nil
}
