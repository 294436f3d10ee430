package commands

import (
	"context"
	"encoding/hex"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/hexerr"
)

type hexResult struct {
	Input  string `json:"input" yaml:"input"`
	Length int    `json:"length" yaml:"length"`
	Bytes  string `json:"bytes" yaml:"bytes"`
}

func (r hexResult) Headers() []string {
	return []string{"INPUT", "LENGTH", "BYTES"}
}

func (r hexResult) Rows() [][]string {
	return [][]string{{r.Input, strconv.Itoa(r.Length), r.Bytes}}
}

func newHexCmd(a *app) *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "hex <text>",
		Short: "Decode hexadecimal text, reporting the failure kind",
		Long: `Decode hexadecimal text. A bad character reports the character and its
index, an odd length OddLength, and with --size a decoded length other than
the requested one InvalidStringLength.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.operation(cmd.Context(), "hex", func(ctx context.Context) *errors.Error {
				decoded, err := decodeHex(args[0], size)
				if err != nil {
					return err
				}
				return a.printer.Print(hexResult{
					Input:  args[0],
					Length: len(decoded),
					Bytes:  hex.EncodeToString(decoded),
				})
			})
		},
	}
	cmd.Flags().IntVar(&size, "size", 0, "Required decoded length in bytes (0 accepts any)")
	return cmd
}

func decodeHex(s string, size int) ([]byte, *errors.Error) {
	if size <= 0 {
		return hexerr.Decode(s)
	}
	dst := make([]byte, size)
	if err := hexerr.DecodeInto(dst, s); err != nil {
		return nil, err
	}
	return dst, nil
}
