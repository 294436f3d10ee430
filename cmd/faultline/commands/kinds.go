package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kbukum/faultline/errors"
)

// kindEntry describes one error kind.
type kindEntry struct {
	Discriminant uint32 `json:"discriminant" yaml:"discriminant"`
	Tag          string `json:"tag" yaml:"tag"`
}

type kindList []kindEntry

func (l kindList) Headers() []string {
	return []string{"DISCRIMINANT", "TAG"}
}

func (l kindList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, k := range l {
		rows = append(rows, []string{strconv.FormatUint(uint64(k.Discriminant), 10), k.Tag})
	}
	return rows
}

func newKindsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the error kinds with their wire discriminants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := errors.Kinds()
			list := make(kindList, 0, len(kinds))
			for _, k := range kinds {
				list = append(list, kindEntry{Discriminant: uint32(k), Tag: k.String()})
			}
			return errOrNil(a.printer.Print(list))
		},
	}
}

// errOrNil keeps a nil *errors.Error from becoming a non-nil error.
func errOrNil(err *errors.Error) error {
	if err == nil {
		return nil
	}
	return err
}
