package commands

import (
	"context"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/kvstore"
)

type statsView kvstore.Stats

func (v statsView) Headers() []string {
	return []string{"COLLECTION", "KEYS"}
}

func (v statsView) Rows() [][]string {
	names := make([]string, 0, len(v.Collections))
	for name := range v.Collections {
		names = append(names, name)
	}
	sort.Strings(names)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, strconv.Itoa(v.Collections[name])})
	}
	return rows
}

func newStoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Create and inspect the key-value store",
	}
	cmd.PersistentFlags().String("path", "", "Store directory (default: store.path from the config)")
	cmd.AddCommand(
		newStoreInitCmd(a),
		newStoreStatCmd(a),
		newStorePutCmd(a),
		newStoreGetCmd(a),
	)
	return cmd
}

func (a *app) storePath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("path"); path != "" {
		return path
	}
	return a.cfg.Store.Path
}

// withStore opens the store for the duration of fn.
func (a *app) withStore(cmd *cobra.Command, readOnly bool, fn func(ctx context.Context, s *kvstore.Store) *errors.Error) error {
	return a.operation(cmd.Context(), "store", func(ctx context.Context) *errors.Error {
		s, err := kvstore.Open(a.storePath(cmd), kvstore.Options{
			ReadOnly:   readOnly,
			SyncWrites: a.cfg.Store.SyncWrites,
			Metrics:    a.metrics,
		})
		if err != nil {
			return err
		}
		ferr := fn(ctx, s)
		if cerr := s.Close(); ferr == nil {
			ferr = cerr
		}
		return ferr
	})
}

func newStoreInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init [collection...]",
		Short: "Create a new store, optionally with collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.operation(cmd.Context(), "store", func(ctx context.Context) *errors.Error {
				s, err := kvstore.Create(a.storePath(cmd), kvstore.Options{Metrics: a.metrics})
				if err != nil {
					return err
				}
				defer func() { _ = s.Close() }()
				for _, name := range args {
					if _, err := s.CreateCollection(ctx, []byte(name)); err != nil {
						return err
					}
				}
				a.printer.Println("created", s.Path())
				return nil
			})
		},
	}
}

func newStoreStatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stat",
		Short: "Show collections and key counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, true, func(ctx context.Context, s *kvstore.Store) *errors.Error {
				stats, err := s.Stats(ctx)
				if err != nil {
					return err
				}
				return a.printer.Print(statsView(stats))
			})
		},
	}
}

func newStorePutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "put <collection> <key> <value>",
		Short: "Store a value, creating the collection if needed",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, false, func(ctx context.Context, s *kvstore.Store) *errors.Error {
				coll, err := s.Collection(ctx, []byte(args[0]))
				if err != nil {
					if se, ok := err.Store(); !ok || se.Code != errors.StoreCollectionNotFound {
						return err
					}
					if coll, err = s.CreateCollection(ctx, []byte(args[0])); err != nil {
						return err
					}
				}
				return coll.Put(ctx, []byte(args[1]), []byte(args[2]))
			})
		},
	}
}

func newStoreGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <collection> <key>",
		Short: "Print a stored value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, true, func(ctx context.Context, s *kvstore.Store) *errors.Error {
				coll, err := s.Collection(ctx, []byte(args[0]))
				if err != nil {
					return err
				}
				res := coll.Get(ctx, []byte(args[1]))
				if err := res.Err(); err != nil {
					return err
				}
				a.printer.Println(string(res.Value()))
				return nil
			})
		},
	}
}
