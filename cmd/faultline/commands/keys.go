package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/internal/cli/output"
	"github.com/kbukum/faultline/ioerr"
	"github.com/kbukum/faultline/keys"
)

func newKeysCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Create, inspect and use Ed25519 keypairs",
	}
	cmd.PersistentFlags().String("keypair", "", "Keypair file (default: config keypair or ~/.config/faultline/id.json)")
	cmd.AddCommand(
		newKeysNewCmd(a),
		newKeysShowCmd(a),
		newKeysSignCmd(a),
		newKeysVerifyCmd(a),
	)
	return cmd
}

// keypairPath resolves the keypair file: the flag, then the config, then
// the default location.
func (a *app) keypairPath(cmd *cobra.Command) (string, *errors.Error) {
	if path, _ := cmd.Flags().GetString("keypair"); path != "" {
		return path, nil
	}
	if a.cfg.Keypair != "" {
		return a.cfg.Keypair, nil
	}
	return keys.DefaultKeypairPath()
}

func newKeysNewCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a keypair and write it to the keypair file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.operation(cmd.Context(), "keys", func(context.Context) *errors.Error {
				path, err := a.keypairPath(cmd)
				if err != nil {
					return err
				}
				if _, statErr := os.Stat(path); statErr == nil && !force {
					return ioerr.Translate(fmt.Errorf("keypair %s: %w", path, fs.ErrExist))
				}
				kp, err := keys.GenerateKeypair()
				if err != nil {
					return err
				}
				if err := keys.SaveKeypair(path, kp); err != nil {
					return err
				}
				return a.printer.Print(output.Pairs{{"Path", path}, {"Public key", kp.PublicKey().String()}})
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing keypair file")
	return cmd
}

func newKeysShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the public key of the keypair file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.operation(cmd.Context(), "keys", func(context.Context) *errors.Error {
				kp, err := a.loadKeypair(cmd)
				if err != nil {
					return err
				}
				a.printer.Println(kp.PublicKey().String())
				return nil
			})
		},
	}
}

func newKeysSignCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sign <message>",
		Short: "Sign a message and print the base58 signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.operation(cmd.Context(), "keys", func(context.Context) *errors.Error {
				kp, err := a.loadKeypair(cmd)
				if err != nil {
					return err
				}
				a.printer.Println(kp.Sign([]byte(args[0])).String())
				return nil
			})
		},
	}
}

func newKeysVerifyCmd(a *app) *cobra.Command {
	var useHex bool
	cmd := &cobra.Command{
		Use:   "verify <public-key> <signature> <message>",
		Short: "Verify a signature over a message",
		Long: `Verify a signature over a message. Keys and signatures are base58, or
hex with --hex.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.operation(cmd.Context(), "keys", func(context.Context) *errors.Error {
				pk, sig, err := parseVerifyArgs(args[0], args[1], useHex)
				if err != nil {
					return err
				}
				if err := keys.Verify(pk, []byte(args[2]), sig); err != nil {
					return err
				}
				a.printer.Println("ok")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&useHex, "hex", false, "Read the key and signature as hex")
	return cmd
}

func (a *app) loadKeypair(cmd *cobra.Command) (keys.Keypair, *errors.Error) {
	path, err := a.keypairPath(cmd)
	if err != nil {
		return keys.Keypair{}, err
	}
	return keys.LoadKeypair(path)
}

func parseVerifyArgs(pubText, sigText string, useHex bool) (keys.PublicKey, keys.Signature, *errors.Error) {
	var (
		pk  keys.PublicKey
		sig keys.Signature
		err *errors.Error
	)
	if useHex {
		if pk, err = keys.ParsePublicKeyHex(pubText); err != nil {
			return pk, sig, err
		}
		sig, err = keys.ParseSignatureHex(sigText)
		return pk, sig, err
	}
	if pk, err = keys.ParsePublicKey(pubText); err != nil {
		return pk, sig, err
	}
	sig, err = keys.ParseSignature(sigText)
	return pk, sig, err
}
