// Package commands implements the faultline command-line tool.
package commands

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/faultline/config"
	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/internal/cli"
	"github.com/kbukum/faultline/internal/cli/output"
	"github.com/kbukum/faultline/ioerr"
	"github.com/kbukum/faultline/logger"
	"github.com/kbukum/faultline/observability"
)

const shutdownTimeout = 5 * time.Second

// app is the state shared by every command of one invocation.
type app struct {
	cfg      *cli.Config
	printer  *output.Printer
	metrics  *observability.Metrics
	shutdown []func(context.Context) error
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	root, a := newRoot()
	defer a.close()
	if err := root.Execute(); err != nil {
		root.PrintErrf("Error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root, _ := newRoot()
	return root
}

func newRoot() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:   cli.AppName,
		Short: "Inspect, convert and provoke unified error values",
		Long: `faultline works with the unified error type: it lists the kinds,
converts encoded errors between XDR, JSON and YAML, and runs hex decoding,
HTTP probes, key handling and store operations that report their failures
as unified errors.

Use "faultline [command] --help" for more information about a command.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (default: faultline.yml in . or the user config dir)")
	pf.StringP("output", "o", "table", "Output format (table|json|yaml|binary)")
	pf.String("log-level", "warn", "Log level (trace|debug|info|warn|error)")
	pf.String("otlp-endpoint", "", "OTLP HTTP endpoint (host:port) for traces and fault metrics")

	root.AddCommand(
		newKindsCmd(a),
		newDecodeCmd(a),
		newHexCmd(a),
		newProbeCmd(a),
		newKeysCmd(a),
		newStoreCmd(a),
		newVersionCmd(a),
	)
	return root, a
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	path, _ := flags.GetString("config")

	cfg, err := config.Load[cli.Config](cli.AppName,
		config.WithConfigFile(path),
		config.WithDefaults(cli.Defaults()),
		config.WithFlag("output.format", flags.Lookup("output")),
		config.WithFlag("logging.level", flags.Lookup("log-level")),
		config.WithFlag("telemetry.otlp_endpoint", flags.Lookup("otlp-endpoint")),
	)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger.Init(cfg.Logging)

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	a.printer = output.NewPrinter(cmd.OutOrStdout(), format)

	return a.initTelemetry(cmd.Context())
}

func (a *app) initTelemetry(ctx context.Context) error {
	t := a.cfg.Telemetry
	if t.OTLPEndpoint == "" {
		m, err := observability.NewMetrics(observability.Meter(cli.AppName))
		if err != nil {
			return errors.Unspecifiedf("create metrics: %v", err)
		}
		a.metrics = m
		return nil
	}

	tc := observability.DefaultTracerConfig(cli.AppName)
	tc.Endpoint, tc.Insecure, tc.SampleRate = t.OTLPEndpoint, t.Insecure, t.SampleRate
	tc.Environment = a.cfg.Environment
	tp, err := observability.InitTracer(ctx, tc)
	if err != nil {
		return errors.Unspecifiedf("init tracer: %v", err)
	}
	a.shutdown = append(a.shutdown, tp.Shutdown)

	mc := observability.DefaultMeterConfig(cli.AppName)
	mc.Endpoint, mc.Insecure = t.OTLPEndpoint, t.Insecure
	mc.Environment = a.cfg.Environment
	mp, err := observability.InitMeter(ctx, mc)
	if err != nil {
		return errors.Unspecifiedf("init meter: %v", err)
	}
	a.shutdown = append(a.shutdown, mp.Shutdown)

	m, err := observability.NewMetrics(mp.Meter(cli.AppName))
	if err != nil {
		return errors.Unspecifiedf("create metrics: %v", err)
	}
	a.metrics = m
	return nil
}

// close flushes and stops the telemetry providers.
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for i := len(a.shutdown) - 1; i >= 0; i-- {
		if err := a.shutdown[i](ctx); err != nil {
			logger.WithError(err).Warn("telemetry shutdown failed")
		}
	}
	a.shutdown = nil
}

// operation runs fn inside a traced operation and returns its failure as a
// command error.
func (a *app) operation(ctx context.Context, name string, fn func(ctx context.Context) *errors.Error) error {
	oc := observability.NewOperationContext(cli.AppName, name, a.metrics)
	ctx, span := oc.StartSpan(ctx)
	err := fn(ctx)
	if err != nil {
		oc.End(ctx, span, errors.Failure(err))
		logger.Get(name).WithContext(ctx).WithFault(err).Debug("command failed")
		return err
	}
	oc.End(ctx, span, errors.Success())
	return nil
}

// readInput joins args, or reads stdin when there are none.
func readInput(cmd *cobra.Command, args []string) ([]byte, *errors.Error) {
	if len(args) > 0 {
		return []byte(strings.Join(args, " ")), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, ioerr.Translate(err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.Unspecified("no input: pass an argument or pipe data on stdin")
	}
	return data, nil
}
