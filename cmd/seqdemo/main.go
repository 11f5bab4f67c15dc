// Command seqdemo runs the seqkit demos: price totals, name filtering and
// joining, sorting and grouping people, directory listings and a bounded
// wait for file changes.
//
//	seqdemo --dir . --only listing,flatten
//	seqdemo --watch --watch-timeout 30s
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/kbukum/seqkit/bootstrap"
	"github.com/kbukum/seqkit/config"
	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/version"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	flags := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	flags.SetOutput(out)
	configFile := flags.String("config", "", "path to config.yml")
	envFile := flags.String("env", "", "path to a .env file")
	dir := flags.String("dir", "", "directory listed by the listing demos")
	only := flags.StringSlice("only", nil, "demos to run (default all)")
	watch := flags.Bool("watch", false, "wait for file modifications")
	watchTimeout := flags.Duration("watch-timeout", 0, "how long to wait for modifications")
	showVersion := flags.Bool("version", false, "print version and exit")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintln(out, version.Get().String())
		return nil
	}

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}

	var cfg DemoConfig
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return err
	}

	if flags.Changed("dir") {
		cfg.Listing.Dir = *dir
		cfg.Listing.TextDir = *dir
	}
	if flags.Changed("only") {
		cfg.Only = *only
	}
	if flags.Changed("watch") {
		cfg.Watch.Enabled = *watch
	}
	if flags.Changed("watch-timeout") {
		cfg.Watch.Timeout = *watchTimeout
	}

	return runDemos(ctx, &cfg, afero.NewReadOnlyFs(afero.NewOsFs()), out)
}

// runDemos runs the selected demos as steps of one bootstrap task.
func runDemos(ctx context.Context, cfg *DemoConfig, fsys afero.Fs, out io.Writer, opts ...bootstrap.Option) error {
	app, err := bootstrap.NewApp(cfg, append([]bootstrap.Option{bootstrap.WithOutput(out)}, opts...)...)
	if err != nil {
		return err
	}
	setupTelemetry(app)

	return app.RunTask(ctx, func(ctx context.Context) error {
		app.Logger.Info("build", version.Get().Fields())

		metrics, err := observability.NewMetrics(observability.Meter(serviceName))
		if err != nil {
			return err
		}
		d := newDemos(out, fsys, app.Cfg, metrics)

		for _, dm := range catalog {
			if !app.Cfg.runs(dm.name) {
				continue
			}
			err := app.Step(ctx, dm.name, func(ctx context.Context) (int, error) {
				return observability.Run(ctx, dm.name, metrics, func(ctx context.Context) (int, error) {
					return dm.run(d, ctx)
				})
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// setupTelemetry registers exporter setup and flush hooks for the enabled
// OTLP exporters.
func setupTelemetry(app *bootstrap.App[*DemoConfig]) {
	cfg := app.Cfg

	if cfg.Tracing.Enabled {
		app.OnStart(func(ctx context.Context) error {
			tc := observability.DefaultTracerConfig(cfg.Name)
			tc.ServiceVersion = cfg.Version
			tc.Environment = cfg.Environment
			tc.Endpoint = cfg.Tracing.Endpoint
			tc.Insecure = cfg.Tracing.Insecure
			tc.SampleRate = cfg.Tracing.SampleRate

			tp, err := observability.InitTracer(ctx, &tc)
			if err != nil {
				return err
			}
			app.OnStop(func(ctx context.Context) error { return tp.Shutdown(ctx) })
			return nil
		})
	}

	if cfg.Metrics.Enabled {
		app.OnStart(func(ctx context.Context) error {
			mc := observability.DefaultMeterConfig(cfg.Name)
			mc.ServiceVersion = cfg.Version
			mc.Environment = cfg.Environment
			mc.Endpoint = cfg.Metrics.Endpoint
			mc.Insecure = cfg.Metrics.Insecure
			mc.Interval = cfg.Metrics.Interval

			mp, err := observability.InitMeter(ctx, &mc)
			if err != nil {
				return err
			}
			app.OnStop(func(ctx context.Context) error {
				ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
				defer cancel()
				return mp.Shutdown(ctx)
			})
			return nil
		})
	}
}
