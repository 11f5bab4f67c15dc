// Package bootstrap runs finite seqkit programs with a uniform lifecycle.
//
// NewApp applies config defaults, validates, and initializes the logger.
// RunTask runs start hooks, the task (canceled on SIGINT/SIGTERM), a step
// summary, then stop hooks:
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return app.Step(ctx, "count", func(ctx context.Context) (int, error) {
//	        return stream.Of(1, 2, 3).Count(ctx)
//	    })
//	})
package bootstrap
