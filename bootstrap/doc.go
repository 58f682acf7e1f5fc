// Package bootstrap provides the lifecycle shared by nexus binaries.
//
// NewApp applies config defaults, validates the config and initializes the
// logger. RunTask then runs OnStart hooks, executes a finite task with a
// context cancelled on SIGINT/SIGTERM, and runs OnStop hooks within the
// graceful timeout.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnStop(shutdownTelemetry)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    reports := coord.Broadcast(ctx, payload)
//	    ...
//	})
package bootstrap
