package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/nexus/adapter"
	"github.com/kbukum/nexus/version"
)

type rootFlags struct {
	configFile string
	envFile    string
	output     string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "nexus",
		Short:         "Run payloads through staged adapters",
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if flags.output != outputText && flags.output != outputJSON {
				return fmt.Errorf("--output must be %q or %q", outputText, outputJSON)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "config file (default: ./config.yml or ./cmd/nexus/config.yml)")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", "", ".env file to load")
	root.PersistentFlags().StringVarP(&flags.output, "output", "o", outputText, "output format: text or json")

	root.AddCommand(
		newBroadcastCmd(flags),
		newChainCmd(flags),
		newRecoverCmd(flags),
		newBatchCmd(flags),
		newDemoCmd(flags),
	)
	return root
}

// execute loads config, builds the runtime and runs task inside the app
// lifecycle. The tally is printed after task when it saw any report.
func execute(cmd *cobra.Command, flags *rootFlags, task func(ctx context.Context, rt *runtime, out printer) error) error {
	cfg, err := loadConfig(flags.configFile, flags.envFile)
	if err != nil {
		return err
	}
	rt, err := newRuntime(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	out := printer{w: cmd.OutOrStdout(), format: flags.output}

	return rt.app.RunTask(cmd.Context(), func(ctx context.Context) error {
		if err := task(ctx, rt, out); err != nil {
			return err
		}
		if rt.tally.Total() == 0 {
			return nil
		}
		return out.stats(rt.tally.All())
	})
}

func newBroadcastCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "broadcast <payload>",
		Short: "Process one payload with every adapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parsePayload(args[0])
			if err != nil {
				return err
			}
			return execute(cmd, flags, func(ctx context.Context, rt *runtime, out printer) error {
				reports := rt.coord.Broadcast(ctx, payload)
				rt.tally.Observe(reports...)
				return out.reports(reports)
			})
		},
	}
}

func newChainCmd(flags *rootFlags) *cobra.Command {
	var ids []string
	cmd := &cobra.Command{
		Use:   "chain <payload>",
		Short: "Feed a payload through adapters in sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parsePayload(args[0])
			if err != nil {
				return err
			}
			return execute(cmd, flags, func(ctx context.Context, rt *runtime, out printer) error {
				adapters, err := rt.adapters(ids)
				if err != nil {
					return err
				}
				report, err := rt.coord.Chain(ctx, payload, adapters)
				if err != nil {
					return err
				}
				rt.tally.Observe(report)
				return out.report(report)
			})
		},
	}
	cmd.Flags().StringSliceVar(&ids, "adapters", nil, "adapter ids in chain order (default: all, in config order)")
	return cmd
}

func newRecoverCmd(flags *rootFlags) *cobra.Command {
	var primary, fallback string
	cmd := &cobra.Command{
		Use:   "recover <payload>",
		Short: "Process a payload, falling back to a second adapter on failure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parsePayload(args[0])
			if err != nil {
				return err
			}
			return execute(cmd, flags, func(ctx context.Context, rt *runtime, out printer) error {
				p, err := rt.adapter(primary)
				if err != nil {
					return err
				}
				f, err := rt.adapter(fallback)
				if err != nil {
					return err
				}
				report := rt.coord.Recover(ctx, payload, p, f)
				rt.tally.Observe(report)
				return out.report(report)
			})
		},
	}
	cmd.Flags().StringVar(&primary, "primary", "", "primary adapter id")
	cmd.Flags().StringVar(&fallback, "fallback", "", "fallback adapter id")
	_ = cmd.MarkFlagRequired("primary")
	_ = cmd.MarkFlagRequired("fallback")
	return cmd
}

func newBatchCmd(flags *rootFlags) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "batch <payload>...",
		Short: "Process many payloads with one adapter",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payloads := make([]adapter.Payload, 0, len(args))
			for _, arg := range args {
				p, err := parsePayload(arg)
				if err != nil {
					return err
				}
				payloads = append(payloads, p)
			}
			return execute(cmd, flags, func(ctx context.Context, rt *runtime, out printer) error {
				a, err := rt.adapter(id)
				if err != nil {
					return err
				}
				reports := rt.coord.ProcessBatch(ctx, a, payloads)
				rt.tally.Observe(reports...)
				return out.reports(reports)
			})
		},
	}
	cmd.Flags().StringVar(&id, "adapter", "", "adapter id")
	_ = cmd.MarkFlagRequired("adapter")
	return cmd
}

func newDemoCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run each configured adapter on its sample payload, then chain and recover",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cmd, flags, func(ctx context.Context, rt *runtime, out printer) error {
				return runDemo(ctx, rt, out, cmd.OutOrStdout())
			})
		},
	}
}

// samplePayloads maps each adapter kind to a payload it accepts.
var samplePayloads = map[adapter.Kind]adapter.Payload{
	adapter.KindRecord:    adapter.Record{"sensor": "temp", "value": 23.5, "unit": "°C"},
	adapter.KindDelimited: "user,action,timestamp",
	adapter.KindStream:    "Real-time sensor stream",
}

func runDemo(ctx context.Context, rt *runtime, out printer, w io.Writer) error {
	adapters := rt.coord.Adapters()

	section(w, out, "Multi-format processing")
	for _, a := range adapters {
		r := a.Process(ctx, samplePayloads[a.Kind()])
		rt.tally.Observe(r)
		if err := out.report(r); err != nil {
			return err
		}
	}

	section(w, out, "Chaining")
	chain := demoChain(adapters)
	report, err := rt.coord.Chain(ctx, samplePayloads[chain[0].Kind()], chain)
	if err != nil {
		return err
	}
	rt.tally.Observe(report)
	if err := out.report(report); err != nil {
		return err
	}

	section(w, out, "Recovery")
	primary, fallback := demoRecoveryPair(adapters)
	if primary == nil {
		return nil
	}
	report = rt.coord.Recover(ctx, samplePayloads[adapter.KindStream], primary, fallback)
	rt.tally.Observe(report)
	return out.report(report)
}

// demoChain orders stream adapters before record adapters so a stream
// summary feeds a record adapter. Without both kinds it chains everything.
func demoChain(adapters []adapter.Adapter) []adapter.Adapter {
	var streams, records []adapter.Adapter
	for _, a := range adapters {
		switch a.Kind() {
		case adapter.KindStream:
			streams = append(streams, a)
		case adapter.KindRecord:
			records = append(records, a)
		}
	}
	if len(streams) == 0 || len(records) == 0 {
		return adapters
	}
	return []adapter.Adapter{streams[0], records[0]}
}

// demoRecoveryPair picks a delimited primary that rejects the stream sample
// and a stream fallback that accepts it.
func demoRecoveryPair(adapters []adapter.Adapter) (primary, fallback adapter.Adapter) {
	for _, a := range adapters {
		switch a.Kind() {
		case adapter.KindDelimited:
			if primary == nil {
				primary = a
			}
		case adapter.KindStream:
			if fallback == nil {
				fallback = a
			}
		}
	}
	if primary == nil || fallback == nil {
		return nil, nil
	}
	return primary, fallback
}

func section(w io.Writer, out printer, title string) {
	if out.format == outputText {
		fmt.Fprintf(w, "\n=== %s ===\n", title)
	}
}
