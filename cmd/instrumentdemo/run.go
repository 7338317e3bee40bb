package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/curtisnewbie/instrument/config"
	"github.com/curtisnewbie/instrument/instrument"
	"github.com/curtisnewbie/instrument/util/async"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var errSimulated = errors.New("simulated failure")

type demoRow struct {
	Name    string
	Result  string
	Err     error
	Elapsed time.Duration
	Logged  bool
}

func newRunCmd() *cobra.Command {
	var delay time.Duration
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "run [KEY=VALUE...]",
		Short: "Run sample tasks and print their elapsed time",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(cfgFile, args)
			if err != nil {
				return err
			}
			closer, err := config.Apply(conf, logrus.StandardLogger(), prometheus.DefaultRegisterer)
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			rows, err := runDemo(ctx, delay)
			if err != nil {
				return err
			}
			return printRows(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().DurationVar(&delay, "delay", 100*time.Millisecond, "how long the sample tasks suspend")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "timeout for all tasks")
	return cmd
}

func runDemo(ctx context.Context, delay time.Duration) ([]demoRow, error) {
	type task struct {
		name string
		fut  func(ob instrument.Observer) async.Future[string]
	}

	tasks := []task{
		{
			name: "immediate",
			fut: func(ob instrument.Observer) async.Future[string] {
				return instrument.Instrument(async.Completed("42", nil), instrument.WithObserver(ob))
			},
		},
		{
			name: "sleep",
			fut: func(ob instrument.Observer) async.Future[string] {
				return instrument.InstrumentMsg("sleep task took {elapsed}", async.After(delay, "done"), instrument.WithObserver(ob))
			},
		},
		{
			name: "goroutine (debug only)",
			fut: func(ob instrument.Observer) async.Future[string] {
				return instrument.DbgInstrument(async.LazyCtx(ctx, func(ctx context.Context) (string, error) {
					select {
					case <-time.After(delay / 2):
						return "lazy", nil
					case <-ctx.Done():
						return "", ctx.Err()
					}
				}), instrument.WithObserver(ob))
			},
		},
		{
			name: "failing",
			fut: func(ob instrument.Observer) async.Future[string] {
				return instrument.InstrumentFunc(func(d time.Duration) string {
					return fmt.Sprintf("failing task gave up after %v", d)
				}, async.Map(async.Sleep(delay/4), func(struct{}, error) (string, error) {
					return "", errSimulated
				}), instrument.WithObserver(ob))
			},
		},
	}

	rows := make([]demoRow, 0, len(tasks))
	for _, t := range tasks {
		row := demoRow{Name: t.name}
		ob := instrument.ObserverFunc(func(r instrument.Record) {
			row.Elapsed = r.Elapsed
			row.Logged = true
		})

		res, err := async.Await(ctx, t.fut(ob))
		if err != nil && !errors.Is(err, errSimulated) {
			return nil, fmt.Errorf("task %v failed, %w", t.name, err)
		}
		row.Result = res
		row.Err = err
		rows = append(rows, row)
	}
	return rows, nil
}

func printRows(w io.Writer, rows []demoRow) error {
	table := tablewriter.NewWriter(w)
	table.Header("Task", "Result", "Error", "Elapsed")
	for _, r := range rows {
		elapsed := "-"
		if r.Logged {
			elapsed = r.Elapsed.String()
		}
		errs := ""
		if r.Err != nil {
			errs = r.Err.Error()
		}
		if err := table.Append(r.Name, r.Result, errs, elapsed); err != nil {
			return err
		}
	}
	return table.Render()
}
