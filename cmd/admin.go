package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/papertrade"
	"github.com/google/subcommands"
)

// The three admin commands differ only in what they keep, so they share one
// execution path.

type resetCmd struct{}

func (*resetCmd) Name() string { return "reset" }
func (*resetCmd) Synopsis() string {
	return "restore initial cash and clear positions, keeping the trade journal"
}
func (*resetCmd) Usage() string {
	return `pt reset

  Restores the cash balances to the initial defaults and clears all open
  positions and daily snapshots. The trade journal is kept.
`
}
func (*resetCmd) SetFlags(f *flag.FlagSet) {}
func (c *resetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runAdmin((*papertrade.Portfolio).Reset)
}

type clearHistoryCmd struct{}

func (*clearHistoryCmd) Name() string { return "clear-history" }
func (*clearHistoryCmd) Synopsis() string {
	return "drop the trade journal and daily snapshots, keeping cash and positions"
}
func (*clearHistoryCmd) Usage() string {
	return `pt clear-history

  Drops the trade journal and the daily snapshots. Cash balances and open
  positions are kept exactly as they are.
`
}
func (*clearHistoryCmd) SetFlags(f *flag.FlagSet) {}
func (c *clearHistoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runAdmin((*papertrade.Portfolio).ClearHistory)
}

type fullResetCmd struct{}

func (*fullResetCmd) Name() string     { return "full-reset" }
func (*fullResetCmd) Synopsis() string { return "replace the whole portfolio with first-run defaults" }
func (*fullResetCmd) Usage() string {
	return `pt full-reset

  Replaces the whole portfolio state with first-run defaults: initial cash
  balances, no positions, no trades, no snapshots.
`
}
func (*fullResetCmd) SetFlags(f *flag.FlagSet) {}
func (c *fullResetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runAdmin((*papertrade.Portfolio).FullReset)
}

func runAdmin(op func(*papertrade.Portfolio) (*papertrade.AdminReport, error)) subcommands.ExitStatus {
	p, err := openPortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	report, err := op(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(report.Message)
	return subcommands.ExitSuccess
}
