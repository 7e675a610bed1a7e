package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type positionsCmd struct{}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "display the open positions and their unrealized P&L" }
func (*positionsCmd) Usage() string {
	return `pt positions

  Displays every open position valued at its last observed price,
  ordered by the magnitude of the unrealized P&L percentage.
`
}

func (*positionsCmd) SetFlags(f *flag.FlagSet) {}

func (c *positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := openPortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	reports := p.UnrealizedPositions()
	var md strings.Builder
	md.WriteString("# Open Positions\n\n")
	if len(reports) == 0 {
		md.WriteString("No open positions.\n")
		printMarkdown(md.String())
		return subcommands.ExitSuccess
	}
	md.WriteString("| Symbol | Shares | Avg Price | Last | Value | P&L | P&L % | Days | Target | Stop |\n")
	md.WriteString("|---|---:|---:|---:|---:|---:|---:|---:|---:|---:|\n")
	for _, r := range reports {
		fmt.Fprintf(&md, "| %s | %d | %s | %s | %s | %s | %s | %d | %s | %s |\n",
			r.Symbol, r.Shares, r.AvgPrice, r.LastPrice, r.MarketValue,
			r.UnrealizedPnL.SignedString(), r.UnrealizedPct.SignedString(),
			r.DaysHeld, r.TargetPrice, r.StopLoss)
	}
	printMarkdown(md.String())
	return subcommands.ExitSuccess
}
