package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/papertrade/quote"
	"github.com/google/subcommands"
)

type updateCmd struct{}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "refresh position prices and record today's valuation" }
func (*updateCmd) Usage() string {
	return `pt update

  Fetches a live price for every open position, updates the last observed
  prices, and records today's per-currency valuation snapshot. A second
  update on the same day overwrites the snapshot.
`
}

func (*updateCmd) SetFlags(f *flag.FlagSet) {}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := openPortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := p.RefreshPositions(quote.New()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Updated positions and recorded today's valuation:")
	for _, cm := range p.ComputeMetrics().PerCurrency {
		fmt.Printf("  %s: %s\n", cm.Currency, cm.TotalValue)
	}
	return subcommands.ExitSuccess
}
