package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/papertrade"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// buyCmd holds the flags for the 'buy' subcommand.
type buyCmd struct {
	symbol     string
	price      string
	shares     int64
	confidence int
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "execute a buy order against the paper portfolio" }
func (*buyCmd) Usage() string {
	return `pt buy -s <symbol> -p <price> [-n <shares>] [-c <confidence>]

  Buys shares of a symbol at the given price, in the symbol's native
  currency (.NS/.BO suffixes trade in INR, .KL in MYR, everything else
  in USD). Without -n the order is auto-sized from available cash and
  confidence.

Usage Examples:
# Buy 10 shares of AAPL at $150.
$ pt buy -s AAPL -p 150 -n 10

# Auto-sized buy of an Indian stock at 80% confidence.
$ pt buy -s RELIANCE.NS -p 2500 -c 80

`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol to buy")
	f.StringVar(&c.price, "p", "", "Price per share in the symbol's native currency")
	f.Int64Var(&c.shares, "n", 0, "Number of shares (0 auto-sizes from cash and confidence)")
	f.IntVar(&c.confidence, "c", 75, "Signal confidence, 0..100")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.price == "" {
		fmt.Fprintln(os.Stderr, "Error: -s and -p are required")
		return subcommands.ExitUsageError
	}
	price, err := decimal.NewFromString(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}
	p, err := openPortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	receipt, err := p.Buy(papertrade.BuyOrder{
		Symbol:     c.symbol,
		Price:      price,
		Shares:     c.shares,
		Confidence: c.confidence,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if !receipt.OK {
		fmt.Fprintf(os.Stderr, "Rejected: %s\n", receipt.Message)
		return subcommands.ExitFailure
	}
	fmt.Println(receipt.Message)
	return subcommands.ExitSuccess
}
