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

// sellCmd holds the flags for the 'sell' subcommand.
type sellCmd struct {
	symbol string
	price  string
	shares int64
	reason string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "execute a sell order against the paper portfolio" }
func (*sellCmd) Usage() string {
	return `pt sell -s <symbol> -p <price> [-n <shares>] [-r <reason>]

  Sells shares of an open position at the given price, realizing P&L
  against the weighted-average cost. Without -n the whole position is
  sold; asking for more shares than held sells the held quantity.

Usage Examples:
# Sell the whole AAPL position at $165.
$ pt sell -s AAPL -p 165

# Sell 5 shares on a stop-loss signal.
$ pt sell -s AAPL -p 142 -n 5 -r STOP_LOSS

`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol to sell")
	f.StringVar(&c.price, "p", "", "Price per share in the symbol's native currency")
	f.Int64Var(&c.shares, "n", 0, "Number of shares (0 sells the whole position)")
	f.StringVar(&c.reason, "r", "", "Reason recorded in the journal (defaults to SIGNAL)")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	receipt, err := p.Sell(papertrade.SellOrder{
		Symbol: c.symbol,
		Price:  price,
		Shares: c.shares,
		Reason: c.reason,
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
