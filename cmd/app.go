// Package cmd implements the CLI application to manage a paper-trading
// portfolio.
package cmd

import (
	"flag"
	"net/http"
	"time"

	"github.com/etnz/papertrade"
	"github.com/google/subcommands"
)

// Commands lists every subcommand. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	&buyCmd{},
	&sellCmd{},
	&positionsCmd{},
	&historyCmd{},
	&metricsCmd{},
	&updateCmd{},
	&resetCmd{},
	&clearHistoryCmd{},
	&fullResetCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var portfolioFile = flag.String("portfolio-file", "portfolio.json", "Path to the portfolio state file (JSON format)")

// openPortfolio loads the portfolio file, creating first-run defaults when it
// does not exist yet, and refreshes exchange rates when the portfolio settings
// ask for it. A rate-provider outage never fails the command.
func openPortfolio() (*papertrade.Portfolio, error) {
	p, err := papertrade.Open(*portfolioFile)
	if err != nil {
		return nil, err
	}
	if p.Settings().AutoUpdateRates {
		p.RefreshRates(&http.Client{Timeout: 10 * time.Second})
	}
	return p, nil
}
