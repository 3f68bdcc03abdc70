// Command cli runs insight and sync jobs by hand.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/amirasaad/spendwise/infra/initializer"
	"github.com/amirasaad/spendwise/pkg/app"
	"github.com/amirasaad/spendwise/pkg/config"
	"github.com/amirasaad/spendwise/pkg/domain/insight"
	"github.com/amirasaad/spendwise/pkg/middleware"
	accountsvc "github.com/amirasaad/spendwise/pkg/service/account"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  token <user_id>      print a bearer token for the user
  generate <user_id>   regenerate the user's insights
  insights <user_id>   list the user's active insights
  sync <user_id>       import recent bank transactions
  balances <user_id>   show the user's account balances
  sweep                run the daily insight sweep now`

var (
	bold    = color.New(color.Bold)
	failure = color.New(color.FgRed, color.Bold)
	success = color.New(color.FgGreen)
)

var typeColors = map[insight.Type]*color.Color{
	insight.TypeAlert:   color.New(color.FgRed),
	insight.TypeWarning: color.New(color.FgYellow),
	insight.TypeInfo:    color.New(color.FgCyan),
	insight.TypeSuccess: color.New(color.FgGreen),
	insight.TypeTip:     color.New(color.FgMagenta),
}

func main() {
	color.NoColor = color.NoColor || !term.IsTerminal(int(os.Stdout.Fd()))
	if err := run(context.Background(), os.Args[1:]); err != nil {
		_, _ = failure.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println(usage)
		return nil
	}
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	if args[0] == "token" {
		userID, err := userArg(args)
		if err != nil {
			return err
		}
		token, err := middleware.NewToken(cfg.Auth.Jwt, userID)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	}

	deps, cleanup, err := initializer.InitializeDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	a := app.New(deps, cfg)

	switch args[0] {
	case "generate":
		userID, err := userArg(args)
		if err != nil {
			return err
		}
		insights, err := a.InsightService.Generate(ctx, userID)
		if err != nil {
			return err
		}
		_, _ = success.Printf("Generated %d insights\n", len(insights))
		printInsights(insights)
	case "insights":
		userID, err := userArg(args)
		if err != nil {
			return err
		}
		insights, err := a.InsightService.ListActive(ctx, userID)
		if err != nil {
			return err
		}
		printInsights(insights)
	case "sync":
		userID, err := userArg(args)
		if err != nil {
			return err
		}
		res, err := a.Reconciler.Sync(ctx, userID)
		if err != nil {
			return err
		}
		_, _ = success.Printf("Synced: %d created, %d updated, %d balances refreshed\n",
			res.Created, res.Updated, res.Accounts)
	case "balances":
		userID, err := userArg(args)
		if err != nil {
			return err
		}
		summary, err := a.AccountService.Summary(ctx, userID)
		if err != nil {
			return err
		}
		printBalances(summary)
	case "sweep":
		res := a.Scheduler.RunOnce(ctx)
		_, _ = success.Printf("Sweep finished: %d users, %d failed\n", res.Users, res.Failed)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
	return nil
}

func userArg(args []string) (uuid.UUID, error) {
	if len(args) < 2 {
		return uuid.Nil, fmt.Errorf("usage: %s <user_id>", args[0])
	}
	id, err := uuid.Parse(args[1])
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id %q", args[1])
	}
	return id, nil
}

func printBalances(s *accountsvc.Summary) {
	for _, a := range s.Accounts {
		balance := "-"
		if a.CurrentBalance != nil {
			balance = a.CurrentBalance.StringFixed(2)
		}
		_, _ = bold.Printf("%-30s", a.Name)
		fmt.Printf(" %-10s %12s %s\n", a.Subtype, balance, a.CurrencyCode)
	}
	_, _ = success.Printf("Total %s across %d accounts (checking %s, savings %s, credit %s)\n",
		s.TotalBalance.StringFixed(2), s.TotalAccounts,
		s.CheckingBalance.StringFixed(2), s.SavingsBalance.StringFixed(2), s.CreditBalance.StringFixed(2))
}

func printInsights(insights []insight.Insight) {
	for _, in := range insights {
		c, ok := typeColors[in.Type]
		if !ok {
			c = bold
		}
		_, _ = c.Printf("%-8s", strings.ToUpper(string(in.Type)))
		_, _ = bold.Printf(" [%2d] %s\n", in.Priority, in.Title)
		fmt.Printf("              %s\n", in.Description)
		if in.Action != "" {
			fmt.Printf("              -> %s\n", in.Action)
		}
	}
}
