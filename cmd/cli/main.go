// Command cli is the operator console: it talks to the store directly,
// bypassing the HTTP layer, for balance top-ups, catalog edits and ledger
// review.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/kingstore/api/infra/initializer"
	"github.com/kingstore/api/pkg/app"
	"github.com/kingstore/api/pkg/config"
	"github.com/kingstore/api/pkg/dto"
	"github.com/kingstore/api/pkg/service/session"
)

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  register <username> <email>            create an account (password prompted)")
	fmt.Println("  topup <user_id> <balance>              set a user's balance")
	fmt.Println("  users                                  list users with balances")
	fmt.Println("  transactions                           list the global ledger")
	fmt.Println("  offers                                 list the catalog")
	fmt.Println("  add-offer <name> <description> <price> add a catalog offer")
	fmt.Println("  reprice <offer_id> <price>             change an offer's price")
	fmt.Println("  delete-offer <offer_id>                remove an offer")
	fmt.Println("  delete-user <user_id>                  remove a user profile")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	cfg, err := config.Load(".env")
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		color.Red("Failed to initialize dependencies: %v", err)
		os.Exit(1)
	}
	a := app.New(deps, cfg)

	ctx := context.Background()
	sess, err := a.SessionService.NewSession(ctx)
	if err != nil {
		color.Red("Failed to open session: %v", err)
		os.Exit(1)
	}

	if err := run(ctx, a, sess, os.Args[1], os.Args[2:]); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, sess *session.Session, cmd string, args []string) error {
	switch cmd {
	case "register":
		if len(args) < 2 {
			return fmt.Errorf("usage: register <username> <email>")
		}
		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if err := sess.Register(ctx, args[0], args[1], string(password)); err != nil {
			return err
		}
		color.Green("Registered %s", args[0])
	case "topup":
		if len(args) < 2 {
			return fmt.Errorf("usage: topup <user_id> <balance>")
		}
		balance, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid balance: %w", err)
		}
		if err := sess.UpdateBalance(ctx, args[0], balance); err != nil {
			return err
		}
		color.Green("Balance for %s set to %d", args[0], balance)
	case "users":
		users, err := a.Listings.Users(ctx)
		if err != nil {
			return err
		}
		for _, u := range users {
			role := ""
			if u.IsAdmin {
				role = color.YellowString(" [admin]")
			}
			fmt.Printf("%s  %-20s %10d%s\n", u.ID, u.Username, u.Balance, role)
		}
	case "transactions":
		txs, err := a.Listings.Transactions(ctx)
		if err != nil {
			return err
		}
		for _, tx := range txs {
			fmt.Printf("%s  %-16s %-24s %8d  player=%s\n",
				tx.TransactionDate.Format("2006-01-02 15:04"),
				tx.Username, tx.GameOfferName, tx.Amount, tx.PlayerID)
		}
	case "offers":
		for _, o := range sess.Offers() {
			fmt.Printf("%-12s %-28s %8d  %s\n", o.ID, o.Name, o.Price, o.Description)
		}
	case "add-offer":
		if len(args) < 3 {
			return fmt.Errorf("usage: add-offer <name> <description> <price>")
		}
		price, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}
		offer, err := sess.AddOffer(ctx, dto.OfferCreate{
			Name:        args[0],
			Description: args[1],
			Price:       price,
		})
		if err != nil {
			return err
		}
		color.Green("Offer added: %s", offer.ID)
	case "reprice":
		if len(args) < 2 {
			return fmt.Errorf("usage: reprice <offer_id> <price>")
		}
		price, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}
		if err := sess.UpdateOfferPrice(ctx, args[0], price); err != nil {
			return err
		}
		color.Green("Offer %s repriced to %d", args[0], price)
	case "delete-offer":
		if len(args) < 1 {
			return fmt.Errorf("usage: delete-offer <offer_id>")
		}
		if err := sess.DeleteOffer(ctx, args[0]); err != nil {
			return err
		}
		color.Green("Offer %s deleted", args[0])
	case "delete-user":
		if len(args) < 1 {
			return fmt.Errorf("usage: delete-user <user_id>")
		}
		if err := sess.DeleteUser(ctx, args[0]); err != nil {
			return err
		}
		color.Green("User %s deleted", args[0])
	default:
		usage()
	}
	return nil
}
