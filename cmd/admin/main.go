package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"chatpoker-server/internal/config"
	"chatpoker-server/internal/jwt"
	"chatpoker-server/pkg/db"
	"chatpoker-server/pkg/store"
	"github.com/alecthomas/kong"
	"github.com/google/uuid"
)

// CLI is the admin command line
type CLI struct {
	List   ListCmd   `cmd:"" help:"List the stored tables"`
	Show   ShowCmd   `cmd:"" help:"Show the state of a table"`
	Delete DeleteCmd `cmd:"" help:"Delete a table"`
	Token  TokenCmd  `cmd:"" help:"Sign an access token for a player"`
}

// ListCmd prints every stored table id
type ListCmd struct{}

func (ListCmd) Run() error {
	ids, err := postgres().List(context.Background())
	if err != nil {
		return err
	}

	for _, id := range ids {
		fmt.Println(id)
	}

	return nil
}

// ShowCmd prints the snapshot of one table
type ShowCmd struct {
	Table string `arg:"" help:"Table id"`
}

func (cmd ShowCmd) Run() error {
	snap, err := postgres().Load(context.Background(), cmd.Table)
	if err != nil {
		return err
	}

	fmt.Printf("Table %s\n", snap.ID)
	fmt.Printf("Deals: %d, round: %s\n", snap.DealsCount, snap.Round)
	fmt.Printf("Community: %s\n\n", snap.Community)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tPLAYER\tBALANCE\tBET\tCARDS\tSTATE")
	for i, seat := range snap.Seats {
		state := ""
		switch {
		case seat.HasLost:
			state = "out"
		case seat.HasFolded:
			state = "folded"
		case i == snap.CurrentTurnIndex:
			state = "to act"
		}

		_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\n", i+1, seat.Name, seat.Balance, seat.Bet, seat.Cards, state)
	}

	return w.Flush()
}

// DeleteCmd removes a table
type DeleteCmd struct {
	Table string `arg:"" help:"Table id"`
}

func (cmd DeleteCmd) Run() error {
	if err := postgres().Delete(context.Background(), cmd.Table); err != nil {
		return err
	}

	fmt.Printf("Deleted table %s\n", cmd.Table)
	return nil
}

// TokenCmd signs a JWT a player can use to connect
type TokenCmd struct {
	User string `arg:"" optional:"" help:"User id, a random one is generated when empty"`
	Name string `help:"Display name"`
}

func (cmd TokenCmd) Run() error {
	if err := jwt.LoadKeys(); err != nil {
		return err
	}

	user := cmd.User
	if user == "" {
		user = uuid.New().String()
	}

	token, err := jwt.Sign(user, cmd.Name)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}

func postgres() *store.Postgres {
	return store.NewPostgres(db.Instance())
}

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("admin"),
		kong.Description("Chat poker administration"),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
