// Command celltechctl runs one-off operator tasks against the configured store.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/Apurer/cell-tech-api/internal/app/api"
	salehttpmapper "github.com/Apurer/cell-tech-api/internal/domains/sales/adapters/http/mapper"
	salestypes "github.com/Apurer/cell-tech-api/internal/domains/sales/application/types"
	salesdomain "github.com/Apurer/cell-tech-api/internal/domains/sales/domain"
	userhttpmapper "github.com/Apurer/cell-tech-api/internal/domains/users/adapters/http/mapper"
	userstypes "github.com/Apurer/cell-tech-api/internal/domains/users/application/types"
	usersports "github.com/Apurer/cell-tech-api/internal/domains/users/ports"
	"github.com/Apurer/cell-tech-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/cell-tech-api/internal/platform/observability"
	"github.com/Apurer/cell-tech-api/internal/shared/ref"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "celltechctl",
		Usage:  "operate the Cell Tech backend",
		Writer: out,
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "apply the schema to the configured database",
				Action: migrate,
			},
			{
				Name:  "create-admin",
				Usage: "register an account (if needed) and promote it to admin",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Value: "Administrator"},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"CELLTECH_ADMIN_PASSWORD"}},
				},
				Action: createAdmin,
			},
			{
				Name:  "stats",
				Usage: "print the daily sales series as JSON",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "days", Value: 7},
					&cli.StringFlag{Name: "user", Usage: "restrict to one seller id"},
				},
				Action: stats,
			},
		},
	}
}

func withServices(c *cli.Context, fn func(ctx context.Context, services *api.Services) error) error {
	cfg, err := api.LoadConfig()
	if err != nil {
		return err
	}
	// Commands print JSON on stdout; logs go to stderr.
	settings := cfg.Observability("celltechctl")
	settings.LogOutput = os.Stderr
	instruments, shutdown, err := platformobservability.Init(c.Context, settings)
	if err != nil {
		return err
	}
	defer func() { _ = shutdown(context.Background()) }()
	services, err := api.BuildServices(c.Context, cfg, instruments)
	if err != nil {
		return err
	}
	defer func() {
		if err := services.Close(); err != nil {
			instruments.Logger.Warn("failed to release resources", slog.String("error", err.Error()))
		}
	}()
	return fn(c.Context, services)
}

func migrate(c *cli.Context) error {
	return withServices(c, func(_ context.Context, services *api.Services) error {
		if services.DB == nil {
			return errors.New("no database configured; set DATABASE_DRIVER or POSTGRES_DSN")
		}
		if err := migrations.Run(services.DB); err != nil {
			return err
		}
		_, err := fmt.Fprintln(c.App.Writer, "schema is up to date")
		return err
	})
}

func createAdmin(c *cli.Context) error {
	return withServices(c, func(ctx context.Context, services *api.Services) error {
		_, err := services.Users.Register(ctx, userstypes.RegisterInput{
			Name:     c.String("name"),
			Email:    c.String("email"),
			Password: c.String("password"),
		})
		if err != nil && !errors.Is(err, usersports.ErrDuplicateEmail) {
			return err
		}
		admin, err := services.Users.PromoteToAdmin(ctx, c.String("email"))
		if err != nil {
			return err
		}
		return writeJSON(c.App.Writer, userhttpmapper.FromDomainUser(admin))
	})
}

func stats(c *cli.Context) error {
	query := salestypes.SalesQuery{Window: salesdomain.WindowQuery{Days: strconv.Itoa(c.Int("days"))}}
	if raw := c.String("user"); raw != "" {
		id, err := ref.Parse(raw)
		if err != nil {
			return err
		}
		query.SellerID = &id
	}
	return withServices(c, func(ctx context.Context, services *api.Services) error {
		result, err := services.Sales.SalesStatistics(ctx, query)
		if err != nil {
			return err
		}
		series, summary := salehttpmapper.FromStatistics(result)
		return writeJSON(c.App.Writer, map[string]any{"series": series, "summary": summary})
	})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
