package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/whistlebase/whistlebase/cmd/app/commands"
	"github.com/whistlebase/whistlebase/internal/app"
	"github.com/whistlebase/whistlebase/internal/config"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-keypair",
			Usage: "Generate a Curve25519 keypair in sodium encoding",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunGenerateKeyPair(
					ctx,
					container.KeyPairService(),
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "generate-signing-key",
			Usage: "Generate a random SESSION_SIGNING_KEY",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunGenerateSigningKey(container.CryptoProvider(), commands.DefaultIO())
			},
		},
		{
			Name:  "provision-org-key",
			Usage: "Generate an organization keypair wrapped under the admin password read from stdin",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				custodian, err := container.CustodianUseCase()
				if err != nil {
					return err
				}

				return commands.RunProvisionOrganizationKey(
					ctx,
					custodian,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("format"),
				)
			},
		},
	}
}
