package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/whistlebase/whistlebase/cmd/app/commands"
	"github.com/whistlebase/whistlebase/internal/app"
	"github.com/whistlebase/whistlebase/internal/config"
)

func caseKeyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "token",
			Aliases: []string{"t"},
			Usage:   "Reporter access token",
		},
		&cli.StringFlag{
			Name:  "org-public-key",
			Usage: "Organization public key (sodium encoding)",
		},
		&cli.StringFlag{
			Name:  "org-private-key",
			Usage: "Organization private key (sodium encoding)",
		},
		&cli.StringFlag{
			Name:     "case",
			Aliases:  []string{"c"},
			Required: true,
			Usage:    "Path to the case JSON returned by GET /v1/cases/:id",
		},
	}
}

func caseKeySource(cmd *cli.Command) commands.CaseKeySource {
	return commands.CaseKeySource{
		Token:         cmd.String("token"),
		OrgPublicKey:  cmd.String("org-public-key"),
		OrgPrivateKey: cmd.String("org-private-key"),
	}
}

func caseOpeners(container *app.Container) (commands.CaseOpeners, error) {
	custodian, err := container.CustodianUseCase()
	if err != nil {
		return commands.CaseOpeners{}, err
	}
	return commands.CaseOpeners{
		Reporter:  container.ReporterUseCase(),
		Custodian: custodian,
	}, nil
}

func getCaseCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "seal-case",
			Usage: "Seal a report for a reporting channel and write its case reference",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "org-public-key",
					Required: true,
					Usage:    "Organization public key returned by GET /v1/channels/by-access-code/:code",
				},
				&cli.StringFlag{
					Name:     "access-code",
					Required: true,
					Usage:    "Reporting channel access code",
				},
				&cli.StringFlag{
					Name:  "channel-title",
					Usage: "Reporting channel title printed in the case reference",
				},
				&cli.StringFlag{
					Name:  "category",
					Value: "other",
					Usage: "Case category",
				},
				&cli.StringFlag{
					Name:     "in",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Path to the plaintext report",
				},
				&cli.StringFlag{
					Name:     "out",
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "Path to write the submit request JSON",
				},
				&cli.StringFlag{
					Name:     "key-file",
					Required: true,
					Usage:    "Path to write the case reference holding the access token",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunSealCase(
					ctx,
					container.ReporterUseCase(),
					container.Logger(),
					commands.SealCaseInput{
						OrgPublicKey: cmd.String("org-public-key"),
						AccessCode:   cmd.String("access-code"),
						ChannelTitle: cmd.String("channel-title"),
						Category:     cmd.String("category"),
						InputPath:    cmd.String("in"),
						OutputPath:   cmd.String("out"),
						KeyPath:      cmd.String("key-file"),
					},
					time.Now(),
				)
			},
		},
		{
			Name:  "inspect-token",
			Usage: "Show the case ID and public key carried by a reporter access token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Reporter access token",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunInspectToken(commands.DefaultIO(), cmd.String("token"), cmd.String("format"))
			},
		},
		{
			Name:  "open-case",
			Usage: "Decrypt an exported case and its messages",
			Flags: append(caseKeyFlags(), formatFlag()),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				openers, err := caseOpeners(container)
				if err != nil {
					return err
				}

				return commands.RunOpenCase(
					ctx,
					openers,
					container.MessageCipher(),
					container.Logger(),
					commands.DefaultIO(),
					caseKeySource(cmd),
					cmd.String("case"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "decrypt-attachment",
			Usage: "Decrypt a downloaded attachment",
			Flags: append(caseKeyFlags(),
				&cli.StringFlag{
					Name:     "in",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Path to the downloaded attachment ciphertext",
				},
				&cli.StringFlag{
					Name:     "out",
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "Path to write the decrypted file",
				},
				&cli.StringFlag{
					Name:     "iv",
					Required: true,
					Usage:    "Attachment IV from the X-Attachment-IV header",
				},
			),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				openers, err := caseOpeners(container)
				if err != nil {
					return err
				}

				return commands.RunDecryptAttachment(
					ctx,
					openers,
					container.AttachmentCipher(),
					container.Logger(),
					caseKeySource(cmd),
					cmd.String("case"),
					cmd.String("in"),
					cmd.String("out"),
					cmd.String("iv"),
				)
			},
		},
	}
}
