package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/AndrewN04/url-shortner/internal/events"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/db"
	"github.com/AndrewN04/url-shortner/internal/processing/links"
	"github.com/AndrewN04/url-shortner/internal/processing/urlcheck"
	"github.com/AndrewN04/url-shortner/internal/storage/postgres"
	"github.com/spf13/cobra"
)

var linksListLimit int

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Inspect and revoke short links",
}

var linksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent links",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		pg, _, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pg.Close()

		svc, err := newLinkService(pg, events.Nop{})
		if err != nil {
			return err
		}

		list, err := svc.ListLinks(ctx, linksListLimit)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No links")
			return nil
		}

		now := svc.Now()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "CODE\tSTATUS\tCREATED\tEXPIRES\tURL")
		for _, l := range list {
			expires := "-"
			if l.ExpiresAt != nil {
				expires = l.ExpiresAt.Format(time.RFC3339)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				l.Code, l.StatusAt(now), l.CreatedAt.Format(time.RFC3339), expires, l.URL)
		}
		return tw.Flush()
	},
}

var linksRevokeCmd = &cobra.Command{
	Use:   "revoke <code>",
	Short: "Revoke a short link so it answers 410",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		pg, _, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pg.Close()

		pub, closePub, err := openPublisher(cmd)
		if err != nil {
			return err
		}
		defer closePub()

		svc, err := newLinkService(pg, pub)
		if err != nil {
			return err
		}

		link, err := svc.RevokeLink(ctx, args[0])
		switch {
		case errors.Is(err, links.ErrNotFound):
			return fmt.Errorf("link %q not found", args[0])
		case errors.Is(err, links.ErrAlreadyRevoked):
			return fmt.Errorf("link %q is already revoked", args[0])
		case err != nil:
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Revoked %s -> %s\n", link.Code, link.URL)
		return nil
	},
}

func newLinkService(pg *db.Postgres, pub events.Publisher) (*links.Service, error) {
	repo, err := postgres.NewLinksRepository(pg)
	if err != nil {
		return nil, err
	}
	return links.NewService(repo, links.NewCryptoGenerator(), urlcheck.NewValidator(nil, 0), pub, links.Options{}), nil
}

func init() {
	linksListCmd.Flags().IntVar(&linksListLimit, "limit", 50, "maximum number of links to show")
	linksCmd.AddCommand(linksListCmd, linksRevokeCmd)
	rootCmd.AddCommand(linksCmd)
}
