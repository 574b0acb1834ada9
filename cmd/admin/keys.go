package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/AndrewN04/url-shortner/internal/events"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/db"
	"github.com/AndrewN04/url-shortner/internal/processing/credentials"
	"github.com/AndrewN04/url-shortner/internal/storage/postgres"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage API keys",
}

var keysCreateCmd = &cobra.Command{
	Use:   "create [note]",
	Short: "Create an API key and print its secret once",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		pg, pepper, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pg.Close()

		svc, err := newCredentialService(pg, pepper, events.Nop{})
		if err != nil {
			return err
		}

		note := strings.Join(args, " ")
		issued, err := svc.Create(ctx, note)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Key ID:  %s\n", issued.Credential.ID)
		fmt.Fprintf(out, "Secret:  %s\n", issued.Secret)
		fmt.Fprintln(out, "Store the secret now. It cannot be shown again.")
		return nil
	},
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active API keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		pg, pepper, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pg.Close()

		svc, err := newCredentialService(pg, pepper, events.Nop{})
		if err != nil {
			return err
		}

		keys, err := svc.ListActive(ctx)
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No active keys")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCREATED\tNOTE")
		for _, k := range keys {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", k.ID, k.CreatedAt.Format(time.RFC3339), k.Note)
		}
		return tw.Flush()
	},
}

var keysRevokeCmd = &cobra.Command{
	Use:   "revoke <key_id>",
	Short: "Revoke an API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(strings.TrimSpace(args[0]))
		if err != nil {
			return fmt.Errorf("invalid key id %q", args[0])
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		pg, pepper, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pg.Close()

		pub, closePub, err := openPublisher(cmd)
		if err != nil {
			return err
		}
		defer closePub()

		svc, err := newCredentialService(pg, pepper, pub)
		if err != nil {
			return err
		}

		cred, err := svc.Revoke(ctx, id.String())
		switch {
		case errors.Is(err, credentials.ErrNotFound):
			return fmt.Errorf("key %s not found", id)
		case errors.Is(err, credentials.ErrAlreadyRevoked):
			return fmt.Errorf("key %s is already revoked", id)
		case err != nil:
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Revoked key %s\n", cred.ID)
		return nil
	},
}

// newCredentialService needs the pepper even for list and revoke because the
// service always carries a hasher.
func newCredentialService(pg *db.Postgres, pepper string, pub events.Publisher) (*credentials.Service, error) {
	repo, err := postgres.NewCredentialsRepository(pg)
	if err != nil {
		return nil, err
	}
	hasher, err := credentials.NewHasher(pepper)
	if err != nil {
		return nil, fmt.Errorf("API_KEY_PEPPER: %w", err)
	}
	return credentials.NewService(repo, hasher, pub), nil
}

func init() {
	keysCmd.AddCommand(keysCreateCmd, keysListCmd, keysRevokeCmd)
	rootCmd.AddCommand(keysCmd)
}
