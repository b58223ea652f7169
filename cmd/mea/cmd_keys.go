package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kerjahub/mea-go/internal/config"
	"github.com/kerjahub/mea-go/internal/keystore"
)

var (
	keyName        string
	keyDescription string
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage API keys for the HTTP API",
}

var keysCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Issue a new API key (shown once)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		plaintext, rec, err := store.Issue(keyName, keyDescription)
		if err != nil {
			return fmt.Errorf("issue key: %w", err)
		}

		fmt.Printf("✅ API key created (id %s)\n\n", rec.ID)
		fmt.Printf("Your API Key: %s\n\n", plaintext)
		fmt.Println("⚠️  Save it now - only a hash is stored and it cannot be shown again.")
		return nil
	},
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issued API keys",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPREFIX\tREQUESTS\tLAST USED\tACTIVE")
		for _, rec := range store.List() {
			lastUsed := "never"
			if rec.LastUsed != nil {
				lastUsed = rec.LastUsed.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s…\t%d\t%s\t%t\n",
				rec.ID, rec.Name, rec.Prefix, rec.RequestCount, lastUsed, rec.Active)
		}
		return w.Flush()
	},
}

var keysRevokeCmd = &cobra.Command{
	Use:   "revoke <key-id>",
	Short: "Deactivate an API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		if err := store.Revoke(args[0]); err != nil {
			return fmt.Errorf("revoke key: %w", err)
		}
		fmt.Printf("🔒 Key %s revoked\n", args[0])
		return nil
	},
}

func init() {
	keysCreateCmd.Flags().StringVar(&keyName, "name", "", "display name for the key")
	keysCreateCmd.Flags().StringVar(&keyDescription, "description", "", "what the key is for")

	keysCmd.AddCommand(keysCreateCmd)
	keysCmd.AddCommand(keysListCmd)
	keysCmd.AddCommand(keysRevokeCmd)
}

func openStore() (*keystore.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	store, err := keystore.Open(cfg.KeystorePath)
	if err != nil {
		return nil, fmt.Errorf("open key store: %w", err)
	}
	return store, nil
}
