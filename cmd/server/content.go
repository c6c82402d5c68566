package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-combat/internal/repositories/content"
)

var seedDB string

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Manage reference data",
}

var contentSeedCmd = &cobra.Command{
	Use:   "seed <catalog.json>",
	Short: "Load a catalog into the content database",
	Long:  `Validate a JSON catalog and upsert its enemies, items, abilities and story nodes into the sqlite content database.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runContentSeed,
}

var contentValidateCmd = &cobra.Command{
	Use:   "validate <catalog.json>",
	Short: "Check a catalog without loading it",
	Args:  cobra.ExactArgs(1),
	RunE:  runContentValidate,
}

func init() {
	contentSeedCmd.Flags().StringVar(&seedDB, "content-db", envOr("CONTENT_DB", "content.db"), "sqlite database to seed")

	contentCmd.AddCommand(contentSeedCmd)
	contentCmd.AddCommand(contentValidateCmd)
}

func runContentSeed(cmd *cobra.Command, args []string) error {
	catalog, err := content.LoadCatalogFile(args[0])
	if err != nil {
		return err
	}

	db, err := content.OpenSQLite(seedDB)
	if err != nil {
		return err
	}

	result, err := content.Seed(cmd.Context(), db, catalog)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %s: %d enemies, %d items, %d abilities, %d nodes\n",
		seedDB, result.Enemies, result.Items, result.Abilities, result.Nodes)
	return nil
}

func runContentValidate(cmd *cobra.Command, args []string) error {
	catalog, err := content.LoadCatalogFile(args[0])
	if err != nil {
		return err
	}
	if err := catalog.Validate(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d enemies, %d items, %d abilities, %d nodes\n",
		args[0], len(catalog.Enemies), len(catalog.Items), len(catalog.Abilities), len(catalog.Nodes))
	return nil
}
