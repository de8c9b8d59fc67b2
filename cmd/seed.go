package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load foods and meals from a YAML file",
	Example: `  # Seed from the default file
  simpletrack seed

  # Seed from another file
  simpletrack seed -f data/foods.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		path := seedFile
		if path == "" {
			path = a.cfg.SeedFile
		}
		res, err := a.seeder.SeedFile(cmd.Context(), path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d foods and %d meals from %s\n",
			res.FoodsCreated, res.MealsCreated, path)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "seed file (defaults to SEED_FILE)")
}
