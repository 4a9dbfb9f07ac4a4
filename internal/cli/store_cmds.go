package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/seed"
)

var seedCount int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert generated posts into the store",
	Long: `Insert generated posts (random author, lorem ipsum title and content, a created
date within the last year) directly into the store at DATABASE_URL.

Example:
  blogctl seed --count 25`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore(s)

		posts, err := seed.Seed(cmd.Context(), s, seedCount, seed.WithLogger(appLogger))
		if err != nil {
			return err
		}

		for _, p := range posts {
			fmt.Fprintln(cmd.OutOrStdout(), p.ID)
		}
		return nil
	},
}

var wipeYes bool

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all data from the store",
	Long: `Delete all data from the store at DATABASE_URL. For MongoDB the whole database is dropped.

Example:
  blogctl wipe --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !wipeYes {
			return fmt.Errorf("refusing to wipe the store without --yes")
		}

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore(s)

		return seed.Teardown(cmd.Context(), s, seed.WithLogger(appLogger))
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", seed.DefaultCount, "number of posts to insert")
	wipeCmd.Flags().BoolVar(&wipeYes, "yes", false, "confirm that all data should be deleted")
}
