package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/config"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/contract"
)

var (
	contractChecks         contract.CheckSelector
	contractUseDatabaseURL bool
)

var contractCmd = &cobra.Command{
	Use:   "contract",
	Short: "Run the API contract checks against a running service",
	Long: `Run the contract checks against the service at --url.

TEST_DATABASE_URL must name the store the service uses: each check seeds it before
calling the API and wipes it afterwards (for MongoDB the whole database is dropped).
To run against DATABASE_URL instead, pass --use-database-url. Do not run this
against production data.

Example:
  blogctl contract --url http://localhost:8080 --run '^update/' --skip scenario`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		if err := c.Health(cmd.Context()); err != nil {
			return fmt.Errorf("service at %s is not responding: %w", c.BaseURL(), err)
		}

		databaseURL, err := contractStoreURL(cfg, contractUseDatabaseURL)
		if err != nil {
			return err
		}
		s, err := openStoreURL(cmd.Context(), databaseURL)
		if err != nil {
			return err
		}
		defer closeStore(s)

		out := cmd.OutOrStdout()
		if d := contractChecks.Describe(); d != "" {
			fmt.Fprintf(out, "Some checks will be skipped based on the filter criteria for this run:\n%s\n\n", d)
		}

		fixture := &contract.StoreFixture{
			Store:  s,
			Logger: appLogger.With(slog.String("component", "fixture")),
		}
		results := contract.Run(cmd.Context(), c, fixture, contractChecks.Selects, &contract.ConsoleLogger{Out: out})
		contract.PrintResults(out, results)

		return results.Err()
	},
}

// contractStoreURL picks the store the checks seed and wipe. TEST_DATABASE_URL wins;
// DATABASE_URL is only used when the caller opts in.
func contractStoreURL(c *config.ClientEnvironment, useDatabaseURL bool) (string, error) {
	switch {
	case c.TestDatabaseURL != "":
		return c.TestDatabaseURL, nil
	case !useDatabaseURL:
		return "", errors.New("TEST_DATABASE_URL is not set (pass --use-database-url to seed and wipe DATABASE_URL instead)")
	case c.DatabaseURL == "":
		return "", errors.New("--use-database-url was given but DATABASE_URL is not set")
	default:
		return c.DatabaseURL, nil
	}
}

func init() {
	contractCmd.Flags().Var(&contractChecks.Include, "run", "only run checks matching this regex (repeatable)")
	contractCmd.Flags().Var(&contractChecks.Exclude, "skip", "skip checks matching this regex (repeatable)")
	contractCmd.Flags().BoolVar(&contractUseDatabaseURL, "use-database-url", false, "seed and wipe DATABASE_URL when TEST_DATABASE_URL is not set")
}
