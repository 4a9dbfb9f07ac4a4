package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/blog"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts through the API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newAPIClient()
		if err != nil {
			return err
		}

		posts, err := c.ListPosts(cmd.Context())
		if err != nil {
			return err
		}

		return printPosts(cmd.OutOrStdout(), posts, time.Now())
	},
}

var (
	updateTitle     string
	updateContent   string
	updateFirstName string
	updateLastName  string
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a post through the API",
	Long: `Update a post. Only the fields given as flags are changed.
The author is replaced as a whole, so --first-name and --last-name must be given together.

Example:
  blogctl update 65f1c2a9e4b0a1b2c3d4e5f6 --title "My new title is right here" --first-name Callie --last-name Walsh`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		update, err := updateFromFlags(cmd)
		if err != nil {
			return err
		}

		c, err := newAPIClient()
		if err != nil {
			return err
		}

		post, err := c.UpdatePost(cmd.Context(), args[0], update)
		if err != nil {
			return err
		}

		return printPosts(cmd.OutOrStdout(), []blog.PostResponse{post}, time.Now())
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&updateContent, "content", "", "new content")
	updateCmd.Flags().StringVar(&updateFirstName, "first-name", "", "new author first name")
	updateCmd.Flags().StringVar(&updateLastName, "last-name", "", "new author last name")
	updateCmd.MarkFlagsRequiredTogether("first-name", "last-name")
}

// updateFromFlags builds an update from the flags that were set on the command line
func updateFromFlags(cmd *cobra.Command) (blog.PostUpdate, error) {
	var u blog.PostUpdate
	flags := cmd.Flags()

	if flags.Changed("title") {
		u.Title = &updateTitle
	}
	if flags.Changed("content") {
		u.Content = &updateContent
	}
	if flags.Changed("first-name") || flags.Changed("last-name") {
		u.Author = &blog.Author{FirstName: updateFirstName, LastName: updateLastName}
	}

	if u.IsEmpty() {
		return u, errors.New("nothing to update: set at least one of --title, --content, --first-name/--last-name")
	}
	return u, nil
}

func printPosts(w io.Writer, posts []blog.PostResponse, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tAUTHOR\tTITLE\tCREATED")
	for _, p := range posts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Author, p.Title, humanize.RelTime(p.Created, now, "ago", "from now"))
	}
	return tw.Flush()
}
