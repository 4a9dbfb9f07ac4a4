package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/blog"
)

func newUpdateCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	updateTitle, updateContent, updateFirstName, updateLastName = "", "", "", ""
	cmd := &cobra.Command{Use: "update"}
	cmd.Flags().StringVar(&updateTitle, "title", "", "")
	cmd.Flags().StringVar(&updateContent, "content", "", "")
	cmd.Flags().StringVar(&updateFirstName, "first-name", "", "")
	cmd.Flags().StringVar(&updateLastName, "last-name", "", "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestUpdateFromFlags(t *testing.T) {
	u, err := updateFromFlags(newUpdateCmd(t, "--title", "My new title is right here", "--first-name", "Callie", "--last-name", "Walsh"))
	require.NoError(t, err)

	require.NotNil(t, u.Title)
	assert.Equal(t, "My new title is right here", *u.Title)
	assert.Equal(t, &blog.Author{FirstName: "Callie", LastName: "Walsh"}, u.Author)
	assert.Nil(t, u.Content)
	assert.Nil(t, u.ID)
}

func TestUpdateFromFlagsOnlyUsesChangedFlags(t *testing.T) {
	u, err := updateFromFlags(newUpdateCmd(t, "--content", ""))
	require.NoError(t, err)

	// an explicitly empty value is sent so the API can reject it
	require.NotNil(t, u.Content)
	assert.Empty(t, *u.Content)
	assert.Nil(t, u.Title)
}

func TestUpdateFromFlagsRequiresAField(t *testing.T) {
	_, err := updateFromFlags(newUpdateCmd(t))
	assert.ErrorContains(t, err, "nothing to update")
}

func TestPrintPosts(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	var out bytes.Buffer
	require.NoError(t, printPosts(&out, []blog.PostResponse{
		{ID: "p1", Author: "Callie Walsh", Title: "My new title is right here", Created: now.Add(-3 * time.Hour)},
	}, now))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "Callie Walsh")
	assert.Contains(t, lines[1], "3 hours ago")
}
