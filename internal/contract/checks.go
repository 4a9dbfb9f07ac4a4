package contract

import (
	"net/http"
	"slices"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/blog"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/client"
)

// Check is one named behaviour of the API, run against freshly seeded data
type Check struct {
	Name string
	Run  func(t *T)
}

// Checks returns every check in the order they run
func Checks() []Check {
	return []Check{
		{"list/cardinality", checkListCardinality},
		{"list/fields", checkListFields},
		{"list/matches-store", checkListMatchesStore},
		{"get/round-trip", checkGetRoundTrip},
		{"update/partial", checkUpdatePartial},
		{"update/scenario", checkUpdateScenario},
		{"update/not-found", checkUpdateNotFound},
		{"update/validation", checkUpdateValidation},
		{"create/round-trip", checkCreateRoundTrip},
		{"create/validation", checkCreateValidation},
		{"isolation", checkIsolation},
	}
}

// the list returns exactly as many posts as the store holds
func checkListCardinality(t *T) {
	posts, err := t.Client.ListPosts(t.Ctx)
	require.NoError(t, err)

	count, err := t.Fixture.Count(t.Ctx)
	require.NoError(t, err)

	assert.Equal(t, int(count), len(posts))
	assert.Len(t, posts, len(t.Seeded))
}

// every listed post carries the serialized keys and no others
func checkListFields(t *T) {
	objects, err := t.Client.ListPostObjects(t.Ctx)
	require.NoError(t, err)
	require.NotEmpty(t, objects)

	for _, obj := range objects {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		assert.ElementsMatch(t, blog.ResponseKeys, keys)
	}
}

// each listed post matches the stored record, with the author rendered as "first last"
func checkListMatchesStore(t *T) {
	posts, err := t.Client.ListPosts(t.Ctx)
	require.NoError(t, err)
	require.NotEmpty(t, posts)

	for _, p := range posts {
		stored, err := t.Fixture.Get(t.Ctx, p.ID)
		require.NoError(t, err, "listed post %s is not in the store", p.ID)

		assert.Equal(t, stored.Author.FirstName+" "+stored.Author.LastName, p.Author)
		assert.Equal(t, stored.Title, p.Title)
		assert.Equal(t, stored.Content, p.Content)
		assert.True(t, stored.Created.Equal(p.Created), "created: stored %s, listed %s", stored.Created, p.Created)
	}

	assert.True(t, slices.IsSortedFunc(posts, func(a, b blog.PostResponse) int {
		return b.Created.Compare(a.Created)
	}), "posts are not newest first")
}

func checkGetRoundTrip(t *T) {
	want := t.Seeded[0]

	got, err := t.Client.GetPost(t.Ctx, want.ID)
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Author.DisplayName(), got.Author)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Content, got.Content)
	assert.True(t, want.Created.Equal(got.Created))
}

// fields left out of an update keep their stored values
func checkUpdatePartial(t *T) {
	original := t.Seeded[0]
	title := "A partially updated title"
	author := blog.Author{FirstName: "Partial", LastName: "Update"}

	_, err := t.Client.UpdatePost(t.Ctx, original.ID, blog.PostUpdate{
		Title:  &title,
		Author: &author,
	})
	require.NoError(t, err)

	stored, err := t.Fixture.Get(t.Ctx, original.ID)
	require.NoError(t, err)

	assert.Equal(t, title, stored.Title)
	assert.Equal(t, author, stored.Author)
	assert.Equal(t, original.Content, stored.Content)
	assert.True(t, original.Created.Equal(stored.Created))

	for _, other := range t.Seeded[1:] {
		got, err := t.Fixture.Get(t.Ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, other.Title, got.Title, "post %s changed", other.ID)
	}
}

// update the first listed post the way the blog front end does, then read it back from the store
func checkUpdateScenario(t *T) {
	posts, err := t.Client.ListPosts(t.Ctx)
	require.NoError(t, err)
	require.NotEmpty(t, posts)

	id := posts[0].ID
	title := "My new title is right here"
	author := blog.Author{FirstName: "Callie", LastName: "Walsh"}

	updated, err := t.Client.UpdatePost(t.Ctx, id, blog.PostUpdate{
		ID:     &id,
		Title:  &title,
		Author: &author,
	})
	require.NoError(t, err)
	assert.Equal(t, id, updated.ID)
	assert.Equal(t, "Callie Walsh", updated.Author)

	stored, err := t.Fixture.Get(t.Ctx, id)
	require.NoError(t, err)
	assert.Equal(t, title, stored.Title)
	assert.Equal(t, "Callie", stored.Author.FirstName)
	assert.Equal(t, "Walsh", stored.Author.LastName)
}

func checkUpdateNotFound(t *T) {
	id := t.Seeded[0].ID
	require.NoError(t, t.Client.DeletePost(t.Ctx, id))

	title := "never stored"
	_, err := t.Client.UpdatePost(t.Ctx, id, blog.PostUpdate{Title: &title})
	assert.True(t, client.IsNotFound(err), "expected 404, got %v", err)

	_, err = t.Client.UpdatePost(t.Ctx, "not-a-valid-id", blog.PostUpdate{Title: &title})
	assert.True(t, client.IsNotFound(err), "expected 404 for a malformed id, got %v", err)
}

func checkUpdateValidation(t *T) {
	original := t.Seeded[0]
	other := "some-other-id"
	empty := ""

	tests := map[string]blog.PostUpdate{
		"empty update": {},
		"id mismatch":  {ID: &other, Title: &original.Title},
		"empty title":  {Title: &empty},
	}
	for name, update := range tests {
		_, err := t.Client.UpdatePost(t.Ctx, original.ID, update)
		assert.Equal(t, http.StatusBadRequest, client.StatusCode(err), "%s: %v", name, err)
	}

	stored, err := t.Fixture.Get(t.Ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, original, stored)
}

func checkCreateRoundTrip(t *T) {
	newPost := blog.NewPost{
		Author:  blog.Author{FirstName: "New", LastName: "Author"},
		Title:   "Created by the contract checks",
		Content: "Some content",
	}

	created, err := t.Client.CreatePost(t.Ctx, newPost)
	require.NoError(t, err)
	assert.Equal(t, "New Author", created.Author)

	got, err := t.Client.GetPost(t.Ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.True(t, created.Created.Equal(got.Created))

	count, err := t.Fixture.Count(t.Ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(t.Seeded)+1), count)
}

func checkCreateValidation(t *T) {
	_, err := t.Client.CreatePost(t.Ctx, blog.NewPost{
		Author:  blog.Author{FirstName: "No", LastName: "Title"},
		Content: "content without a title",
	})
	assert.Equal(t, http.StatusBadRequest, client.StatusCode(err), "%v", err)

	count, err := t.Fixture.Count(t.Ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(t.Seeded)), count)
}

// data seeded after a teardown replaces the previous data entirely
func checkIsolation(t *T) {
	require.NoError(t, t.Fixture.Teardown(t.Ctx))

	reseeded, err := t.Fixture.Seed(t.Ctx)
	require.NoError(t, err)

	posts, err := t.Client.ListPosts(t.Ctx)
	require.NoError(t, err)
	assert.Len(t, posts, len(reseeded))

	previous := make(map[string]bool, len(t.Seeded))
	for _, p := range t.Seeded {
		previous[p.ID] = true
	}
	for _, p := range posts {
		assert.False(t, previous[p.ID], "post %s survived teardown", p.ID)
	}
}
