//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/contract"
)

// TestContractChecks runs the blogctl contract checks against the in-process server
func TestContractChecks(t *testing.T) {
	env := startInProcessServer(t)
	t.Cleanup(env.shutdown)

	fixture := &contract.StoreFixture{Store: env.store, Logger: env.logger}
	results := contract.Run(context.Background(), env.client, fixture, nil, nil)

	for _, c := range results.Checks {
		t.Logf("%s skipped=%v", c.CheckID, c.Skipped)
	}
	for _, f := range results.Failures {
		for _, err := range f.Errors {
			t.Errorf("%s: %v", f.CheckID, err)
		}
	}

	count, err := env.store.CountPosts(context.Background())
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("store not empty after the contract run: %d posts", count)
	}
}
