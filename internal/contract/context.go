package contract

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/blog"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/client"
)

// T is passed to each check. It satisfies testify's require.TestingT, so checks use
// assert and require the same way a go test does; FailNow unwinds the check with a panic
// that the runner recovers.
type T struct {
	id     CheckID
	logger Logger
	failed bool
	errors []error

	// Ctx bounds every call the check makes
	Ctx    context.Context
	Client *client.Client

	// Fixture is the store behind the service under test
	Fixture Fixture

	// Seeded is the data seeded before the check started
	Seeded []blog.Post
}

func (t *T) ID() CheckID {
	return t.id
}

func (t *T) Errorf(format string, args ...any) {
	t.failed = true
	err := fmt.Errorf(format, args...)
	t.errors = append(t.errors, err)
	t.logger.CheckError(t.id, err)
}

func (t *T) FailNow() {
	panic(t)
}

// Helper is a no-op; it lets testify skip this frame like testing.T does
func (t *T) Helper() {}

// run executes action, converting a FailNow or an unexpected panic into a failure
func (t *T) run(action func(*T)) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		t.failed = true
		if _, ok := r.(*T); ok {
			if len(t.errors) == 0 {
				t.Errorf("check failed with no failure message")
			}
			return
		}
		err := fmt.Errorf("unexpected panic in check: %+v\n%s", r, string(debug.Stack()))
		t.errors = append(t.errors, err)
		t.logger.CheckError(t.id, err)
	}()

	action(t)
}

// Run executes every check accepted by filter against the service behind c.
//
// Each check runs against freshly seeded data and the fixture is torn down when
// the check ends, however it ends. A seed or teardown failure fails the check.
func Run(ctx context.Context, c *client.Client, fixture Fixture, filter Filter, logger Logger) Results {
	if logger == nil {
		logger = nullLogger{}
	}

	var results Results
	for _, check := range Checks() {
		id := CheckID{Name: check.Name}
		logger.CheckStarted(id)

		if filter != nil && !filter(id) {
			logger.CheckSkipped(id, "excluded by filter parameters")
			results.add(CheckResult{CheckID: id, Skipped: true})
			continue
		}

		t := &T{
			id:      id,
			logger:  logger,
			Ctx:     ctx,
			Client:  c,
			Fixture: fixture,
		}
		runCheck(t, check)

		logger.CheckFinished(id, t.failed)
		results.add(CheckResult{CheckID: id, Errors: t.errors, failed: t.failed})
	}
	return results
}

// runCheck tears the fixture down on every exit path, including a failed or partial seed
func runCheck(t *T, check Check) {
	defer func() {
		if err := t.Fixture.Teardown(t.Ctx); err != nil {
			t.Errorf("teardown failed: %v", err)
		}
	}()

	seeded, err := t.Fixture.Seed(t.Ctx)
	if err != nil {
		t.Errorf("seed failed: %v", err)
		return
	}
	t.Seeded = seeded

	t.run(check.Run)
}
