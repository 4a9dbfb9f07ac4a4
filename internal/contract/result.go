package contract

import "fmt"

type Results struct {
	Checks   []CheckResult
	Failures []CheckResult
}

type CheckResult struct {
	CheckID CheckID
	Errors  []error
	Skipped bool

	failed bool
}

func (r *Results) add(result CheckResult) {
	r.Checks = append(r.Checks, result)
	if result.failed {
		r.Failures = append(r.Failures, result)
	}
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Counts returns the number of checks that passed, failed and were skipped
func (r Results) Counts() (passed, failed, skipped int) {
	for _, c := range r.Checks {
		switch {
		case c.Skipped:
			skipped++
		case c.failed:
			failed++
		default:
			passed++
		}
	}
	return passed, failed, skipped
}

type CheckID struct {
	Name string
}

func (c CheckID) String() string {
	return c.Name
}

type CheckFailure struct {
	ID  CheckID
	Err error
}

func (f CheckFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// Err joins the failures into one error, or returns nil when every check passed
func (r Results) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("%d of %d checks failed, first: %w", len(r.Failures), len(r.Checks), CheckFailure{
		ID:  r.Failures[0].CheckID,
		Err: firstError(r.Failures[0].Errors),
	})
}

func firstError(errs []error) error {
	if len(errs) == 0 {
		return fmt.Errorf("no failure message")
	}
	return errs[0]
}
