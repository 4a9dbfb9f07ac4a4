// Package contract checks a running blog API against the store behind it.
//
// Every check starts from freshly seeded data and the store is wiped when the check
// returns, so checks are independent of each other and of their order. Checks use
// testify assertions on a *T, which records failures instead of stopping the run.
//
// The same checks back `blogctl contract` (against a deployed service) and the
// integration tests (against an in-process server).
package contract
