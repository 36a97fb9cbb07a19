// Package framework contains the low-level test harness infrastructure that the REST contract
// tests are built on, none of which is specific to REST resources.
//
// The general model is:
//
// 1. The service under test is an HTTP service that the harness waits for (AwaitService)
// before running anything.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. It implements require.TestingT.
//
// 3. Failure traces are reported against the code that made an assertion, not against the
// library code in between (see HideFramesIn and ScrubTrace).
//
// The domain-specific code that knows what is being tested provides a domain-specific test
// API on top of the test context.
package framework
