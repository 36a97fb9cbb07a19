// Package resttests contains the REST contract tests themselves and their supporting API.
//
// Test harness infrastructure that is not specific to REST resources, such as the test runner
// and its loggers, is in the lower-level framework package. The requests and checks for each
// operation are in the resttest package.
package resttests
