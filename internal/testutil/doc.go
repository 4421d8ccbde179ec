// Package testutil holds the shared harness for tests that run the whole
// application against plan files written to a temporary directory.
// Set ASPECTGO_TEST_LOGS=true to print the captured output of every run.
package testutil
