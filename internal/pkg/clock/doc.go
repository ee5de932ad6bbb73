// Package clock is a small time abstraction.
//
// Code should depend on the Clocker interface instead of calling time.Now()
// directly, so token expiry and timestamp logic can be pinned in tests.
package clock
