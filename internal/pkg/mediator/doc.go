// Package mediator routes request values to exactly one handler through a
// static registry and runs the validators registered for the request type
// before the handler is invoked.
//
// The registry is assembled once at startup with a Builder and is read-only
// after Build. Validators for one request run concurrently and are joined;
// every failure they report is aggregated into a single ValidationError and
// the handler is skipped. When no validator reports a failure the handler runs
// exactly once and its result is returned unchanged.
package mediator
