/*
Package observability turns engine lifecycle events into Prometheus metrics and
structured log lines.

Both are exposed as domain.LifecycleHooks, so they plug into the engine through
tracetm.WithLifecycleHooks and can be combined with Chain.
*/
package observability
