// Package launcher supervises a single invocation of the Daleth language
// server binary: it spawns the executable, relays its stdout/stderr line by
// line, and forwards interrupt/termination requests to the child.
//
// Termination is cooperative and best effort. On unix the cancel path signals
// the child's process group with SIGTERM and escalates to SIGKILL after a
// grace period. On other platforms only the direct child is signalled, so
// grandchildren may outlive a cancelled run and must be cleaned up by the
// caller. A launcher constructed with the no-op canceller degrades further:
// cancellation requests are recorded but never reach the child.
package launcher
