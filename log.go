package ks13

import "go.uber.org/zap"

// Tracing belongs to an external observer injected by the caller, not to
// printf calls threaded through the key-schedule logic (the mistake the
// design notes call out in the source this package is derived from).
// KeySchedule and Finished accept one via WithLogger/WithFinishedLogger;
// a nil logger is replaced with a no-op so call sites never need to check.
//
// Logged fields are metadata only — hash algorithm, stage name, traffic
// secret label, byte lengths — never a key, IV, secret, or transcript
// digest.

func nopIfNil(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
