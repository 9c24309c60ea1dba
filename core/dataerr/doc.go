// Package dataerr defines the "user data error" returned when an input file
// supplied by a user or a community author is malformed.
//
// # Error Tiers
//
// Resolution distinguishes two tiers of problems:
//   - Fatal: a malformed binary table, a bad file signature, broken CSV quoting
//     or a missing installation version. These are returned as *UserError and
//     abort the operation that hit them.
//   - Recoverable: everything that only affects one file, property or vehicle.
//     These never surface as errors; they are appended to a warn.List instead.
//
// Internal and programming errors are ordinary wrapped errors and are never
// reported as *UserError, so callers can tell "fix your data" from "bug".
//
// # Usage
//
//	if err := parse(); err != nil {
//	    if ue, ok := dataerr.As(err); ok {
//	        log.Warn("bad data file", zap.Int("line", ue.Line), zap.String("reason", ue.Msg))
//	    }
//	}
package dataerr
