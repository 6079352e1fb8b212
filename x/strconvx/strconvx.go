// Package strconvx is the subset of strconv the console needs. Host builds
// delegate to strconv; rp2040 builds use a small local parser so the
// firmware does not pull in float formatting.
package strconvx

import "blinkcode-go/errcode"

// ErrSyntax is returned for empty, non-numeric or out-of-range input.
const ErrSyntax = errcode.InvalidParams
