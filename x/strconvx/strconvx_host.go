//go:build !rp2040

package strconvx

import "strconv"

func Itoa(i int) string                    { return strconv.Itoa(i) }
func FormatUint(u uint64, base int) string { return strconv.FormatUint(u, base) }

// ParseUint32 parses a base-10 uint32.
func ParseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, ErrSyntax
	}
	return uint32(v), nil
}
