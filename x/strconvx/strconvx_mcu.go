//go:build rp2040

package strconvx

const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

func Itoa(i int) string {
	if i < 0 {
		return "-" + FormatUint(uint64(-int64(i)), 10)
	}
	return FormatUint(uint64(i), 10)
}

func FormatUint(u uint64, base int) string {
	if base < 2 || base > 36 {
		base = 10
	}
	var buf [64]byte
	i := len(buf)
	for {
		i--
		buf[i] = digits[u%uint64(base)]
		u /= uint64(base)
		if u == 0 {
			return string(buf[i:])
		}
	}
}

// ParseUint32 parses a base-10 uint32.
func ParseUint32(s string) (uint32, error) {
	if s == "" {
		return 0, ErrSyntax
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, ErrSyntax
		}
		v = v*10 + uint64(c-'0')
		if v > 1<<32-1 {
			return 0, ErrSyntax
		}
	}
	return uint32(v), nil
}
