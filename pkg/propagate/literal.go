package propagate

import (
	"strconv"
	"strings"
)

// unsizedWidth is the width of based literals without an explicit size.
const unsizedWidth = 32

// ParseInteger evaluates an integer literal such as 42, 1_000, 4'hF, 'd10 or
// 8'sb1010_1010. Literals with x, z or ? digits, unbased literals ('1) and
// reals are not integers.
func ParseInteger(text string) (int64, bool) {
	text = strings.ReplaceAll(text, "_", "")
	tick := strings.IndexByte(text, '\'')
	if tick < 0 {
		v, err := strconv.ParseInt(text, 10, 64)
		return v, err == nil
	}

	width := unsizedWidth
	if size := text[:tick]; size != "" {
		w, err := strconv.Atoi(size)
		if err != nil || w <= 0 {
			return 0, false
		}
		width = w
	}
	rest := text[tick+1:]
	signed := false
	if rest != "" && (rest[0] == 's' || rest[0] == 'S') {
		signed = true
		rest = rest[1:]
	}
	if len(rest) < 2 {
		return 0, false
	}
	var base int
	switch rest[0] {
	case 'd', 'D':
		base = 10
	case 'h', 'H':
		base = 16
	case 'o', 'O':
		base = 8
	case 'b', 'B':
		base = 2
	default:
		return 0, false
	}
	u, err := strconv.ParseUint(rest[1:], base, 64)
	if err != nil {
		return 0, false
	}
	if width < 64 {
		u &= 1<<width - 1
		if signed && u&(1<<(width-1)) != 0 {
			return int64(u) - 1<<width, true
		}
	}
	return int64(u), true
}
