package argv

import (
	"fmt"
	"strings"
)

// Split splits a command string back into its argument vector, honoring
// backslash escapes, single quotes and double quotes. It is the inverse
// of Command for anything Command emits.
func Split(cmdline string) ([]string, error) {
	var args []string
	var sb strings.Builder
	inToken := false
	rs := []rune(cmdline)
	for i := 0; i < len(rs); i++ {
		switch ch := rs[i]; ch {
		case ' ', '\t':
			if inToken {
				args = append(args, sb.String())
				sb.Reset()
				inToken = false
			}
		case '\\':
			if i+1 >= len(rs) {
				return nil, fmt.Errorf("unable to split %q: trailing backslash", cmdline)
			}
			i++
			sb.WriteRune(rs[i])
			inToken = true
		case '\'':
			inToken = true
			i++
			for ; i < len(rs) && rs[i] != '\''; i++ {
				sb.WriteRune(rs[i])
			}
			if i >= len(rs) {
				return nil, fmt.Errorf("unable to split %q: unterminated single quote", cmdline)
			}
		case '"':
			inToken = true
			i++
			for ; i < len(rs) && rs[i] != '"'; i++ {
				if rs[i] == '\\' && i+1 < len(rs) {
					switch rs[i+1] {
					case '"', '\\', '$', '`':
						i++
					}
				}
				sb.WriteRune(rs[i])
			}
			if i >= len(rs) {
				return nil, fmt.Errorf("unable to split %q: unterminated double quote", cmdline)
			}
		default:
			sb.WriteRune(ch)
			inToken = true
		}
	}
	if inToken {
		args = append(args, sb.String())
	}
	return args, nil
}
