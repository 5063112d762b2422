package markdown

import "strings"

// maxWrapDepth bounds how many times a single line is split.
const maxWrapDepth = 10

// wrapCodeLine breaks a code line longer than width into several lines.
// Breaks prefer the last space before width, then the last '(' before width.
// Continuation lines keep the original indentation plus two spaces; comment
// lines continue the comment and diff lines keep their +/- marker.
func wrapCodeLine(line string, width int) string {
	if len([]rune(line)) <= width {
		return line
	}

	prefix := continuationPrefix(line)
	var out []string
	rest := line
	for depth := 0; len([]rune(rest)) > width && depth < maxWrapDepth; depth++ {
		runes := []rune(rest)
		cut := breakPoint(runes, width, len(leadingSpace(rest)))
		out = append(out, strings.TrimRight(string(runes[:cut]), " "))
		rest = prefix + strings.TrimLeft(string(runes[cut:]), " ")
	}
	out = append(out, rest)
	return strings.Join(out, "\n")
}

// breakPoint returns the rune index at which to split runes. The index is
// always past the indentation so that every split makes progress.
func breakPoint(runes []rune, width, indent int) int {
	for i := width; i > indent; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	for i := width - 1; i > indent; i-- {
		if runes[i] == '(' {
			return i
		}
	}
	return width
}

func continuationPrefix(line string) string {
	indent := leadingSpace(line)
	trimmed := strings.TrimLeft(line, " \t")
	switch {
	case strings.HasPrefix(trimmed, "+"), strings.HasPrefix(trimmed, "-"):
		return trimmed[:1] + indent + "  "
	case strings.HasPrefix(trimmed, "//"):
		return indent + "// "
	default:
		return indent + "  "
	}
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}
