package stressgen

import (
	"fmt"
	"strings"
)

// CheckBalanced reports whether s is a properly nested sequence of () and []
// pairs. Any other byte is rejected. Siblings at the top level are allowed.
func CheckBalanced(s string) error {
	_, err := bracketRoots(s)
	return err
}

// CheckBracketDocument is CheckBalanced for a whole file: s must also be a
// single outermost pair, closed only at its last byte.
func CheckBracketDocument(s string) error {
	roots, err := bracketRoots(s)
	if err != nil {
		return err
	}
	if roots != 1 {
		return fmt.Errorf("%w: found %d top-level bracket pairs", ErrNotSingleRoot, roots)
	}
	return nil
}

// bracketRoots checks nesting and counts the top-level pairs
func bracketRoots(s string) (int, error) {
	var (
		open  []byte
		roots int
	)

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '(', '[':
			if len(open) == 0 {
				roots++
			}
			open = append(open, c)
		case ')', ']':
			want := byte('(')
			if c == ']' {
				want = '['
			}
			if len(open) == 0 {
				return 0, fmt.Errorf("%w: unexpected %q at offset %d", ErrUnbalanced, c, i)
			}
			if top := open[len(open)-1]; top != want {
				return 0, fmt.Errorf("%w: %q at offset %d closes %q", ErrUnbalanced, c, i, top)
			}
			open = open[:len(open)-1]
		default:
			return 0, fmt.Errorf("%w: invalid byte %q at offset %d", ErrUnbalanced, c, i)
		}
	}

	if len(open) > 0 {
		return 0, fmt.Errorf("%w: %d unclosed brackets", ErrUnbalanced, len(open))
	}
	return roots, nil
}

// MaxNesting returns the deepest bracket nesting level in s.
func MaxNesting(s string) int {
	depth, deepest := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
			deepest = max(deepest, depth)
		case ')', ']':
			depth--
		}
	}
	return deepest
}

// CheckTags reports whether s is a sequence of <name> and </name> markers
// with letter-only names, properly nested, and no text between markers.
// Siblings at the top level are allowed.
func CheckTags(s string) error {
	_, err := tagRoots(s)
	return err
}

// CheckTagDocument is CheckTags for a whole file: s must also be exactly one
// root element.
func CheckTagDocument(s string) error {
	roots, err := tagRoots(s)
	if err != nil {
		return err
	}
	if roots != 1 {
		return fmt.Errorf("%w: found %d top-level elements", ErrNotSingleRoot, roots)
	}
	return nil
}

// tagRoots checks nesting and counts the top-level elements
func tagRoots(s string) (int, error) {
	var (
		open  []string
		roots int
	)

	for i := 0; i < len(s); {
		if s[i] != '<' {
			return 0, fmt.Errorf("%w: text outside a tag at offset %d", ErrMalformedTags, i)
		}
		end := strings.IndexByte(s[i:], '>')
		if end < 0 {
			return 0, fmt.Errorf("%w: unterminated tag at offset %d", ErrMalformedTags, i)
		}

		body := s[i+1 : i+end]
		closing := strings.HasPrefix(body, "/")
		name := strings.TrimPrefix(body, "/")
		if !isTagName(name) {
			return 0, fmt.Errorf("%w: invalid tag name %q at offset %d", ErrMalformedTags, name, i)
		}

		if closing {
			if len(open) == 0 {
				return 0, fmt.Errorf("%w: </%s> at offset %d has no opening tag", ErrMalformedTags, name, i)
			}
			if top := open[len(open)-1]; top != name {
				return 0, fmt.Errorf("%w: </%s> at offset %d closes <%s>", ErrMalformedTags, name, i, top)
			}
			open = open[:len(open)-1]
		} else {
			if len(open) == 0 {
				roots++
			}
			open = append(open, name)
		}

		i += end + 1
	}

	if len(open) > 0 {
		return 0, fmt.Errorf("%w: <%s> is never closed", ErrMalformedTags, open[len(open)-1])
	}
	return roots, nil
}

func isTagName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !strings.ContainsRune(tagAlphabet, rune(name[i])) {
			return false
		}
	}
	return true
}
