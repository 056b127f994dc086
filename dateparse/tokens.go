package dateparse

import (
	"regexp"
	"strconv"
)

var separators = regexp.MustCompile(`[\s/\-.,]+`)

func tokenize(s string) []string {
	parts := separators.Split(s, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// leadingInt reads the digits a token starts with, so "10th" gives 10.
func leadingInt(tok string) (int, bool) {
	end := 0
	for end < len(tok) && tok[end] >= '0' && tok[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(tok[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func leadingInts(tokens []string) ([]int, bool) {
	nums := make([]int, len(tokens))
	for i, tok := range tokens {
		n, ok := leadingInt(tok)
		if !ok {
			return nil, false
		}
		nums[i] = n
	}
	return nums, true
}
