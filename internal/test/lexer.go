package test

import (
	"fmt"
	"math/rand"
	"strings"
)

const validTokens = "defun;return;if;else;lambda;true;false;x;counter_2;_tmp;0;7;123456;+;-;++;--;*;/;%;=;==;!=;!;>;<;>=;<=;&&;||;,;:;(;);{;};# a comment\n;\n"

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// GetRandomProgram returns size function declarations, each followed by a
// call, that parse and evaluate without error.
func GetRandomProgram(size int) string {
	var b strings.Builder
	for i := 0; i < size; i++ {
		a, c := rand.Intn(100), rand.Intn(100)+1

		fmt.Fprintf(&b, "defun f%d(a, b) {\n", i)
		fmt.Fprintf(&b, "\tif (a > b) { return a / b } else { return a * b + %d }\n", i)
		fmt.Fprintf(&b, "}\n")
		fmt.Fprintf(&b, "f%d(%d, %d)\n", i, a, c)
	}

	return b.String()
}
