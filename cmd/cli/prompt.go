package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
)

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// decimal asks until the answer is a decimal number within [min, max]. With
// allowBlank an empty answer returns nil.
func (p *prompter) decimal(prompt string, min, max int, allowBlank bool) (*int, error) {
	for {
		fmt.Fprint(p.out, prompt)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return nil, err
			}
			return nil, io.ErrUnexpectedEOF
		}
		value := strings.TrimSpace(p.in.Text())
		if value == "" && allowBlank {
			return nil, nil
		}
		if !isDecimal(value) {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		if min <= n && n <= max {
			return &n, nil
		}
	}
}

// choose prints a numbered menu and returns the 1-based choice.
func (p *prompter) choose(title string, items []string, prompt string) (int, error) {
	fmt.Fprintln(p.out, title)
	for i, item := range items {
		fmt.Fprintf(p.out, "\t%d. %s\n", i+1, item)
	}
	fmt.Fprintln(p.out)
	n, err := p.decimal(prompt, 1, len(items), false)
	if err != nil {
		return 0, err
	}
	fmt.Fprintln(p.out)
	return *n, nil
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

const unbounded = math.MaxInt
