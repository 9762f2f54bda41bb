package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestDecimalRetriesUntilInRange(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("abc\n0\n-1\n5\n2\n"), &out)
	n, err := p.decimal("> ", 1, 3, false)
	if err != nil {
		t.Fatalf("decimal: %v", err)
	}
	if n == nil || *n != 2 {
		t.Fatalf("want 2, got %v", n)
	}
	if got := strings.Count(out.String(), "> "); got != 5 {
		t.Fatalf("want 5 prompts, got %d", got)
	}
}

func TestDecimalBlank(t *testing.T) {
	p := newPrompter(strings.NewReader("\n"), &bytes.Buffer{})
	n, err := p.decimal("> ", 0, unbounded, true)
	if err != nil || n != nil {
		t.Fatalf("want nil, nil; got %v, %v", n, err)
	}
}

func TestDecimalEOF(t *testing.T) {
	p := newPrompter(strings.NewReader("x\n"), &bytes.Buffer{})
	if _, err := p.decimal("> ", 1, 2, false); err == nil {
		t.Fatal("expected error at end of input")
	}
}

func TestChoose(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("2\n"), &out)
	n, err := p.choose("Куда поступать:", []string{"A", "B"}, "> ")
	if err != nil || n != 2 {
		t.Fatalf("want 2, got %d (%v)", n, err)
	}
	if !strings.Contains(out.String(), "\t2. B\n") {
		t.Fatalf("menu not printed: %q", out.String())
	}
}
