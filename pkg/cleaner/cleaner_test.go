package cleaner

import (
	"errors"
	"strings"
	"testing"
)

// --- NoopCleaner Tests ---

func TestNoopCleaner_Clean(t *testing.T) {
	c := NewNoop()

	tests := []struct {
		name  string
		input string
	}{
		{"empty_string", ""},
		{"plain_text", "Hello, World!"},
		{"disfluent_text", "um, so like, you know"},
		{"whitespace", "  \n\t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Clean(tt.input)
			if err != nil {
				t.Errorf("Clean() error = %v, want nil", err)
			}
			if got != tt.input {
				t.Errorf("Clean() = %q, want %q", got, tt.input)
			}
		})
	}
}

func TestNoopCleaner_Name(t *testing.T) {
	c := NewNoop()
	if got := c.Name(); got != "noop" {
		t.Errorf("Name() = %q, want %q", got, "noop")
	}
}

// --- Func Tests ---

func TestFunc_AdaptsFunction(t *testing.T) {
	f := Func{
		CleanFunc: func(text string) (string, error) {
			return strings.ToUpper(text), nil
		},
		FuncName: "upper",
	}

	got, err := f.Clean("hello")
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if got != "HELLO" {
		t.Errorf("Clean() = %q, want %q", got, "HELLO")
	}
	if f.Name() != "upper" {
		t.Errorf("Name() = %q, want %q", f.Name(), "upper")
	}
}

func TestFunc_DefaultName(t *testing.T) {
	f := Func{CleanFunc: func(text string) (string, error) { return text, nil }}
	if f.Name() != "func" {
		t.Errorf("Name() = %q, want %q", f.Name(), "func")
	}
}

// --- ChainCleaner Tests ---

func TestChainCleaner_AppliesInOrder(t *testing.T) {
	first := Func{
		CleanFunc: func(text string) (string, error) { return text + "-a", nil },
		FuncName:  "a",
	}
	second := Func{
		CleanFunc: func(text string) (string, error) { return text + "-b", nil },
		FuncName:  "b",
	}

	chain := NewChain(first, second)
	got, err := chain.Clean("x")
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if got != "x-a-b" {
		t.Errorf("Clean() = %q, want %q", got, "x-a-b")
	}
}

func TestChainCleaner_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	failing := Func{
		CleanFunc: func(text string) (string, error) { return "", boom },
		FuncName:  "failing",
	}
	after := Func{
		CleanFunc: func(text string) (string, error) {
			t.Error("cleaner after a failure should not run")
			return text, nil
		},
		FuncName: "after",
	}

	chain := NewChain(failing, after)
	if _, err := chain.Clean("x"); !errors.Is(err, boom) {
		t.Errorf("Clean() error = %v, want %v", err, boom)
	}
}

func TestChainCleaner_Name(t *testing.T) {
	chain := NewChain(NewNoop(), NewNoop())
	if got := chain.Name(); got != "chain(noop->noop)" {
		t.Errorf("Name() = %q, want %q", got, "chain(noop->noop)")
	}
}

func TestChainCleaner_Empty(t *testing.T) {
	chain := NewChain()
	got, err := chain.Clean("unchanged")
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if got != "unchanged" {
		t.Errorf("Clean() = %q, want %q", got, "unchanged")
	}
}
