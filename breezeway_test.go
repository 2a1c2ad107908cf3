package breezeway

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yossideutsch/breezeway/internal/binpath"
	"github.com/yossideutsch/breezeway/internal/invoke"
)

// fakeClient builds a Client whose breeze is a shell script in a temp dir.
func fakeClient(t *testing.T, script string) *Client {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, binpath.Name())
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return &Client{Invoker: invoke.Invoker{Resolver: binpath.Resolver{InstallDir: dir}}}
}

func TestAI_Success(t *testing.T) {
	c := fakeClient(t, `echo "OK"`)
	out, err := c.AI(context.Background(), "hello")
	if err != nil {
		t.Fatalf("AI: %v", err)
	}
	if out != "OK" {
		t.Errorf("AI = %q, want %q", out, "OK")
	}
}

func TestAI_PromptIsSoleArgument(t *testing.T) {
	c := fakeClient(t, `echo "$#:$1"`)
	out, err := c.AI(context.Background(), "hello", WithModel("codellama"), WithTemp(0.2), WithConcise(), WithDocs("a.txt"))
	if err != nil {
		t.Fatalf("AI: %v", err)
	}
	// Options are accepted but never forwarded; the child sees one argument.
	if out != "1:hello" {
		t.Errorf("AI = %q, want %q", out, "1:hello")
	}
}

func TestAI_Failure(t *testing.T) {
	c := fakeClient(t, `echo "bad input" >&2; exit 1`)
	_, err := c.AI(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "bad input" {
		t.Errorf("error = %q, want %q", err, "bad input")
	}
	var be *Error
	if !errors.As(err, &be) {
		t.Errorf("error type = %T, want *breezeway.Error", err)
	}
}

func TestChat_UsesChatSubcommand(t *testing.T) {
	c := fakeClient(t, `echo "$@"`)
	out, err := c.Chat(context.Background(), "hello there")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if out != "chat hello there" {
		t.Errorf("Chat = %q, want %q", out, "chat hello there")
	}
}

func TestCode_UsesCodeSubcommand(t *testing.T) {
	c := fakeClient(t, `echo "$@"`)
	out, err := c.Code(context.Background(), "factorial")
	if err != nil {
		t.Fatalf("Code: %v", err)
	}
	if out != "code factorial" {
		t.Errorf("Code = %q, want %q", out, "code factorial")
	}
}

func TestClear_DiscardsOutput(t *testing.T) {
	c := fakeClient(t, `echo "history cleared"`)
	if err := c.Clear(context.Background()); err != nil {
		t.Fatalf("Clear: %v", err)
	}
}

func TestClear_PropagatesFailure(t *testing.T) {
	c := fakeClient(t, `echo "no history dir" >&2; exit 1`)
	err := c.Clear(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "no history dir" {
		t.Errorf("error = %q, want %q", err, "no history dir")
	}
}

func TestStream_CallbackNeverInvoked(t *testing.T) {
	c := fakeClient(t, `echo "full response"`)

	var calls int
	out, err := c.Stream(context.Background(), "hello", func(string) { calls++ })
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if calls != 0 {
		t.Errorf("callback invoked %d times, want 0", calls)
	}

	direct, err := c.AI(context.Background(), "hello")
	if err != nil {
		t.Fatalf("AI: %v", err)
	}
	if out != direct {
		t.Errorf("Stream = %q, AI = %q; want identical results", out, direct)
	}
}

func TestStream_NilCallback(t *testing.T) {
	c := fakeClient(t, `echo "ok"`)
	if _, err := c.Stream(context.Background(), "hello", nil); err != nil {
		t.Fatalf("Stream with nil callback: %v", err)
	}
}

func TestBatch_OrderPreserved(t *testing.T) {
	c := fakeClient(t, `echo "$1"`)
	got, err := c.Batch(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Batch = %v, want [a b]", got)
	}
}

func TestBatch_AbortsOnFirstFailure(t *testing.T) {
	// Fails only for prompt "b"; "c" must never run.
	c := fakeClient(t, `if [ "$1" = "b" ]; then echo "broken" >&2; exit 1; fi; echo "$1"`)
	got, err := c.Batch(context.Background(), []string{"a", "b", "c"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got != nil {
		t.Errorf("Batch = %v, want nil (no partial results)", got)
	}
	if err.Error() != "broken" {
		t.Errorf("error = %q, want %q", err, "broken")
	}
}

func TestBatch_Empty(t *testing.T) {
	c := fakeClient(t, `echo never`)
	got, err := c.Batch(context.Background(), nil)
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Batch = %v, want empty", got)
	}
}

func TestAI_BinaryNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	c := &Client{Invoker: invoke.Invoker{Resolver: binpath.Resolver{InstallDir: t.TempDir()}}}

	_, err := c.AI(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	var be *Error
	if !errors.As(err, &be) {
		t.Fatalf("error type = %T, want *breezeway.Error", err)
	}
}

func TestNewClient_ZeroConfig(t *testing.T) {
	// No .breezeway anywhere: the client still constructs with defaults.
	c := NewClient()
	if c == nil {
		t.Fatal("NewClient returned nil")
	}
	if c.Invoker.Timeout != 0 {
		t.Errorf("Timeout = %v, want 0", c.Invoker.Timeout)
	}
}
