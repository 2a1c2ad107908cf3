// Package breezeway bridges Go callers to the external breeze executable,
// which performs the actual AI interactions via a local LLM. This package
// contains no intelligence of its own: it locates the binary, invokes it as
// a subprocess, and returns its trimmed output.
//
//	resp, err := breezeway.AI("Explain quantum physics")
//
//	// Conversational turns; breeze itself keeps the history.
//	breezeway.Chat("Hello!")
//	breezeway.Chat("Tell me more")
//
//	// Code generation.
//	src, err := breezeway.Code("Write a factorial function in Go")
package breezeway

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/yossideutsch/breezeway/internal/binpath"
	"github.com/yossideutsch/breezeway/internal/config"
	"github.com/yossideutsch/breezeway/internal/invoke"
)

// Version is the breezeway release version.
const Version = "2.0.0"

// Error is the single error kind reported by breezeway operations. The
// message carries everything there is to know: a resolution failure with
// its remediation hint, the stderr of a failed invocation, or a launch
// failure wrapping the underlying OS error.
type Error struct {
	Msg string
	Err error // underlying cause, when one exists
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Err }

// opError wraps err into *Error, preserving the message verbatim.
func opError(err error) error {
	if err == nil {
		return nil
	}
	var be *Error
	if errors.As(err, &be) {
		return err
	}
	return &Error{Msg: err.Error(), Err: errors.Unwrap(err)}
}

// Option configures a single request. The options mirror what the breeze
// library accepts natively; the breeze command line exposes no flags for
// them, so they are accepted here but not forwarded to the executable.
// See the AI documentation.
type Option func(*requestOptions)

type requestOptions struct {
	model   string
	temp    float64
	concise bool
	docs    []string
}

// WithModel requests a specific model (e.g. "codellama").
func WithModel(model string) Option {
	return func(o *requestOptions) { o.model = model }
}

// WithTemp requests a sampling temperature between 0.0 and 1.0.
func WithTemp(temp float64) Option {
	return func(o *requestOptions) { o.temp = temp }
}

// WithConcise requests shorter responses.
func WithConcise() Option {
	return func(o *requestOptions) { o.concise = true }
}

// WithDocs attaches document files for context.
func WithDocs(paths ...string) Option {
	return func(o *requestOptions) { o.docs = append(o.docs, paths...) }
}

// Client invokes breeze operations. The zero value is usable: it resolves
// the binary from the default install location and PATH, with no timeout
// and no transcript recording.
type Client struct {
	Invoker invoke.Invoker
}

// NewClient builds a Client configured from the optional .breezeway file
// found at or above the current working directory. Config errors fall back
// to zero-value defaults.
func NewClient() *Client {
	c := &Client{}
	wd, err := os.Getwd()
	if err != nil {
		return c
	}
	loaded, err := config.Load(wd)
	if err != nil {
		return c
	}
	cfg := loaded.Config
	c.Invoker = invoke.Invoker{
		Resolver:  binpath.Resolver{Override: cfg.Binary},
		Timeout:   cfg.Timeout(),
		MaxOutput: cfg.MaxOutputBytes(),
	}
	return c
}

// AI generates a response for a single prompt.
//
// Known limitation: the model, temperature, concise, and docs options are
// accepted for signature compatibility with the breeze library, but the
// breeze command line takes only the prompt itself, so they are not
// forwarded. Callers needing those knobs should use the breeze Go library
// directly.
func (c *Client) AI(ctx context.Context, prompt string, opts ...Option) (string, error) {
	var ro requestOptions
	for _, o := range opts {
		o(&ro)
	}

	out, err := c.Invoker.Run(ctx, []string{prompt}, "")
	if err != nil {
		return "", opError(err)
	}
	return out, nil
}

// Chat sends one conversational turn. History across turns is kept by the
// breeze executable itself, on disk; this layer neither observes nor
// synchronizes it.
func (c *Client) Chat(ctx context.Context, prompt string) (string, error) {
	out, err := c.Invoker.Run(ctx, []string{"chat", prompt}, "")
	if err != nil {
		return "", opError(err)
	}
	return out, nil
}

// Code generates code for a prompt via the code subcommand.
func (c *Client) Code(ctx context.Context, prompt string) (string, error) {
	out, err := c.Invoker.Run(ctx, []string{"code", prompt}, "")
	if err != nil {
		return "", opError(err)
	}
	return out, nil
}

// Clear discards the conversation history kept by the breeze executable.
func (c *Client) Clear(ctx context.Context) error {
	_, err := c.Invoker.Run(ctx, []string{"clear"}, "")
	return opError(err)
}

// Stream returns the complete response for prompt. There is no incremental
// delivery across the subprocess boundary: fn is accepted but never called,
// and the result is identical to AI for the same prompt.
func (c *Client) Stream(ctx context.Context, prompt string, fn func(token string)) (string, error) {
	return c.AI(ctx, prompt)
}

// Batch processes prompts sequentially, in input order. The first failure
// aborts the batch; no partial results are returned.
func (c *Client) Batch(ctx context.Context, prompts []string) ([]string, error) {
	results := make([]string, 0, len(prompts))
	for _, p := range prompts {
		out, err := c.AI(ctx, p)
		if err != nil {
			return nil, err
		}
		results = append(results, out)
	}
	return results, nil
}

var (
	defaultOnce   sync.Once
	defaultClient *Client
)

func def() *Client {
	defaultOnce.Do(func() { defaultClient = NewClient() })
	return defaultClient
}

// AI generates a response for a single prompt using the default client.
func AI(prompt string, opts ...Option) (string, error) {
	return def().AI(context.Background(), prompt, opts...)
}

// Chat sends one conversational turn using the default client.
func Chat(prompt string) (string, error) {
	return def().Chat(context.Background(), prompt)
}

// Code generates code for a prompt using the default client.
func Code(prompt string) (string, error) {
	return def().Code(context.Background(), prompt)
}

// Clear discards the conversation history using the default client.
func Clear() error {
	return def().Clear(context.Background())
}

// Stream returns the complete response for prompt using the default client.
func Stream(prompt string, fn func(token string)) (string, error) {
	return def().Stream(context.Background(), prompt, fn)
}

// Batch processes prompts sequentially using the default client.
func Batch(prompts []string) ([]string, error) {
	return def().Batch(context.Background(), prompts)
}
