package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/JaimeStill/translation-console/pkg/apiclient"
)

// API is the backend surface the commands call.
type API interface {
	HealthCheck(ctx context.Context) (*apiclient.Response, error)
	GetConfig(ctx context.Context) (*apiclient.Response, error)
	GetGlossary(ctx context.Context) (*apiclient.Response, error)
	AddGlossaryTerm(ctx context.Context, source, target string) (*apiclient.Response, error)
	ListBatches(ctx context.Context) (*apiclient.Response, error)
	CreateBatch(ctx context.Context, locale string) (*apiclient.Response, error)
	GetBatch(ctx context.Context, id string) (*apiclient.Response, error)
	StartBatch(ctx context.Context, id string) (*apiclient.Response, error)
	TranslateArticle(ctx context.Context, id string, article any) (*apiclient.Response, error)
	UpdateArticle(ctx context.Context, id string, data any) (*apiclient.Response, error)
	ListOutputFiles(ctx context.Context) (*apiclient.Response, error)
	GetOutputFile(ctx context.Context, filename string) (*apiclient.Response, error)
}

type command struct {
	name        string
	usage       string
	description string
	minArgs     int
	maxArgs     int
	call        func(ctx context.Context, api API, args []string) (*apiclient.Response, error)
}

var errUsage = errors.New("usage")

var commands = []command{
	{
		name: "health", usage: "health", description: "Check backend health",
		call: func(ctx context.Context, api API, _ []string) (*apiclient.Response, error) {
			return api.HealthCheck(ctx)
		},
	},
	{
		name: "config", usage: "config", description: "Show backend configuration",
		call: func(ctx context.Context, api API, _ []string) (*apiclient.Response, error) {
			return api.GetConfig(ctx)
		},
	},
	{
		name: "glossary", usage: "glossary", description: "List glossary terms",
		call: func(ctx context.Context, api API, _ []string) (*apiclient.Response, error) {
			return api.GetGlossary(ctx)
		},
	},
	{
		name: "glossary-add", usage: "glossary-add <source> <target>", description: "Add a glossary term",
		minArgs: 2, maxArgs: 2,
		call: func(ctx context.Context, api API, args []string) (*apiclient.Response, error) {
			return api.AddGlossaryTerm(ctx, args[0], args[1])
		},
	},
	{
		name: "batches", usage: "batches", description: "List batches",
		call: func(ctx context.Context, api API, _ []string) (*apiclient.Response, error) {
			return api.ListBatches(ctx)
		},
	},
	{
		name: "batch-create", usage: "batch-create [locale]", description: "Create a batch (default locale en-us)",
		maxArgs: 1,
		call: func(ctx context.Context, api API, args []string) (*apiclient.Response, error) {
			var locale string
			if len(args) > 0 {
				locale = args[0]
			}
			return api.CreateBatch(ctx, locale)
		},
	},
	{
		name: "batch", usage: "batch <id>", description: "Show one batch",
		minArgs: 1, maxArgs: 1,
		call: func(ctx context.Context, api API, args []string) (*apiclient.Response, error) {
			return api.GetBatch(ctx, args[0])
		},
	},
	{
		name: "batch-start", usage: "batch-start <id>", description: "Start processing a batch",
		minArgs: 1, maxArgs: 1,
		call: func(ctx context.Context, api API, args []string) (*apiclient.Response, error) {
			return api.StartBatch(ctx, args[0])
		},
	},
	{
		name: "article-translate", usage: "article-translate <id> <article-json>", description: "Translate an article",
		minArgs: 2, maxArgs: 2,
		call: func(ctx context.Context, api API, args []string) (*apiclient.Response, error) {
			article, err := rawJSON(args[1])
			if err != nil {
				return nil, err
			}
			return api.TranslateArticle(ctx, args[0], article)
		},
	},
	{
		name: "article-update", usage: "article-update <id> <data-json>", description: "Update an article",
		minArgs: 2, maxArgs: 2,
		call: func(ctx context.Context, api API, args []string) (*apiclient.Response, error) {
			data, err := rawJSON(args[1])
			if err != nil {
				return nil, err
			}
			return api.UpdateArticle(ctx, args[0], data)
		},
	},
	{
		name: "outputs", usage: "outputs", description: "List output files",
		call: func(ctx context.Context, api API, _ []string) (*apiclient.Response, error) {
			return api.ListOutputFiles(ctx)
		},
	},
	{
		name: "output", usage: "output <filename>", description: "Fetch one output file",
		minArgs: 1, maxArgs: 1,
		call: func(ctx context.Context, api API, args []string) (*apiclient.Response, error) {
			return api.GetOutputFile(ctx, args[0])
		},
	},
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func rawJSON(s string) (json.RawMessage, error) {
	if !json.Valid([]byte(s)) {
		return nil, fmt.Errorf("%w: argument is not valid JSON", errUsage)
	}
	return json.RawMessage(s), nil
}

// run executes args against api and returns the process exit code: 0 on
// success, 1 for a failed call, 2 for a usage error.
func run(ctx context.Context, api API, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "no command given")
		return 2
	}

	cmd, ok := findCommand(args[0])
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		return 2
	}

	params := args[1:]
	if len(params) < cmd.minArgs || len(params) > cmd.maxArgs {
		fmt.Fprintf(stderr, "usage: console %s\n", cmd.usage)
		return 2
	}

	resp, err := cmd.call(ctx, api, params)
	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "%v\nusage: console %s\n", err, cmd.usage)
			return 2
		}
		if se, ok := apiclient.AsStatusError(err); ok {
			fmt.Fprintf(stderr, "%s %s: %d\n", se.Method, se.URL, se.StatusCode())
			if se.Response != nil {
				writeBody(stderr, se.Response.Data)
			}
			return 1
		}
		fmt.Fprintln(stderr, err)
		return 1
	}

	writeBody(stdout, resp.Data)
	return 0
}

// writeBody prints JSON indented and anything else as received.
func writeBody(w io.Writer, data []byte) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		w.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			fmt.Fprintln(w)
		}
		return
	}
	buf.WriteByte('\n')
	w.Write(buf.Bytes())
}
