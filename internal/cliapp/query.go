package cliapp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/errorkit"

	"go.llib.dev/lazyq/adapter/postgresql"
	"go.llib.dev/lazyq/pkg/query"
	"go.llib.dev/lazyq/pkg/seqkit"
)

// QueryCommand builds a lazy query over a line source, and prints the result.
type QueryCommand struct {
	Source   string `flag:"source" default:"stdin" enum:"stdin,bolt,postgres," desc:"where the elements come from"`
	SQL      string `flag:"sql" desc:"SELECT statement for the postgres source, the first column is used"`
	Chars    bool   `flag:"chars" desc:"split every line into one-character elements"`
	Contains string `flag:"contains" desc:"keep only the elements containing this text"`
	Skip     int    `flag:"skip" desc:"skip the first N elements"`
	From     int    `flag:"from" desc:"lower position bound of a range, excluded"`
	To       int    `flag:"to" desc:"upper position bound of a range, excluded"`
	Upper    bool   `flag:"upper" desc:"upper case the elements"`
	Append   string `flag:"append" desc:"comma separated elements to add after the result"`
	Prepend  string `flag:"prepend" desc:"comma separated elements to add before the result"`
	Get      int    `flag:"get" default:"-1" desc:"print only the element at this zero-based index"`
	Count    bool   `flag:"count" desc:"print the number of elements"`

	app *App
}

func (cmd QueryCommand) Summary() string { return "run a lazy query over a source of lines" }

func (cmd QueryCommand) ServeCLI(w cli.Response, r *cli.Request) {
	cmd.app.run(r.Context(), "query", w, func(ctx context.Context) (rErr error) {
		src, closeSource, err := cmd.source(ctx, r.Body)
		if err != nil {
			return err
		}
		defer errorkit.Finish(&rErr, closeSource)
		return cmd.print(w, cmd.build(src))
	})
}

func (cmd QueryCommand) source(ctx context.Context, stdin io.Reader) (*query.Query[string], func() error, error) {
	nop := func() error { return nil }
	switch cmd.Source {
	case "", "stdin":
		lines, err := readLines(stdin)
		if err != nil {
			return nil, nil, err
		}
		return query.FromSlice(lines), nop, nil
	case "bolt":
		store, err := cmd.app.openBolt(ctx)
		if err != nil {
			return nil, nil, err
		}
		return query.New(store.Values(ctx)), store.Close, nil
	case "postgres":
		if cmd.SQL == "" {
			return nil, nil, ErrUsage.F("--sql is required with --source=postgres")
		}
		conn, err := cmd.app.connectPostgres(ctx)
		if err != nil {
			return nil, nil, err
		}
		return query.New(postgresql.Query(ctx, conn, postgresql.Text, cmd.SQL)), conn.Close, nil
	default:
		return nil, nil, ErrUsage.F("unknown source: %s", cmd.Source)
	}
}

func (cmd QueryCommand) build(q *query.Query[string]) *query.Query[string] {
	if cmd.Chars {
		q = chars(q)
	}
	if cmd.Contains != "" {
		q = q.Filter(func(v string) bool { return strings.Contains(v, cmd.Contains) })
	}
	if 0 < cmd.Skip {
		q = q.Slice(cmd.Skip)
	}
	switch {
	case cmd.To != 0:
		q = q.SliceRange(cmd.From, cmd.To)
	case cmd.From != 0:
		q = q.Slice(cmd.From)
	}
	if cmd.Prepend != "" {
		q = q.Prepend(seqkit.Slice(strings.Split(cmd.Prepend, ",")))
	}
	if cmd.Append != "" {
		q = q.Append(seqkit.Slice(strings.Split(cmd.Append, ",")))
	}
	if cmd.Upper {
		q = query.Map(q, strings.ToUpper)
	}
	return q
}

func (cmd QueryCommand) print(w io.Writer, q *query.Query[string]) error {
	if cmd.Count {
		n, err := q.Count()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, n)
		return err
	}
	if 0 <= cmd.Get {
		v, ok := q.Get(cmd.Get)
		if !ok {
			return fmt.Errorf("index %d is out of range", cmd.Get)
		}
		_, err := fmt.Fprintln(w, v)
		return err
	}
	return q.ForEach(func(v string) error {
		_, err := fmt.Fprintln(w, v)
		return err
	})
}

// chars turns every line into its characters, keeping the line order.
func chars(lines *query.Query[string]) *query.Query[string] {
	return query.New[string](seqkit.SequenceFunc[string](func() seqkit.Iterator[string] {
		var members []seqkit.Iterator[string]
		err := lines.ForEach(func(line string) error {
			members = append(members, seqkit.String(line).Iterator())
			return nil
		})
		if err != nil {
			members = append(members, seqkit.Error[string](err).Iterator())
		}
		return seqkit.Chain(members...)
	}))
}

func readLines(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, nil
	}
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
