package dispatch_test

//go:generate mockgen -destination mock_test.go -source capabilities_test.go -package dispatch_test

import (
	"fmt"
	"strconv"

	"go.llib.dev/frameless/pkg/errorkit"
)

type Incrementer interface {
	Inc() error
}

type Namer interface {
	Name() string
}

type Parser interface {
	Parse(raw string) (int, error)
}

type Counter struct {
	Count int
	Err   error
}

func (c *Counter) Inc() error {
	if c.Err != nil {
		return c.Err
	}
	c.Count++
	return nil
}

type Person struct{ FullName string }

func (p Person) Name() string { return p.FullName }

const ErrNotMyFormat errorkit.Error = "ErrNotMyFormat"

type IntParser struct{ Base int }

func (p IntParser) Parse(raw string) (int, error) {
	n, err := strconv.ParseInt(raw, p.Base, 64)
	if err != nil {
		return 0, ErrNotMyFormat.Wrap(err)
	}
	return int(n), nil
}

type StrictParser struct{}

func (StrictParser) Parse(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("strict: %w", err)
	}
	return n, nil
}
