package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
)

// Each calls fn with every input and prints its non-empty results.
//
// When args is empty the inputs are read from stdin, one per
// line. Failed inputs are logged and skipped, the function
// returns false if any input failed.
func each(args []string, fn func(string) (string, error)) bool {
	var ok = true

	if len(args) == 0 {
		v, err := lines(os.Stdin)
		if err != nil {
			log.WithError(err).Error("read stdin")
			return false
		}
		args = v
	}

	for _, arg := range args {
		v, err := fn(arg)
		if err != nil {
			log.WithError(err).WithField("url", arg).Error("skip")
			ok = false
			continue
		}

		if v != "" {
			fmt.Println(v)
		}
	}

	return ok
}

// Lines returns all non-empty trimmed lines of r.
func lines(r io.Reader) ([]string, error) {
	var ret []string
	var s = bufio.NewScanner(r)

	for s.Scan() {
		if line := strings.TrimSpace(s.Text()); line != "" {
			ret = append(ret, line)
		}
	}

	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("urlnorm: scan lines - %w", err)
	}

	return ret, nil
}
