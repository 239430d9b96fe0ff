// Command galloccli builds a falloc.Allocator from flags, replays a
// workload file of alloc/free lines against it, and prints the
// resulting stats.Snapshot as JSON. It exists to exercise the
// allocator from outside the test suite, not as a supported API.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/galloc/falloc"
	"github.com/cloudwego/galloc/policy"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("galloccli", flag.ContinueOnError)
	fs.SetOutput(stderr)

	capacity := fs.Int("capacity", 1<<20, "initial arena capacity in bytes")
	alignment := fs.Int("alignment", policy.DefaultAlignment, "payload alignment in bytes")
	pageSize := fs.Int("pagesize", policy.DefaultPageSize, "dynamic-mode arena growth unit in bytes")
	placement := fs.String("placement", "firstfit", "placement policy: firstfit, nextfit, or bestfit")
	coalescing := fs.String("coalescing", "immediate", "coalescing policy: immediate or deferred")
	mode := fs.String("mode", "dynamic", "allocation mode: static or dynamic")
	workload := fs.String("workload", "-", "path to a workload file of 'alloc <size>' / 'free <handle>' lines, or - for stdin")

	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := parsePlacement(*placement)
	if err != nil {
		return err
	}
	c, err := parseCoalescing(*coalescing)
	if err != nil {
		return err
	}
	m, err := parseMode(*mode)
	if err != nil {
		return err
	}

	a, err := falloc.NewAllocator(*capacity,
		falloc.WithAlignment(*alignment),
		falloc.WithPageSize(*pageSize),
		falloc.WithPlacement(p),
		falloc.WithCoalescing(c),
		falloc.WithAllocationMode(m),
	)
	if err != nil {
		return fmt.Errorf("galloccli: constructing allocator: %w", err)
	}

	src, closeSrc, err := openWorkload(*workload)
	if err != nil {
		return err
	}
	defer closeSrc()

	if err := replay(a, src, stderr); err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(a.Stats())
}

func openWorkload(path string) (io.Reader, func() error, error) {
	if path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("galloccli: opening workload: %w", err)
	}
	return f, f.Close, nil
}

// replay executes one alloc/free instruction per non-blank, non-comment
// line of src against a. "alloc <size>" appends the returned buffer to
// an internal handle table; "free <handle>" releases and clears the
// handle at that table index. A handle that was never allocated, was
// already freed, or is out of range is a fatal workload error, not a
// silently skipped line.
func replay(a *falloc.Allocator, src io.Reader, stderr io.Writer) error {
	var handles [][]byte

	scanner := bufio.NewScanner(src)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return fmt.Errorf("galloccli: line %d: want 2 fields, got %q", lineNo, line)
		}

		arg, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("galloccli: line %d: %w", lineNo, err)
		}

		switch fields[0] {
		case "alloc":
			buf, err := a.Allocate(arg)
			if err != nil {
				return fmt.Errorf("galloccli: line %d: allocate %d: %w", lineNo, arg, err)
			}
			handles = append(handles, buf)
			fmt.Fprintf(stderr, "alloc %d -> handle %d\n", arg, len(handles)-1)
		case "free":
			if arg < 0 || arg >= len(handles) || handles[arg] == nil {
				return fmt.Errorf("galloccli: line %d: invalid handle %d", lineNo, arg)
			}
			if err := a.Free(handles[arg]); err != nil {
				return fmt.Errorf("galloccli: line %d: free handle %d: %w", lineNo, arg, err)
			}
			handles[arg] = nil
		default:
			return fmt.Errorf("galloccli: line %d: unknown instruction %q", lineNo, fields[0])
		}
	}
	return scanner.Err()
}

func parsePlacement(s string) (policy.Placement, error) {
	switch strings.ToLower(s) {
	case "firstfit":
		return policy.FirstFit, nil
	case "nextfit":
		return policy.NextFit, nil
	case "bestfit":
		return policy.BestFit, nil
	default:
		return 0, fmt.Errorf("galloccli: unknown placement %q", s)
	}
}

func parseCoalescing(s string) (policy.Coalescing, error) {
	switch strings.ToLower(s) {
	case "immediate":
		return policy.Immediate, nil
	case "deferred":
		return policy.Deferred, nil
	default:
		return 0, fmt.Errorf("galloccli: unknown coalescing %q", s)
	}
}

func parseMode(s string) (policy.AllocationMode, error) {
	switch strings.ToLower(s) {
	case "static":
		return policy.Static, nil
	case "dynamic":
		return policy.Dynamic, nil
	default:
		return 0, fmt.Errorf("galloccli: unknown allocation mode %q", s)
	}
}
