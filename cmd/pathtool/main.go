// pathtool inspects camera tour files for the flyover viewer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/terrain-flyover/internal/flythrough"
	"github.com/Faultbox/terrain-flyover/pkg/bezier"
)

// errUsage marks argument errors; run prints usage for them.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command, rest := args[0], args[1:]
	var err error
	switch command {
	case "info":
		err = cmdInfo(rest, stdout)
	case "sample":
		err = cmdSample(rest, stdout)
	case "svg":
		err = cmdSVG(rest, stdout)
	case "init":
		err = cmdInit(rest, stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}

	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, err)
			return 2
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `pathtool - camera tour utility

Usage:
  pathtool <command> [options]

Commands:
  info [-depth D] <tour.yaml|default>            Show segments, points and lengths
  sample [-depth D] [-n N] [-track T] <tour>     Print N uniform samples of a track
  svg [-depth D] <tour> [out.svg]                Write a top-down preview
  init [out.yaml]                                Write the built-in tour

Examples:
  pathtool info default
  pathtool sample -n 20 -track target tour.yaml
  pathtool svg tour.yaml tour.svg`)
}

// loadTour reads a tour file; the name "default" selects the built-in tour.
func loadTour(name string) (*flythrough.Spec, error) {
	if name == "default" {
		return flythrough.Default(), nil
	}
	return flythrough.Load(name)
}

func buildFlags(name string) (*flag.FlagSet, *int) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	depth := fs.Int("depth", bezier.DefaultDepth, "Subdivision depth")
	return fs, depth
}

// parseFlags parses args and checks the shared -depth flag.
func parseFlags(fs *flag.FlagSet, depth *int, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *depth < 0 || *depth > bezier.MaxDepth {
		return fmt.Errorf("%w: -depth %d out of range [0, %d]", errUsage, *depth, bezier.MaxDepth)
	}
	return nil
}

func cmdInfo(args []string, out io.Writer) error {
	fs, depth := buildFlags("info")
	if err := parseFlags(fs, depth, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: pathtool info [-depth D] <tour.yaml|default>", errUsage)
	}

	spec, err := loadTour(fs.Arg(0))
	if err != nil {
		return err
	}
	eye, target, err := spec.Build(*depth)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Tour:     %s\n", fs.Arg(0))
	fmt.Fprintf(out, "Points:   %d\n", len(spec.Points))
	fmt.Fprintf(out, "Depth:    %d\n", eye.Depth())
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%-8s %8s %8s %10s %10s\n", "track", "segments", "points", "length", "plan")
	for _, tr := range []struct {
		name string
		path *bezier.Path
	}{{"eye", eye}, {"target", target}} {
		fmt.Fprintf(out, "%-8s %8d %8d %10.4f %10.4f\n",
			tr.name, tr.path.Len(), len(tr.path.Points()), tr.path.Length(), flythrough.PlanLength(tr.path))
	}
	return nil
}

func cmdSample(args []string, out io.Writer) error {
	fs, depth := buildFlags("sample")
	n := fs.Int("n", 10, "Number of samples")
	track := fs.String("track", "eye", "Track to sample (eye or target)")
	if err := parseFlags(fs, depth, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: pathtool sample [-depth D] [-n N] [-track eye|target] <tour>", errUsage)
	}
	if *n < 2 {
		return fmt.Errorf("%w: -n must be at least 2", errUsage)
	}

	spec, err := loadTour(fs.Arg(0))
	if err != nil {
		return err
	}
	eye, target, err := spec.Build(*depth)
	if err != nil {
		return err
	}

	var p *bezier.Path
	switch *track {
	case "eye":
		p = eye
	case "target":
		p = target
	default:
		return fmt.Errorf("%w: unknown track %q", errUsage, *track)
	}

	for i := 0; i < *n; i++ {
		t := float32(i) / float32(*n-1)
		v, ok := p.Sample(t)
		if !ok {
			return fmt.Errorf("%s track is empty", *track)
		}
		fmt.Fprintf(out, "%.4f %.4f %.4f %.4f\n", t, v.X, v.Y, v.Z)
	}
	return nil
}

func cmdSVG(args []string, stdout io.Writer) error {
	fs, depth := buildFlags("svg")
	if err := parseFlags(fs, depth, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: pathtool svg [-depth D] <tour> [out.svg]", errUsage)
	}

	spec, err := loadTour(fs.Arg(0))
	if err != nil {
		return err
	}
	eye, target, err := spec.Build(*depth)
	if err != nil {
		return err
	}

	if fs.NArg() < 2 {
		return flythrough.WriteSVG(stdout, eye, target)
	}
	f, err := os.Create(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("creating %s: %w", fs.Arg(1), err)
	}
	if err := flythrough.WriteSVG(f, eye, target); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func cmdInit(args []string, stdout io.Writer) error {
	data, err := flythrough.Default().Marshal()
	if err != nil {
		return err
	}
	if len(args) < 1 {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", args[0], err)
	}
	return nil
}
