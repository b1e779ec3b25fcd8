package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"earthviewer/traj"

	"golang.org/x/exp/slices"
)

type commonArgs struct {
	strict bool
	quiet  bool
}

type command struct {
	Run   func(self *command)
	Name  string
	Help  string
	Flags *flag.FlagSet
}

var commands = []*command{}

func printGeneralUsage() {
	exe := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [arguments]\n\n", exe)
	fmt.Fprintf(os.Stderr, "The commands are:\n\n")
	longest := slices.MaxFunc(commands, func(a, b *command) int {
		return len(a.Name) - len(b.Name)
	})
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "    %*s%s\n", -len(longest.Name)-4, c.Name, c.Help)
	}
	fmt.Fprintln(os.Stderr, "")
	os.Exit(1)
}

func printCommandUsage(cmd *command, suffix string) {
	exe := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s %s [arguments]%s\n\n", exe, cmd.Name, suffix)
	fmt.Fprintf(os.Stderr, "The arguments are:\n\n")
	cmd.Flags.SetOutput(os.Stderr)
	cmd.Flags.PrintDefaults()
	os.Exit(1)
}

func main() {
	commands = append(commands, createInfoCommand())
	commands = append(commands, createPackCommand())
	commands = append(commands, createUnpackCommand())

	slices.SortFunc(commands, func(a, b *command) int {
		return strings.Compare(a.Name, b.Name)
	})

	if len(os.Args) < 2 {
		printGeneralUsage()
	}

	var cmd *command
	for _, c := range commands {
		if strings.EqualFold(c.Name, os.Args[1]) {
			cmd = c
			break
		}
	}
	if cmd == nil {
		printGeneralUsage()
	}

	err := cmd.Flags.Parse(os.Args[2:])
	harderr(err)

	cmd.Run(cmd)
}

func registerCommonFlags(flags *flag.FlagSet, args *commonArgs) {
	flags.BoolVar(&args.strict, "strict", args.strict, "fail on malformed rows instead of skipping them")
	flags.BoolVar(&args.quiet, "quiet", args.quiet, "only log errors")
	flags.BoolVar(&args.quiet, "q", args.quiet, "shorthand for quiet")
}

func newLogger(args *commonArgs) *slog.Logger {
	level := slog.LevelInfo
	if args.quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func load(path string, args *commonArgs) []traj.Trajectory {
	trajs, err := traj.LoadWith(path, traj.Options{Logger: newLogger(args), Strict: args.strict})
	harderr(err)
	return trajs
}

func createInfoCommand() *command {
	args := &commonArgs{}
	cmd := &command{
		Name:  "info",
		Help:  "print a summary of trajectory files",
		Flags: flag.NewFlagSet("info", flag.ExitOnError),
		Run: func(self *command) {
			if self.Flags.NArg() == 0 {
				printCommandUsage(self, " <file>...")
			}
			for _, path := range self.Flags.Args() {
				summary := traj.Summarize(load(path, args))
				fmt.Printf("%s: %v\n", path, summary)
				for _, name := range summary.Names {
					fmt.Printf("    %s\n", name)
				}
			}
		},
	}
	registerCommonFlags(cmd.Flags, args)
	return cmd
}

func createPackCommand() *command {
	args := &commonArgs{}
	var out string
	cmd := &command{
		Name:  "pack",
		Help:  "re-encode a trajectory file as an lz4 frame",
		Flags: flag.NewFlagSet("pack", flag.ExitOnError),
		Run: func(self *command) {
			if self.Flags.NArg() != 1 {
				printCommandUsage(self, " <file>")
			}
			in := self.Flags.Arg(0)
			if out == "" {
				out = in + ".lz4"
			}
			trajs := load(in, args)
			harderr(writeFile(out, func(w io.Writer) error {
				return traj.EncodeLz4(w, trajs)
			}))
			fmt.Printf("%s: %v\n", out, traj.Summarize(trajs))
		},
	}
	cmd.Flags.StringVar(&out, "out", out, "the output file, defaults to the input with .lz4 appended")
	cmd.Flags.StringVar(&out, "o", out, "shorthand for out")
	registerCommonFlags(cmd.Flags, args)
	return cmd
}

func createUnpackCommand() *command {
	args := &commonArgs{}
	var out string
	cmd := &command{
		Name:  "unpack",
		Help:  "decode a trajectory file to plain text",
		Flags: flag.NewFlagSet("unpack", flag.ExitOnError),
		Run: func(self *command) {
			if self.Flags.NArg() != 1 {
				printCommandUsage(self, " <file>")
			}
			trajs := load(self.Flags.Arg(0), args)
			if out == "" {
				harderr(traj.Encode(os.Stdout, trajs))
				return
			}
			harderr(writeFile(out, func(w io.Writer) error {
				return traj.Encode(w, trajs)
			}))
		},
	}
	cmd.Flags.StringVar(&out, "out", out, "the output file, stdout by default")
	cmd.Flags.StringVar(&out, "o", out, "shorthand for out")
	registerCommonFlags(cmd.Flags, args)
	return cmd
}

func writeFile(path string, encode func(w io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(file); err != nil {
		file.Close()
		return fmt.Errorf("write %v: %w", path, err)
	}
	return file.Close()
}

func harderr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
