package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alexflint/go-arg"
)

// Args defines the command-line arguments with subcommands
type Args struct {
	Config  string `arg:"--config" help:"Config file (.toml, .json or .jsonc); default looks for .apktree.* in the working directory"`
	Verbose bool   `arg:"-v,--verbose" help:"Log debug output to stderr"`

	Tree    *TreeCmd    `arg:"subcommand:tree" help:"Print the archive contents as a directory tree"`
	Ls      *LsCmd      `arg:"subcommand:ls" help:"List archive entries in their stored order"`
	Size    *SizeCmd    `arg:"subcommand:size" help:"Chart where the bytes go, by directory"`
	Browse  *BrowseCmd  `arg:"subcommand:browse" help:"Browse the tree interactively"`
	Exclude *ExcludeCmd `arg:"subcommand:exclude" help:"Add exclude patterns to the JSONC config"`
}

// FilterArgs are the entry filters shared by every subcommand.
type FilterArgs struct {
	Select     string   `arg:"-s,--select" help:"Keep only files matching the pattern (fuzzy, /regex, =exact, glob)"`
	Exclude    []string `arg:"-x,--exclude,separate" help:"Drop entries matching a gitignore pattern (repeatable)"`
	IgnoreFile string   `arg:"--ignore-file" help:"Read exclude patterns from a gitignore-style file"`
}

// OutputArgs pick where rendered output goes.
type OutputArgs struct {
	Output string `arg:"-o,--output" help:"Write output to a file; '-' or empty for stdout"`
	Copy   bool   `arg:"-c,--copy" help:"Also copy the output to the clipboard"`
}

// errAnalysisFailed is returned after the failure line has been printed.
var errAnalysisFailed = errors.New("analysis failed")

// Runner encapsulates the state and behavior for the CLI
type Runner struct {
	Args   Args
	Dir    string
	Stdout io.Writer
}

// NewRunner creates and initializes a new Runner
func NewRunner(args Args) *Runner {
	return &Runner{
		Args:   args,
		Dir:    ".",
		Stdout: os.Stdout,
	}
}

func (r *Runner) options(filter FilterArgs, rootName string) AppOptions {
	return AppOptions{
		Dir:        r.Dir,
		ConfigPath: r.Args.Config,
		Verbose:    r.Args.Verbose,
		RootName:   rootName,
		Filter:     filter,
	}
}

// Run dispatches to the appropriate subcommand
func (r *Runner) Run() error {
	switch {
	case r.Args.Tree != nil:
		app, err := InitApp(r.options(r.Args.Tree.FilterArgs, r.Args.Tree.RootName))
		if err != nil {
			return err
		}
		return NewTreeRunner(*r.Args.Tree, app, r.Stdout).Run()
	case r.Args.Ls != nil:
		app, err := InitApp(r.options(r.Args.Ls.FilterArgs, ""))
		if err != nil {
			return err
		}
		return NewLsRunner(*r.Args.Ls, app, r.Stdout).Run()
	case r.Args.Size != nil:
		app, err := InitApp(r.options(r.Args.Size.FilterArgs, ""))
		if err != nil {
			return err
		}
		return NewSizeRunner(*r.Args.Size, app, r.Stdout).Run()
	case r.Args.Browse != nil:
		app, err := InitApp(r.options(r.Args.Browse.FilterArgs, ""))
		if err != nil {
			return err
		}
		return NewBrowseRunner(*r.Args.Browse, app, r.Stdout).Run()
	case r.Args.Exclude != nil:
		return NewExcludeRunner(*r.Args.Exclude, r.Dir, r.Args.Config, r.Stdout).Run()
	default:
		return fmt.Errorf("no subcommand specified, use 'tree', 'ls', 'size', 'browse' or 'exclude'")
	}
}

// main is our entrypoint: parse args and run the application
func main() {
	var args Args
	parser := arg.MustParse(&args)

	// If no subcommand is specified, show help
	if args.Tree == nil && args.Ls == nil && args.Size == nil && args.Browse == nil && args.Exclude == nil {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	runner := NewRunner(args)
	if err := runner.Run(); err != nil {
		if errors.Is(err, errAnalysisFailed) {
			os.Exit(1)
		}
		log.Fatal(err)
	}
}
