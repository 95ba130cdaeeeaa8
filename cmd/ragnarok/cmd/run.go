package cmd

import (
	"fmt"
	"os"

	"github.com/rpucella/Ragnarok/internal/interp"
	"github.com/rpucella/Ragnarok/internal/rgerrors"
	"github.com/rpucella/Ragnarok/internal/rgparser"
	"github.com/rpucella/Ragnarok/pkg/ragnarok"
	"github.com/spf13/cobra"
)

var (
	evalExpr      string
	noInteractive bool
	dumpAST       bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Ragnarok file or expression",
	Long: `Execute a Ragnarok program from a file or an inline expression.

Examples:
  # Run a script file
  ragnarok run script.rkn

  # Evaluate an inline expression
  ragnarok run -e "(+ 1 2)"

  # Run without the INTERACTIVE module open
  ragnarok run --no-interactive script.rkn

  # Dump the parsed AST instead of evaluating
  ragnarok run --dump-ast script.rkn`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&noInteractive, "no-interactive", false, "don't open the INTERACTIVE module")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST instead of evaluating")
}

func runScript(_ *cobra.Command, args []string) error {
	var source string
	switch {
	case evalExpr != "":
		source = evalExpr
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		source = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline code")
	}

	modules := ragnarok.DefaultModules
	if noInteractive {
		modules = []string{"CORE"}
	}

	engine := ragnarok.NewEngine()
	ctxt := engine.NewContext(modules, func(line string) { fmt.Println(line) })
	ctxt.SetModule = func(name string) {}
	ctxt.ReadFile = func(path string) error {
		content, err := os.ReadFile(path)
		if err != nil {
			return rgerrors.New(rgerrors.KindModule, "cannot read %s: %v", path, err)
		}
		return streamEval(engine, ctxt, string(content))
	}

	if err := streamEval(engine, ctxt, source); err != nil {
		if rgerrors.IsQuit(err) {
			os.Exit(0)
		}
		printErr(err)
		os.Exit(1)
	}
	return nil
}

// streamEval reads and handles one top-level form at a time, the shape a
// real REPL would use against a file, per SPEC_FULL §6.1.
func streamEval(engine *ragnarok.Engine, ctxt *interp.Context, source string) error {
	rest := source
	for {
		s, remainder, err := engine.Read(rest, false)
		if err != nil {
			return err
		}
		if s == nil {
			return nil
		}
		rest = remainder

		decl, err := engine.ParseSExpr(ctxt, s)
		if err != nil {
			return err
		}

		if dumpAST {
			printAST(decl)
			continue
		}

		result, err := engine.EvalParsedSExpr(ctxt, decl, s.String())
		if err != nil {
			return err
		}
		if result.Kind == rgparser.DeclExp {
			fmt.Println(result.Result.Display())
		} else {
			fmt.Println(result.Report)
		}
	}
}

func printAST(decl *rgparser.Declaration) {
	if decl.Kind == rgparser.DeclExp {
		fmt.Println(interp.Dump(decl.Exp))
		return
	}
	fmt.Printf("(%s %s %s)\n", declKeyword(decl.Kind), decl.Name, interp.Dump(decl.Init))
}

func declKeyword(k rgparser.DeclKind) string {
	switch k {
	case rgparser.DeclVar:
		return "var"
	case rgparser.DeclConst:
		return "const"
	case rgparser.DeclDef:
		return "def"
	case rgparser.DeclMacro:
		return "macro"
	default:
		return "exp"
	}
}

func printErr(err error) {
	if e, ok := err.(*rgerrors.Error); ok {
		fmt.Fprintln(os.Stderr, e.Format())
		return
	}
	fmt.Fprintf(os.Stderr, ";; RUNTIME-ERROR: %v\n", err)
}
