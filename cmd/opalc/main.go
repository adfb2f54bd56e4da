package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tebeka/atexit"

	"opal/internal/ast"
	"opal/internal/codegen"
	"opal/internal/interp"
	"opal/internal/lower"
	"opal/internal/samples"
)

const VERSION = "0.2.0"

var debugMode = false

func main() {
	start := time.Now()
	atexit.Register(func() {
		printDebug(fmt.Sprintf("Finished in %s", time.Since(start)))
	})
	atexit.Exit(run(os.Args[1:]))
}

// flags collected from the command line. Flags use the --name or
// --name=value form; the first other argument names the program.
type flags struct {
	program    string
	target     string
	out        string
	list       bool
	showAST    bool
	showIR     bool
	interpret  bool
	debugPrint bool
}

func parseArgs(args []string) (*flags, error) {
	f := &flags{}
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			if f.program == "" {
				f.program = arg
				continue
			}
			return nil, fmt.Errorf("unexpected argument %q", arg)
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		switch name {
		case "debug":
			debugMode = true
		case "list":
			f.list = true
		case "ast":
			f.showAST = true
		case "ir":
			f.showIR = true
		case "run":
			f.interpret = true
		case "debug-print":
			f.debugPrint = true
		case "target", "out":
			if !hasValue || value == "" {
				return nil, fmt.Errorf("--%s needs a value (--%s=...)", name, name)
			}
			if name == "target" {
				f.target = value
			} else {
				f.out = value
			}
		default:
			return nil, fmt.Errorf("unknown flag %q", arg)
		}
	}
	return f, nil
}

func usage() {
	fmt.Println("Usage: opalc [flags] <program>")
	fmt.Println("  --list                 list the built-in programs")
	fmt.Println("  --target=os/arch       target platform (default: host)")
	fmt.Println("  --out=file.s           write assembly to a file instead of stdout")
	fmt.Println("  --ast, --ir            print the AST or the IR")
	fmt.Println("  --run                  run the IR in the interpreter")
	fmt.Println("  --debug-print          x86 only: print each return value with printf")
	fmt.Println("  --debug                verbose progress output")
}

func run(args []string) int {
	f, err := parseArgs(args)
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		usage()
		return 1
	}

	printDebug("Opal backend V" + VERSION)

	if f.list {
		for _, name := range samples.Names() {
			p, _ := samples.Lookup(name)
			fmt.Printf("  %-18s %s\n", p.Name, p.Description)
		}
		return 0
	}

	if f.program == "" {
		usage()
		return 1
	}

	p, ok := samples.Lookup(f.program)
	if !ok {
		fmt.Printf("Error: unknown program %q (try --list)\n", f.program)
		return 1
	}
	return compile(f, p)
}

// compile builds p and carries out what f asks for: printing, interpreting
// or generating assembly.
func compile(f *flags, p samples.Program) int {
	printDebug("Building program: " + p.Name)

	mod := p.Build()
	if f.showAST {
		fmt.Print(ast.DebugString(mod))
	}

	if f.showIR || f.interpret {
		irMod, err := lower.Lower(mod)
		if err != nil {
			return fatal("lowering: %s", err)
		}
		if f.showIR {
			fmt.Print(irMod.String())
		}
		if f.interpret {
			printDebug("Interpreting " + p.Entry + "...")
			v, err := interp.RunModule(irMod, p.Entry, nil)
			if err != nil {
				return fatal("interpreter: %s", err)
			}
			fmt.Printf("Result: %d\n", v)
			return 0
		}
	}

	// --- Code generation ---
	codegenOpts := codegen.DefaultOptions()
	codegenOpts.Verbose = debugMode
	codegenOpts.DebugPrint = f.debugPrint

	if f.target != "" {
		osName, archName, ok := strings.Cut(f.target, "/")
		if !ok {
			fmt.Printf("Error: invalid target format %q (expected os/arch, e.g. linux/amd64)\n", f.target)
			return 1
		}
		target, err := codegen.ResolveTarget(osName, archName)
		if err != nil {
			fmt.Printf("Error: %s\n", err)
			return 1
		}
		codegenOpts.Target = target
	}

	result, err := codegen.Generate(mod, codegenOpts)
	if err != nil {
		return fatal("codegen: %s", err)
	}

	if f.out == "" {
		fmt.Print(result.Assembly)
		return 0
	}
	if err := writeAssembly(f.out, result.Assembly); err != nil {
		return fatal("%s", err)
	}
	printDebug(fmt.Sprintf("Wrote %s assembly to %s", result.Target, f.out))
	return 0
}

// fatal reports an internal failure on stderr and returns the exit code for
// it.
func fatal(format string, args ...any) int {
	fmt.Fprintf(os.Stderr, "[FATAL] "+format+"\n", args...)
	return 2
}

// writeAssembly writes asm to path.
func writeAssembly(path, asm string) error {
	if err := os.WriteFile(path, []byte(asm), 0644); err != nil {
		return fmt.Errorf("cannot write assembly file: %w", err)
	}
	return nil
}

/**
* Prints a debug message to the console.
* @param message The message to print.
 */
func printDebug(message string) {
	if !debugMode {
		return
	}
	fmt.Println("[DEBUG] " + message)
}
