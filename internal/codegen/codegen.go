package codegen

import (
	"fmt"
	"io"
	"os"

	"opal/internal/ast"
	"opal/internal/lower"
)

// ---------------------------------------------------------------------------
// Options controls the behaviour of the code-generation pipeline.
// ---------------------------------------------------------------------------

// Options configures the codegen pipeline.
type Options struct {
	// Target platform. If nil, the host platform is auto-detected.
	Target *Target

	// DebugPrint makes x86 functions print their return value with printf.
	// Other targets ignore it.
	DebugPrint bool

	// Verbose enables [codegen] progress lines on Log.
	Verbose bool

	// Log receives verbose output. Defaults to stdout.
	Log io.Writer
}

// DefaultOptions returns sensible defaults (host target, quiet).
func DefaultOptions() *Options {
	return &Options{}
}

func (o *Options) logf(format string, args ...any) {
	out := o.Log
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, format, args...)
}

// ---------------------------------------------------------------------------
// Result is returned by Generate.
// ---------------------------------------------------------------------------

type Result struct {
	Target   *Target
	Assembly string // assembly text for Target
	IRDump   string // human-readable IR dump (for debugging)
}

// ---------------------------------------------------------------------------
// Generate - the public entry point for the full codegen pipeline
//
// Pipeline: AST → IR (lower) → Assembly text (emit)
// ---------------------------------------------------------------------------

// Generate lowers mod and emits assembly for the configured target.
func Generate(mod *ast.Module, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	// --- Resolve target ---
	target := opts.Target
	if target == nil {
		var err error
		target, err = HostTarget()
		if err != nil {
			return nil, fmt.Errorf("cannot detect host target: %w", err)
		}
	}

	result := &Result{Target: target}

	// --- Step 1: Lower AST to IR ---
	if opts.Verbose {
		opts.logf("[codegen] Lowering %s to IR...\n", mod.Name)
	}
	irMod, err := lower.Lower(mod)
	if err != nil {
		return nil, fmt.Errorf("lowering failed: %w", err)
	}
	result.IRDump = irMod.String()

	if opts.Verbose {
		opts.logf("%s", result.IRDump)
	}

	// --- Step 2: Emit assembly ---
	if opts.Verbose {
		opts.logf("[codegen] Emitting %s assembly for %s...\n", target.Arch, target)
		if opts.DebugPrint && target.Arch != Arch_x86 {
			opts.logf("[codegen] Debug print is only supported on x86, ignoring\n")
		}
	}
	asm, err := Emit(irMod, target, opts)
	if err != nil {
		return nil, fmt.Errorf("emission failed: %w", err)
	}
	result.Assembly = asm

	if opts.Verbose {
		opts.logf("[codegen] Done (%d bytes of assembly)\n", len(asm))
	}
	return result, nil
}
