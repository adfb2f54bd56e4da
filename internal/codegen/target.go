package codegen

import (
	"fmt"
	"runtime"
)

// ---------------------------------------------------------------------------
// OS / Architecture
// ---------------------------------------------------------------------------

// OS is a target operating system. It only affects symbol naming.
type OS int

const (
	OS_Linux OS = iota
	OS_Darwin
	OS_Windows
)

var osNames = [...]string{OS_Linux: "linux", OS_Darwin: "darwin", OS_Windows: "windows"}

// osAliases maps accepted spellings to an OS.
var osAliases = map[string]OS{
	"linux":   OS_Linux,
	"darwin":  OS_Darwin,
	"macos":   OS_Darwin,
	"windows": OS_Windows,
}

func (o OS) String() string {
	if o >= 0 && int(o) < len(osNames) {
		return osNames[o]
	}
	return "unknown"
}

// Arch is a target CPU architecture. Each one has its own Backend.
type Arch int

const (
	Arch_x86_64 Arch = iota
	Arch_x86         // 32-bit, cdecl
	Arch_ARM64       // AArch64, AAPCS64
)

// archInfo is what a Target inherits from its architecture.
type archInfo struct {
	name    string // as printed by Arch.String
	goName  string // GOARCH spelling
	ptrSize int

	returnReg, stackPointer, basePointer string
}

var archTable = [...]archInfo{
	Arch_x86_64: {"x86_64", "amd64", 8, "rax", "rsp", "rbp"},
	Arch_x86:    {"x86", "386", 4, "eax", "esp", "ebp"},
	Arch_ARM64:  {"arm64", "arm64", 8, "x0", "sp", "x29"},
}

var archAliases = map[string]Arch{
	"amd64":   Arch_x86_64,
	"x86_64":  Arch_x86_64,
	"386":     Arch_x86,
	"x86":     Arch_x86,
	"i386":    Arch_x86,
	"arm64":   Arch_ARM64,
	"aarch64": Arch_ARM64,
}

func (a Arch) info() (archInfo, bool) {
	if a >= 0 && int(a) < len(archTable) {
		return archTable[a], true
	}
	return archInfo{}, false
}

func (a Arch) String() string {
	if info, ok := a.info(); ok {
		return info.name
	}
	return "unknown"
}

// ---------------------------------------------------------------------------
// Target - a fully-resolved compilation target
// ---------------------------------------------------------------------------

// Target holds what the backends need to know about the platform. The
// backends spell the return, stack and frame registers from it.
type Target struct {
	OS   OS
	Arch Arch

	// PtrSize is the size of a pointer and of a frame slot in bytes.
	PtrSize int

	ReturnReg    string
	StackPointer string
	BasePointer  string

	// SymbolPrefix: Mach-O and 32-bit COFF prepend "_" to global symbols.
	SymbolPrefix string
}

// HostTarget returns a Target matching the current Go runtime (GOOS/GOARCH).
func HostTarget() (*Target, error) {
	return ResolveTarget(runtime.GOOS, runtime.GOARCH)
}

// ResolveTarget builds a Target from OS/Arch names. Go's spellings are
// accepted along with the common aliases (macos, x86_64, i386, aarch64).
func ResolveTarget(osName, archName string) (*Target, error) {
	osys, ok := osAliases[osName]
	if !ok {
		return nil, fmt.Errorf("unsupported OS: %s", osName)
	}
	arch, ok := archAliases[archName]
	if !ok {
		return nil, fmt.Errorf("unsupported architecture: %s", archName)
	}
	info, _ := arch.info()

	t := &Target{
		OS:           osys,
		Arch:         arch,
		PtrSize:      info.ptrSize,
		ReturnReg:    info.returnReg,
		StackPointer: info.stackPointer,
		BasePointer:  info.basePointer,
	}
	if osys == OS_Darwin || (osys == OS_Windows && arch == Arch_x86) {
		t.SymbolPrefix = "_"
	}
	return t, nil
}

// ---------------------------------------------------------------------------
// Helper queries
// ---------------------------------------------------------------------------

// Sym returns a symbol name with the target prefix applied.
func (t *Target) Sym(name string) string {
	return t.SymbolPrefix + name
}

func (t *Target) Is64Bit() bool { return t.PtrSize == 8 }

// ArchName returns the GOARCH spelling: "amd64", "386" or "arm64".
func (t *Target) ArchName() string {
	if info, ok := t.Arch.info(); ok {
		return info.goName
	}
	return "unknown"
}

func (t *Target) String() string {
	return t.OS.String() + "/" + t.ArchName()
}
