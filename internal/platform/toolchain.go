package platform

// Toolchain names the native compilers used when a cgo build is requested.
type Toolchain struct {
	CC          string // C compiler
	CXX         string // C++ compiler
	SDKRoot     string // optional root whose bin/ directory is prepended to PATH
	Description string
}

// Toolchains maps platform keys to native toolchains.
type Toolchains struct {
	m map[string]Toolchain
}

// NewToolchains copies m into a new registry.
func NewToolchains(m map[string]Toolchain) *Toolchains {
	t := &Toolchains{m: make(map[string]Toolchain, len(m))}
	for k, v := range m {
		t.m[k] = v
	}
	return t
}

// DefaultToolchains returns the toolchain table for the default catalog.
// windowsSDK is the MSYS2 UCRT64 root used by the Windows entries; it may be
// empty, in which case gcc is expected on PATH already.
func DefaultToolchains(windowsSDK string) *Toolchains {
	return NewToolchains(map[string]Toolchain{
		"windows-amd64": {CC: "gcc", CXX: "g++", SDKRoot: windowsSDK, Description: "Windows x64 (MSYS2 UCRT64 GCC)"},
		"windows-arm64": {CC: "gcc", CXX: "g++", SDKRoot: windowsSDK, Description: "Windows ARM64 (MSYS2 UCRT64 GCC)"},
		"linux-amd64":   {CC: "x86_64-linux-gnu-gcc", CXX: "x86_64-linux-gnu-g++", Description: "Linux x64 (cross toolchain)"},
		"linux-arm64":   {CC: "aarch64-linux-gnu-gcc", CXX: "aarch64-linux-gnu-g++", Description: "Linux ARM64 (cross toolchain)"},
		"darwin-amd64":  {CC: "o64-clang", CXX: "o64-clang++", Description: "macOS Intel (osxcross)"},
		"darwin-arm64":  {CC: "oa64-clang", CXX: "oa64-clang++", Description: "macOS Apple Silicon (osxcross)"},
	})
}

// Lookup returns the toolchain registered for key.
func (t *Toolchains) Lookup(key string) (Toolchain, bool) {
	tc, ok := t.m[key]
	return tc, ok
}

// With returns a copy of the registry with key set to tc.
func (t *Toolchains) With(key string, tc Toolchain) *Toolchains {
	n := NewToolchains(t.m)
	n.m[key] = tc
	return n
}
