//go:build release

package instrument

// DebugBuild is true unless the binary is built with '-tags release'.
const DebugBuild = false
