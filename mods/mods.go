// Package mods bundles the small set of pure-Lua helper modules shipped
// with the interpreter itself, so require("strict") works with no
// external package installed.
package mods

import "embed"

//go:embed files
var Files embed.FS
