// Package file persists configuration as a TOML document under the
// user's home directory, ~/.loupe/config.toml by default. Values are
// written through atomically via a temp file rename so a crash cannot
// leave a half-written config behind.
package file
