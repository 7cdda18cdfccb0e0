// Package configs provides embedded configuration templates for daylog.
//
// Templates are embedded at build time so `daylog config init` works from
// any distribution. Precedence of the files they seed is documented in
// internal/config Load().
package configs

import _ "embed"

// UserConfigTemplate is written by `daylog config init` to
// ~/.config/daylog/config.yaml.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string

// ProjectConfigTemplate is written by `daylog config init --project` to
// .daylog.yaml in the current directory.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string
