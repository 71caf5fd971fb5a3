// Package config loads resource-bundler settings.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults
//  2. the YAML config file (resource-bundler.yaml when present)
//  3. environment variables, including those from a .env file
//  4. command-line flags, applied by the caller
//
// # Schema
//
//	root: res                  # resource root directory
//	declaration: internal/res/resources.go
//	definition: internal/res/resources_data.go
//	target: go                 # go | cpp
//	signedness: signed         # signed | unsigned
//	package: res               # go target
//	class: ___res___           # cpp target
//	collisions: reject         # reject | suffix
//	track_removals: false
//	exclude: [.bak]            # extra file-name suffixes; CMakeLists.txt is always skipped
//	log_level: warn
package config
