// Package config manages configuration: a YAML file overlaid by
// environment variables, with an fsnotify-driven hot reload.
//
// Precedence: defaults < config file < environment.
package config
