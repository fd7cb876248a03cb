// Package config defines the settings used by the walk-buddy binaries and
// provides helpers to load, validate and save them in YAML format.
//
// Config selects the torch, alarm and messaging drivers, the contact
// settings file and the relay server parameters.
package config
