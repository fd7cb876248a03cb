// Package device builds the torch, alarm and messaging drivers selected in
// the configuration. A backend that cannot be initialised degrades to its
// None variant with a warning, so the strobe keeps working on any machine.
package device
