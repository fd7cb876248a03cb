// Package strobe implements the strobe controller: the single owner of the
// strobe/panic state, the repeating flash timer and the calls into the torch,
// alarm and messaging drivers.
//
// All state changes, from user toggles and from timer ticks alike, happen
// under one mutex, so each tick is atomic with respect to the state. At most
// one timer is live per controller; restarting it cancels the previous one
// first, and a generation counter discards a tick that raced a cancel.
package strobe
