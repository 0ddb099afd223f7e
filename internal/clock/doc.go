// Package clock drives scenario time.
//
// A [Driver] owns the elapsed simulation time of one scenario and moves it
// through three states:
//
//	Stopped --Play--> Running --Pause--> Stopped
//	Running --terminal condition--> Finished --Reset--> Stopped
//
// Time only advances through [Driver.Tick]. Each tick carries the [Token]
// handed out by [Driver.Play]; Pause, Reset and reaching the terminal
// condition retire the token, so a tick that was scheduled before the clock
// stopped is dropped instead of advancing state that has since been torn
// down.
//
// A [Timeline] supplied by the scenario decides where time may go: it clamps
// a candidate time and reports whether the scenario has reached its end.
// A timeline that also implements [Holder] can freeze time while the
// clock keeps running.
//
// [Loop] is the headless scheduler used outside the TUI.
package clock
