// Package ui provides fading panels and a terminal renderer for them.
//
// A Panel fades in when enabled and out when disabled. It only accepts
// input once fully shown. Fades advance with Tick, like every other
// tick-driven component. Manager groups named panels and Renderer draws the
// visible ones on a tcell screen.
package ui
