// Package showcase is the demo game behind `ludus play` and `ludus commands`:
// a menu and a gameplay state toggled with Space, a timer panel, and a
// counting command run through the queue.
package showcase
