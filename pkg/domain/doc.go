/*
Package domain contains the core types shared by the Ludus pattern packages.

It defines the sentinel errors and the lifecycle hooks that the command queue
and the state machine report through. This package is kept pure and free of
I/O, so every other package can depend on it without creating cycles.

# Key Entities

  - Hooks: optional callbacks fired on state transitions and command execution.
  - StateEvent / CommandEvent / DrainEvent: payloads carried by those hooks.
  - Err*: sentinel errors, wrapped at call sites and matched with errors.Is.
*/
package domain
