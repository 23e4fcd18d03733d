// Package bus provides synchronous publish/subscribe channels owned by a host.
//
// Two flavours share one Registry:
//
//   - typed topics, one per Go type, obtained with For[T];
//   - string-keyed channels carrying untyped payloads.
//
// Delivery is synchronous, in subscription order, over a snapshot taken when
// Publish starts: handlers may subscribe or cancel freely while being called.
package bus
