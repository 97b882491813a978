// Package clock provides a tiny time abstraction.
//
// Code that reasons about windows or calendar values (the rate limiter, the
// notification footer year) depends on Clocker instead of calling time.Now
// directly, so tests can pin time with Fixed.
package clock
