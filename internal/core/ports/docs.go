// Package ports declares the boundaries of the application core: the
// persistence contracts the command and query handlers depend on, the
// unit-of-work transaction boundary, and the outbound notification
// emitter. Adapters implement these interfaces; the core never imports an
// adapter.
package ports
