// Package conv provides the token conversion registry used by compiled
// record plans. It maps a (source representation, target type) pair to a
// converter factory, seeded with built-ins for the primitive widths, string,
// bool, time, decimal, uuid and a single generic enum handler, and is
// extensible with caller supplied entries registered before plan compilation.
package conv
