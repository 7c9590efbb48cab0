// Package kernel contains shared value objects used across the domain model.
//
// Currently it provides UUID, the identifier type for all aggregates and
// entities. Domain packages depend on kernel; kernel depends on nothing in the
// domain.
package kernel
