// Package services contains stateless domain services that coordinate
// logic spanning multiple aggregates.
//
// RatingBoard derives a worker's reputation from their full rating
// history: the aggregate rating as an arithmetic mean and the badge set
// from the threshold rules.
package services
