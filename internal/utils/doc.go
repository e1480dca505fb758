// Package utils provides small helpers shared across the Kauri CLI:
// service-name validation and project root discovery.
package utils
