// Package services contains the orchestration layer: the page-scoped
// bulk writer, the cycle runner and the interval scheduler. Services
// depend only on the driven ports, never on adapters.
package services
