// Package driven defines the outbound ports of the synchroniser: the
// document store it writes to and the remote resource fetcher it reads
// from. Adapters implement these; core services depend only on them.
package driven
