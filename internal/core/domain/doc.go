// Package domain holds the core types of the synchroniser: resource
// kinds and their identity/lifecycle policies, the stored document form
// and the pure mapper that derives it, configuration, and cycle reports.
// Nothing here performs I/O.
package domain
