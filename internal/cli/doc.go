// Package cli wires the sync pipeline together behind the root command:
// settings bootstrap, credential loading, the parallel portal scrapes, the
// reconciliation pass, and calendar publishing.
package cli
