// Package engine holds the pure production-line rules: batch partitioning,
// shift and pause arithmetic, the checkout delay signal, efficiency, capacity
// rebalancing and the session lifecycle. Nothing here touches storage; the
// service layer loads rows and feeds them in.
package engine
