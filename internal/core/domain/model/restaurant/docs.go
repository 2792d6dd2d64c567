// Package restaurant provides the read-only restaurant snapshot the order
// core validates against at creation time: the active flag and the product
// catalog with authoritative names and prices.
//
// Nothing in the order lifecycle ever mutates a restaurant; the snapshot
// exists so that client-submitted product data is checked against what the
// restaurant actually offers before an order is accepted.
package restaurant
