// Package order contains the Order aggregate and its lifecycle state
// machine. All mutation goes through the aggregate's transition methods,
// which check the authorization guard (owner or assigned supplier) before
// the state guard derived from the transition table.
package order
