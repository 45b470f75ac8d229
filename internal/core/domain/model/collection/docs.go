// Package collection groups a customer's orders for joint delivery.
//
// A customer's new order joins their most recent collection if it was created
// within MembershipWindow; otherwise a new collection is opened. The
// collection accumulates the members' totals and deposits, and its status
// (in_progress, partial, complete) is derived from member positions.
package collection
