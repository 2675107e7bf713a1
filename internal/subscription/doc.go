// Package subscription implements the subscription intake workflow.
//
// The service layer owns the ordering and atomicity rules for bringing a new
// subscriber into pending_confirmation state. It depends on the Repository
// and ConfirmationMailer interfaces defined in this package and never
// imports from api/.
//
// Repository implementations live in repository/postgres/.
package subscription
