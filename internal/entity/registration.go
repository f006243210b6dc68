package entity

// RegistrationCreated is the result code register_user reports for a new account.
const RegistrationCreated = 1

// Registration is a validated, normalized account request ready to be
// forwarded to register_user.
type Registration struct {
	Username string
	Password string
	Email    string
	Sex      string
}

// RegistrationOutcome carries the OUT values of register_user.
type RegistrationOutcome struct {
	Result  int
	Message string
}

// Created reports whether the procedure created the account. Every other
// result code is a rejection.
func (o RegistrationOutcome) Created() bool {
	return o.Result == RegistrationCreated
}
