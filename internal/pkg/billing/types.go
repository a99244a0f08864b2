package billing

// SubscribeInput is the validated input for Service.Subscribe.
type SubscribeInput struct {
	PlanCode        string `validate:"required"`
	BillingInterval string `validate:"required,oneof=month year"`
	// PaymentMethod is an opaque display descriptor, e.g. "visa ****4242".
	// No sensitive payment data is ever retained.
	PaymentMethod string `validate:"required,max=191"`
}
