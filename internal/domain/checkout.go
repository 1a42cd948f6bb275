package domain

// CheckoutStep identifies one page of the multi-step checkout flow.
type CheckoutStep string

const (
	CheckoutStepInfo            CheckoutStep = "info"
	CheckoutStepPayment         CheckoutStep = "payment"
	CheckoutStepConfirm         CheckoutStep = "confirm"
	CheckoutStepWaitingSupplier CheckoutStep = "waiting_supplier"
)
