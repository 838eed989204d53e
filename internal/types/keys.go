package types

// Key prefixes for every entity persisted in the kv store. The exact patterns
// are part of the storage contract, a compatible deployment can read a store
// written by any other build.
const (
	KeyPrefixCustomer = "customer:"
	KeyPrefixPlan     = "plan:"
	KeyPrefixInvoice  = "invoice:"
	KeyPrefixPayment  = "payment:"
	KeyPrefixRetry    = "retry:"
)

func CustomerKey(id string) string {
	return KeyPrefixCustomer + id
}

func PlanKey(id string) string {
	return KeyPrefixPlan + id
}

func InvoiceKey(id string) string {
	return KeyPrefixInvoice + id
}

func PaymentKey(id string) string {
	return KeyPrefixPayment + id
}

// RetryKey marks a failed invoice as due for automated reattempt. The marker
// carries no payload, its presence alone schedules the retry.
func RetryKey(invoiceID string) string {
	return KeyPrefixRetry + invoiceID
}
