package utils

// Wallet transaction reference prefixes. The ledger's unique reference index
// makes each of these one-shot.
const (
	TopupReferencePrefix  = "TOPUP-"
	RefundReferencePrefix = "REFUND_"
	FailedMarkerPrefix    = "FAILED_"
)

// DefaultBundleValidity is assigned to bundles created by the catalog sync;
// DataMart does not expose validity periods.
const DefaultBundleValidity = "30 days"
