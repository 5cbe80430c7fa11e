package inventory

// TransactionKind classifies a ledger mutation in the audit trail.
// The codes mirror the transaction_kinds reference table; operational
// code resolves them through lookup.KindLookup before recording.
type TransactionKind string

const (
	// KindPurchase credits stock received against a purchase order
	KindPurchase TransactionKind = "PURCHASE"
	// KindSale debits stock shipped against a sale order
	KindSale TransactionKind = "SALE"
	// KindReturnIn credits stock returned by a customer
	KindReturnIn TransactionKind = "RETURN_IN"
	// KindReturnOut debits stock returned to a supplier
	KindReturnOut TransactionKind = "RETURN_OUT"
	// KindAdjustmentPlus credits stock via manual adjustment
	KindAdjustmentPlus TransactionKind = "ADJUSTMENT_PLUS"
	// KindAdjustmentMinus debits stock via manual adjustment
	KindAdjustmentMinus TransactionKind = "ADJUSTMENT_MINUS"
	// KindTransferIn credits the destination store of a transfer
	KindTransferIn TransactionKind = "TRANSFER_IN"
	// KindTransferOut debits the source store of a transfer
	KindTransferOut TransactionKind = "TRANSFER_OUT"
	// KindDamageLoss debits stock written off as damaged or lost
	KindDamageLoss TransactionKind = "DAMAGE_LOSS"
	// KindSample debits stock given out as samples
	KindSample TransactionKind = "SAMPLE"
	// KindAllocation moves general stock into a variant bucket (paired entries)
	KindAllocation TransactionKind = "ALLOCATION"
	// KindRecall moves variant stock back to the general bucket (paired entries)
	KindRecall TransactionKind = "RECALL"
)

// AllKinds returns every defined transaction kind.
func AllKinds() []TransactionKind {
	return []TransactionKind{
		KindPurchase, KindSale,
		KindReturnIn, KindReturnOut,
		KindAdjustmentPlus, KindAdjustmentMinus,
		KindTransferIn, KindTransferOut,
		KindDamageLoss, KindSample,
		KindAllocation, KindRecall,
	}
}

// String returns the string representation of the kind
func (k TransactionKind) String() string {
	return string(k)
}

// IsValid returns true if the kind is one of the defined codes
func (k TransactionKind) IsValid() bool {
	switch k {
	case KindPurchase, KindSale,
		KindReturnIn, KindReturnOut,
		KindAdjustmentPlus, KindAdjustmentMinus,
		KindTransferIn, KindTransferOut,
		KindDamageLoss, KindSample,
		KindAllocation, KindRecall:
		return true
	}
	return false
}

// IsIncrease returns true for kinds that always credit stock.
// Allocation and Recall are bidirectional: their paired entries carry the
// sign in QuantityChanged instead.
func (k TransactionKind) IsIncrease() bool {
	switch k {
	case KindPurchase, KindReturnIn, KindAdjustmentPlus, KindTransferIn:
		return true
	}
	return false
}

// IsDecrease returns true for kinds that always debit stock.
func (k TransactionKind) IsDecrease() bool {
	switch k {
	case KindSale, KindReturnOut, KindAdjustmentMinus, KindTransferOut, KindDamageLoss, KindSample:
		return true
	}
	return false
}
