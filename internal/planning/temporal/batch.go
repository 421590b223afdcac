package temporal

// GetBatchHint asks the adapter whether goalCount of itemType should be made
// with one batch operator instead of goalCount singleton operators.
func GetBatchHint(adapter Adapter, itemType string, goalCount int, ops []BatchOperator) BatchHint {
	pref := adapter.PreferBatch(itemType, goalCount, ops, adapter.BatchThreshold())
	if !pref.UseBatch || pref.Operator == nil {
		return BatchHint{}
	}
	return BatchHint{
		UseBatch:   true,
		OperatorID: pref.Operator.OpID,
		BatchSize:  pref.BatchSize,
	}
}
