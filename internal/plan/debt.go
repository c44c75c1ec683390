package plan

// computeDebt derives, per material, how much of the required amount the
// account's inventory cannot cover. Materials the inventory fully covers are
// omitted from the map. QP debt is computed the same way against the
// account's QP balance.
func computeDebt(required *Requirements, snapshot AccountSnapshot) (map[int]int, int64) {
	debt := make(map[int]int)
	if required == nil {
		return debt, 0
	}

	for itemID, entry := range required.Items {
		deficit := entry.Total - snapshot.Items[itemID]
		if deficit > 0 {
			debt[itemID] = deficit
		}
	}

	var qpDebt int64
	if deficit := required.QP - snapshot.QP; deficit > 0 {
		qpDebt = deficit
	}
	return debt, qpDebt
}
