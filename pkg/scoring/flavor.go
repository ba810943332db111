package scoring

// flavorsByRating holds the cosmetic labels for each tier. The draw is
// uniform over the tier's list.
var flavorsByRating = map[Rating][]string{
	Excellent: {
		"firing",
		"all-time",
		"drop everything",
		"pumping",
	},
	Good: {
		"fun out there",
		"worth the paddle",
		"solid session material",
	},
	Marginal: {
		"rideable, barely",
		"longboard weather",
		"better than the office",
	},
	Poor: {
		"save your wax",
		"victory at sea",
		"maybe check the cam first",
	},
}

func (e *Engine) flavor(r Rating) string {
	labels := flavorsByRating[r]
	if len(labels) == 0 {
		return ""
	}
	return labels[e.intn(len(labels))]
}
