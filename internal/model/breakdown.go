package model

// CostBreakdown is the derived cost of a configuration. It is recomputed on
// every input change and only persisted inside a Quote, Job or Invoice.
type CostBreakdown struct {
	Frame       float64          `json:"frame"`
	Glazing     float64          `json:"glazing"`
	Mats        [MaxMats]float64 `json:"mats"`
	Printing    float64          `json:"printing"`
	Backer      float64          `json:"backer"`
	Labour      float64          `json:"labour"`
	SubtotalRaw float64          `json:"subtotal_raw"`
	Subtotal    float64          `json:"subtotal"`
	Tax         float64          `json:"tax"`
	Total       float64          `json:"total"`
}

// CostLine is one named amount of a breakdown.
type CostLine struct {
	Label  string
	Amount float64
}

// Lines returns the named material and labour lines in display order.
// Mat lines are listed only for slots with a non-zero amount.
func (b CostBreakdown) Lines() []CostLine {
	lines := []CostLine{
		{Label: "Frame", Amount: b.Frame},
		{Label: "Glazing", Amount: b.Glazing},
	}
	for i, m := range b.Mats {
		if m == 0 {
			continue
		}
		lines = append(lines, CostLine{Label: matLabel(i), Amount: m})
	}
	lines = append(lines,
		CostLine{Label: "Printing", Amount: b.Printing},
		CostLine{Label: "Backer", Amount: b.Backer},
		CostLine{Label: "Labour", Amount: b.Labour},
	)
	return lines
}

// MatsTotal sums the per-mat amounts.
func (b CostBreakdown) MatsTotal() float64 {
	var t float64
	for _, m := range b.Mats {
		t += m
	}
	return t
}

func matLabel(i int) string {
	return [...]string{"Mat 1", "Mat 2", "Mat 3"}[i]
}
