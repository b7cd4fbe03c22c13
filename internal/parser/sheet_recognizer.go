package parser

// SheetRecognizer scores sheets by the canonical columns their header carries
type SheetRecognizer struct {
	aliases AliasSet
}

// NewSheetRecognizer creates a recognizer, nil means default aliases
func NewSheetRecognizer(aliases AliasSet) *SheetRecognizer {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	return &SheetRecognizer{aliases: aliases}
}

// Recognize scores one sheet header. A sheet without an equipment column
// never qualifies, whatever else it has.
func (r *SheetRecognizer) Recognize(sheetName string, headers []string) SheetRecognitionResult {
	result := SheetRecognitionResult{SheetName: sheetName}

	matchCount := 0
	for _, field := range Fields {
		if r.aliases.HasColumn(headers, field) {
			matchCount++
			continue
		}
		result.MissingFields = append(result.MissingFields, string(field))
	}

	result.HasEquipment = r.aliases.HasColumn(headers, FieldEquipment)
	if !result.HasEquipment {
		return result
	}
	result.Confidence = float64(matchCount) / float64(len(Fields))
	return result
}

// BestSheet picks the highest scoring sheet; ties keep workbook order.
func (r *SheetRecognizer) BestSheet(names []string, headers map[string][]string) (SheetRecognitionResult, bool) {
	var best SheetRecognitionResult
	found := false
	for _, name := range names {
		res := r.Recognize(name, headers[name])
		if !res.HasEquipment {
			continue
		}
		if !found || res.Confidence > best.Confidence {
			best = res
			found = true
		}
	}
	return best, found
}
