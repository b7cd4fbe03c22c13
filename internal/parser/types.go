package parser

// SheetRecognitionResult how well a sheet looks like a maintenance register
type SheetRecognitionResult struct {
	SheetName     string   `json:"sheetName"`
	Confidence    float64  `json:"confidence"` // 0-1
	HasEquipment  bool     `json:"hasEquipment"`
	MissingFields []string `json:"missingFields"`
}

// NormalizeReport row counts of one normalization run
type NormalizeReport struct {
	TotalRows   int `json:"totalRows"`
	KeptRows    int `json:"keptRows"`
	DroppedRows int `json:"droppedRows"`
}
