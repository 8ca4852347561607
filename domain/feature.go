package domain

// FeatureCount is the width of the raw clinical feature space.
const FeatureCount = 10

// SelectedFeatureCount is K, the number of top-importance features the model
// was trained on.
const SelectedFeatureCount = 6

// FeatureSpec describes one raw input column in model order.
type FeatureSpec struct {
	// Key is the JSON field name on the wire.
	Key string
	// Column is the column name the model was trained with.
	Column string
	// DisplayName is what attribution results report.
	DisplayName string
}

// FeatureSchema is the canonical column order. Scaler statistics, selector
// importances and the model itself are all indexed by this order.
var FeatureSchema = [FeatureCount]FeatureSpec{
	{Key: "age", Column: "Age", DisplayName: "Age"},
	{Key: "gender", Column: "Gender", DisplayName: "Gender"},
	{Key: "total_bilirubin", Column: "TB", DisplayName: "Total Bilirubin"},
	{Key: "direct_bilirubin", Column: "DB", DisplayName: "Direct Bilirubin"},
	{Key: "alkaline_phosphatase", Column: "Alkphos", DisplayName: "Alkaline Phosphatase"},
	{Key: "alt", Column: "SGPT", DisplayName: "ALT (SGPT)"},
	{Key: "ast", Column: "SGOT", DisplayName: "AST (SGOT)"},
	{Key: "total_proteins", Column: "TP", DisplayName: "Total Proteins"},
	{Key: "albumin", Column: "ALB", DisplayName: "Albumin"},
	{Key: "ag_ratio", Column: "A/G Ratio", DisplayName: "A/G Ratio"},
}

// FeatureColumns returns the training column names in schema order.
func FeatureColumns() []string {
	cols := make([]string, FeatureCount)
	for i, f := range FeatureSchema {
		cols[i] = f.Column
	}
	return cols
}

// DisplayNames resolves display names for the given schema indices.
func DisplayNames(idx []int) []string {
	names := make([]string, len(idx))
	for i, j := range idx {
		names[i] = FeatureSchema[j].DisplayName
	}
	return names
}
