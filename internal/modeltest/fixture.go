// Package modeltest builds small, hand-checkable model bundles for tests.
package modeltest

import (
	"liverRisk/domain"
	"liverRisk/pkg/mlmodel"
)

// Importances select schema columns [0 2 3 4 5 6]: Age, Total Bilirubin,
// Direct Bilirubin, Alkaline Phosphatase, ALT and AST.
var Importances = []float64{0.05, 0.01, 0.2, 0.15, 0.12, 0.1, 0.09, 0.02, 0.03, 0.04}

// Bundle returns a fully valid bundle.
//
// The "xgb" member holds two stumps in the scaled selected space: Total
// Bilirubin above 2.0 adds 1.2 (else -0.8) and Alkaline Phosphatase above 200
// adds 0.9 (else -0.5). Its expected margin is -0.08. The "rf" member is one
// stump on ALT at 60. The meta-learner uses passthrough.
func Bundle() *mlmodel.Bundle {
	return &mlmodel.Bundle{
		Version: "test-1",
		Scaler: &mlmodel.Scaler{
			Kind:    mlmodel.ScalerMinMax,
			DataMin: make([]float64, domain.FeatureCount),
			DataMax: []float64{100, 1, 50, 25, 2000, 2000, 5000, 10, 6, 3},
		},
		Selector: &mlmodel.Selector{FeatureImportances: append([]float64(nil), Importances...)},
		Model: &mlmodel.Stack{
			Estimators: []mlmodel.Estimator{
				{
					Name:  "xgb",
					Kind:  mlmodel.KindGBDT,
					Split: mlmodel.SplitLess,
					Trees: []mlmodel.Tree{
						Stump(1, 0.04, 100, []float64{-0.8}, 60, []float64{1.2}, 40),
						Stump(3, 0.1, 100, []float64{-0.5}, 70, []float64{0.9}, 30),
					},
				},
				{
					Name: "rf",
					Kind: mlmodel.KindForest,
					Trees: []mlmodel.Tree{
						Stump(4, 0.03, 100, []float64{0.8, 0.2}, 60, []float64{0.3, 0.7}, 40),
					},
				},
			},
			FinalEstimator: &mlmodel.Logistic{
				Coef:      []float64{3, 2, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5},
				Intercept: -3,
			},
			Passthrough: true,
		},
		Background: [][]float64{
			{0.3, 0.01, 0.005, 0.05, 0.01, 0.005},
			{0.5, 0.1, 0.05, 0.2, 0.1, 0.05},
			{0.6, 0.02, 0.01, 0.08, 0.02, 0.01},
		},
	}
}

// Stump is a depth-one tree on feature f.
func Stump(f int, threshold, cover float64, left []float64, leftCover float64, right []float64, rightCover float64) mlmodel.Tree {
	return mlmodel.Tree{Nodes: []mlmodel.Node{
		{Feature: f, Threshold: threshold, Left: 1, Right: 2, Cover: cover},
		{Leaf: true, Value: left, Cover: leftCover},
		{Leaf: true, Value: right, Cover: rightCover},
	}}
}

func ptr[T any](v T) *T { return &v }

// NormalInput has every marker within its reference range.
func NormalInput() domain.PredictionInput {
	return domain.PredictionInput{
		Age:                 ptr(45.0),
		Gender:              ptr(domain.BinaryCode(1)),
		TotalBilirubin:      ptr(0.8),
		DirectBilirubin:     ptr(0.2),
		AlkalinePhosphatase: ptr(120.0),
		ALT:                 ptr(30.0),
		AST:                 ptr(28.0),
		TotalProteins:       ptr(7.0),
		Albumin:             ptr(4.2),
		AGRatio:             ptr(1.2),
	}
}

// AbnormalInput has every warned marker at least three times its limit.
func AbnormalInput() domain.PredictionInput {
	in := NormalInput()
	in.TotalBilirubin = ptr(5.0)
	in.DirectBilirubin = ptr(2.5)
	in.AlkalinePhosphatase = ptr(500.0)
	in.ALT = ptr(200.0)
	in.AST = ptr(150.0)
	return in
}
