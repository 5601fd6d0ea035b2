// internal/services/agronomy_service.go
package services

// Rule-based crop models. Both are deterministic threshold tables; the
// thresholds are product-supplied and not derived from any dataset.

type SoilSample struct {
	Ph         float64
	Moisture   float64
	Nitrogen   float64
	Phosphorus float64
	Potassium  float64
}

type SoilModelResult struct {
	RecommendedCrop string  `json:"recommended_crop"`
	ExpectedYield   float64 `json:"expected_yield"`
	ProfitScore     float64 `json:"profit_score"`
	RiskLevel       string  `json:"risk_level"`
	Explanation     string  `json:"explanation"`
}

type CropAdvice struct {
	RecommendedCrop string `json:"recommended_crop"`
	Explanation     string `json:"explanation"`
}

const soilModelExplanation = "Recommendation based on soil pH, moisture and NPK levels with local price-weighted yield simulation (mock quantum optimizer)."

// RunSoilModel scores a soil sample against the cultivation threshold
// table. Order matters: the first matching rule wins.
func RunSoilModel(sample SoilSample) SoilModelResult {
	result := SoilModelResult{
		RecommendedCrop: "Paddy",
		ExpectedYield:   20,
		ProfitScore:     7,
		RiskLevel:       "Medium",
		Explanation:     soilModelExplanation,
	}

	switch {
	case sample.Ph >= 6 && sample.Ph <= 7.5 && sample.Moisture > 40 && sample.Nitrogen > 120:
		result.RecommendedCrop = "Paddy (High Yield)"
		result.ExpectedYield = 25
		result.ProfitScore = 8.5
		result.RiskLevel = "Low"
	case sample.Ph < 6 && sample.Moisture < 30:
		result.RecommendedCrop = "Millets"
		result.ExpectedYield = 15
		result.ProfitScore = 7.5
		result.RiskLevel = "Low"
	case sample.Ph > 7.5 && sample.Potassium > 200:
		result.RecommendedCrop = "Groundnut"
		result.ExpectedYield = 18
		result.ProfitScore = 7
		result.RiskLevel = "Medium"
	}

	return result
}

// RecommendCrop is the public pH-only advisor.
func RecommendCrop(ph float64) CropAdvice {
	switch {
	case ph < 6:
		return CropAdvice{RecommendedCrop: "Millets", Explanation: "Low pH suitable"}
	case ph <= 7:
		return CropAdvice{RecommendedCrop: "Wheat", Explanation: "Neutral soil ideal"}
	default:
		return CropAdvice{RecommendedCrop: "Cotton", Explanation: "High pH resistant"}
	}
}
