package nutrition

// Reference: https://docx.syndigo.com/developers/docs/natural-language-for-nutrients

type nutrientsRequest struct {
	Query    string `json:"query"`
	Timezone string `json:"timezone"`
}

// nutrientsResponse is the body of POST /v2/natural/nutrients.
// Foods may be absent entirely.
type nutrientsResponse struct {
	Foods []FoodItem `json:"foods"`
}

// FoodItem is one matched food. Numeric fields absent or null upstream stay 0.
type FoodItem struct {
	Name               string  `json:"food_name"`
	ServingQty         float64 `json:"serving_qty"`
	ServingUnit        string  `json:"serving_unit"`
	ServingWeightGrams float64 `json:"serving_weight_grams"`
	Calories           float64 `json:"nf_calories"`
	Fat                float64 `json:"nf_total_fat"`
	Protein            float64 `json:"nf_protein"`
	Carbs              float64 `json:"nf_total_carbohydrate"`
}

type Totals struct {
	Calories float64
	Fat      float64
	Protein  float64
	Carbs    float64
}

// Sum adds the macro fields of foods in order.
func Sum(foods []FoodItem) Totals {
	var t Totals
	for _, f := range foods {
		t.Calories += f.Calories
		t.Fat += f.Fat
		t.Protein += f.Protein
		t.Carbs += f.Carbs
	}
	return t
}

// errorResponse is what Nutritionix sends alongside 4xx/5xx.
type errorResponse struct {
	Message string `json:"message"`
}
