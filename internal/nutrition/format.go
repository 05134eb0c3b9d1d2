package nutrition

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	ReplyHeader  = "ผลการวิเคราะห์โภชนาการ"
	TotalsHeader = "📊 รวมทั้งหมด"
	FallbackText = "ขออภัย ไม่สามารถวิเคราะห์ข้อมูลได้ กรุณาลองใหม่อีกครั้ง"
	ErrorPrefix  = "เกิดข้อผิดพลาด: "
)

// BuildReply picks one of the three reply shapes for a lookup result.
func BuildReply(foods []FoodItem, err error) string {
	switch {
	case err != nil:
		return ErrorPrefix + err.Error()
	case len(foods) == 0:
		return FallbackText
	default:
		return FormatFoods(foods)
	}
}

// FormatFoods renders a block per item in the order given, then the totals.
// Calories use 0 decimals; fat, protein and carbs use 1.
func FormatFoods(foods []FoodItem) string {
	lines := []string{ReplyHeader, ""}

	for _, f := range foods {
		lines = append(lines,
			"🍽 "+formatQty(f.ServingQty)+" "+f.ServingUnit+" "+capitalize(f.Name)+
				" ("+formatFixed(f.ServingWeightGrams, 0)+" กรัม)",
		)
		lines = append(lines, metricLines(f.Calories, f.Fat, f.Protein, f.Carbs)...)
		lines = append(lines, "")
	}

	t := Sum(foods)
	lines = append(lines, TotalsHeader)
	lines = append(lines, metricLines(t.Calories, t.Fat, t.Protein, t.Carbs)...)

	return strings.Join(lines, "\n")
}

func metricLines(calories, fat, protein, carbs float64) []string {
	return []string{
		"  พลังงาน: " + formatFixed(calories, 0) + " kcal",
		"  ไขมัน: " + formatFixed(fat, 1) + " g",
		"  โปรตีน: " + formatFixed(protein, 1) + " g",
		"  คาร์โบไฮเดรต: " + formatFixed(carbs, 1) + " g",
	}
}

func formatFixed(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	// avoid "-0" / "-0.0" from tiny negative rounding noise
	if strings.Trim(s, "-0.") == "" {
		return strconv.FormatFloat(0, 'f', decimals, 64)
	}
	return s
}

// formatQty prints the shortest form: 1, 0.5, 1.25.
func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
