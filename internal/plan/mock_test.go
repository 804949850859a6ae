package plan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockResponse_Deterministic(t *testing.T) {
	prompt := "Hãy tạo kế hoạch ăn 7 ngày, mỗi ngày khoảng 1800 kcal. Người dùng có BMI 22.9."
	first := MockResponse(prompt)
	second := MockResponse(prompt)
	assert.Equal(t, first, second, "same prompt must yield byte-identical output")
}

func TestMockResponse_ContainsAllSections(t *testing.T) {
	got := MockResponse("kế hoạch 2000 kcal, BMI 22.9")
	for _, marker := range []string{SectionBMI, SectionMeal, SectionShopping, SectionExercise} {
		assert.Contains(t, got, marker)
	}
	// Seven day rows in the meal plan section.
	meal := sectionOf(t, got, SectionMeal)
	rows := 0
	for _, line := range strings.Split(meal, "\n") {
		if strings.HasPrefix(line, "Ngày ") {
			rows++
		}
	}
	assert.Equal(t, 7, rows)
}

func TestMockResponse_KcalExtraction(t *testing.T) {
	got := MockResponse("mỗi ngày khoảng 1726 kcal")
	assert.Contains(t, got, "kcal")
	// Different kcal values seed different plans.
	other := MockResponse("mỗi ngày khoảng 2600 kcal")
	assert.NotEqual(t, got, other)
}

func TestMockResponse_BMITiers(t *testing.T) {
	cases := []struct {
		name   string
		prompt string
		expect string
	}{
		{"severe underweight", "BMI 15.2, 2300 kcal", "nghiêm trọng"},
		{"underweight", "BMI 17.5, 2300 kcal", "Thiếu cân"},
		{"normal", "BMI 22.9, 2000 kcal", "Bình thường"},
		{"overweight", "BMI 27.0, 1700 kcal", "Thừa cân"},
		{"obese", "BMI 39.1, 1700 kcal", "Béo phì"},
		{"missing BMI", "2000 kcal", "Không có thông tin BMI"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, MockResponse(tc.prompt), tc.expect)
		})
	}
}

func TestMockResponse_ObeseRendersDangerAlert(t *testing.T) {
	// The mock path must trigger the same danger-class alert as a real
	// model response for an obese BMI.
	html := FormatHTML(MockResponse("BMI 39.1, mục tiêu 1700 kcal"))
	assert.Contains(t, html, "alert-danger")
}

func TestMockResponse_NormalRendersSuccessAlert(t *testing.T) {
	html := FormatHTML(MockResponse("BMI 22.9, mục tiêu 2000 kcal"))
	assert.Contains(t, html, "alert-success")
}

func TestMockResponse_Vegetarian(t *testing.T) {
	got := MockResponse("ăn chay, 2000 kcal, BMI 22.9")
	require.Contains(t, got, SectionShopping)

	assert.NotContains(t, got, "Nhóm protein động vật")
	assert.NotContains(t, got, "Ức gà")
	// Meal lines must not sample chicken or beef dishes.
	assert.NotContains(t, got, "ức gà")
	assert.NotContains(t, got, "thịt bò")
}

func TestMockResponse_OverweightShrinksPortions(t *testing.T) {
	got := MockResponse("BMI 27.0, 1500 kcal")
	meal := sectionOf(t, got, SectionMeal)
	assert.NotContains(t, meal, "1 chén cơm", "overweight plans use half rice portions")
}

func TestMockResponse_UnderweightGrowsPortions(t *testing.T) {
	got := MockResponse("BMI 17.5, 2300 kcal")
	meal := sectionOf(t, got, SectionMeal)
	assert.NotContains(t, meal, "1 chén cơm +", "underweight plans use 1.5 rice portions")
}

// sectionOf cuts one marker-delimited section out of mock output.
func sectionOf(t *testing.T, text, marker string) string {
	t.Helper()
	start := strings.Index(text, marker)
	require.NotEqual(t, -1, start, "marker %q missing", marker)
	rest := text[start+len(marker):]
	if end := strings.Index(rest, "\n## "); end != -1 {
		rest = rest[:end]
	}
	return rest
}
