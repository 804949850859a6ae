package plan

import (
	"html"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatHTML_FallbackIsEscapedPre(t *testing.T) {
	// No markers, no JSON, no day lines: the output must be exactly the
	// escaped input wrapped in <pre>.
	input := "just some advice: eat more <vegetables> & drink water"
	got := FormatHTML(input)
	want := `<pre class="plan-output">` + html.EscapeString(input) + `</pre>`
	assert.Equal(t, want, got)
}

func TestFormatHTML_EmptyInput(t *testing.T) {
	assert.Equal(t, "", FormatHTML(""))
}

func TestFormatHTML_MealTableRow(t *testing.T) {
	got := FormatHTML("## KẾ HOẠCH ĂN 7 NGÀY\nNgày 1: A | B | C | D | 500 kcal")

	assert.Contains(t, got, "<td>A</td>")
	assert.Contains(t, got, "<td>B</td>")
	assert.Contains(t, got, "<td>C</td>")
	assert.Contains(t, got, "<td>D</td>")
	assert.Contains(t, got, `<span class="badge bg-success">500 kcal</span>`)
	// One header row plus exactly one data row.
	assert.Equal(t, 2, strings.Count(got, "<tr>"))
}

func TestFormatHTML_MealTablePadsMissingFields(t *testing.T) {
	got := FormatHTML("## KẾ HOẠCH ĂN 7 NGÀY\nNgày 2: phở gà | cơm cá")
	assert.Contains(t, got, "<td>phở gà</td>")
	assert.Contains(t, got, "<td>cơm cá</td>")
	// Snack, dinner and kcal cells are present but empty.
	assert.Contains(t, got, `<span class="badge bg-success"></span>`)
}

func TestFormatHTML_SeverityTiers(t *testing.T) {
	cases := []struct {
		name    string
		content string
		class   string
	}{
		{"obese is danger", "Cảnh báo: béo phì, nguy cơ cao tiểu đường.", "alert-danger"},
		{"english obese is danger", "Patient is obese and at high risk.", "alert-danger"},
		{"overweight is warning", "Bạn đang thừa cân, nên giảm calo.", "alert-warning"},
		{"healthy is success", "Chỉ số trong ngưỡng khỏe mạnh, hãy duy trì.", "alert-success"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatHTML("## PHÂN TÍCH BMI VÀ CẢNH BÁO SỨC KHỎE\n" + tc.content)
			assert.Contains(t, got, tc.class)
		})
	}
}

func TestFormatHTML_SectionContentIsEscaped(t *testing.T) {
	got := FormatHTML("## PHÂN TÍCH BMI VÀ CẢNH BÁO SỨC KHỎE\n<script>alert(1)</script> khỏe mạnh")
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "&lt;script&gt;")
}

func TestFormatHTML_GroupedShoppingList(t *testing.T) {
	text := "## DANH SÁCH MUA SẮM\n" +
		"**Nhóm tinh bột:**\n- Gạo: 2kg\n- Yến mạch: 500g\n" +
		"Rau củ:\n- Chuối: 7 quả\n"
	got := FormatHTML(text)

	assert.Contains(t, got, "<strong>Nhóm tinh bột</strong>")
	assert.Contains(t, got, "<strong>Rau củ</strong>")
	assert.Contains(t, got, "Gạo: 2kg")
	assert.Contains(t, got, "Chuối: 7 quả")
	assert.Contains(t, got, `class="card shadow-sm h-100"`)
}

func TestFormatHTML_FlatListWhenNoHeaders(t *testing.T) {
	got := FormatHTML("## KẾ HOẠCH LUYỆN TẬP 7 NGÀY\n- đi bộ 30 phút\n- yoga 20 phút")
	assert.Contains(t, got, `<ul class="list-group">`)
	assert.Contains(t, got, "đi bộ 30 phút")
	assert.NotContains(t, got, "card-header")
}

func TestFormatHTML_JSONDays(t *testing.T) {
	text := `Here is your plan: {"days":[{"label":"Ngày 1","breakfast":"Phở","lunch":"Cơm","snack":"Táo","dinner":"Cá kho"},"Ngày 2: tự chọn"]}`
	got := FormatHTML(text)

	require.Contains(t, got, "<table")
	assert.Contains(t, got, "<td>Phở</td>")
	assert.Contains(t, got, "<td>Cá kho</td>")
	// Bare string entries land in the first column with empty meals.
	assert.Contains(t, got, "<td>Ngày 2: tự chọn</td>")
}

func TestFormatHTML_DayBlocks(t *testing.T) {
	text := "Day 1\n- Oatmeal\n- Chicken rice\n- Yogurt\n- Grilled fish\nDay 2\n- Eggs\n- Beef noodles"
	got := FormatHTML(text)

	require.Contains(t, got, "<table")
	assert.Contains(t, got, "<td>Day 1</td>")
	assert.Contains(t, got, "<td>Oatmeal</td>")
	assert.Contains(t, got, "<td>Grilled fish</td>")
	assert.Contains(t, got, "<td>Day 2</td>")
	assert.Contains(t, got, "<td>Eggs</td>")
}

func TestFormatHTML_SectionOrderIsFixed(t *testing.T) {
	// Sections arrive meal-first but render with the BMI alert on top.
	text := SectionMeal + "\nNgày 1: a | b | c | d | 100 kcal\n" +
		SectionBMI + "\nkhỏe mạnh\n"
	got := FormatHTML(text)

	alertIdx := strings.Index(got, "alert-success")
	tableIdx := strings.Index(got, "<table")
	require.NotEqual(t, -1, alertIdx)
	require.NotEqual(t, -1, tableIdx)
	assert.Less(t, alertIdx, tableIdx)
}

func TestClassifySection(t *testing.T) {
	cases := []struct {
		header string
		want   sectionKind
	}{
		{"KẾ HOẠCH ĂN 7 NGÀY", sectionMealPlan},
		{"Meal Plan for the week", sectionMealPlan},
		{"DANH SÁCH MUA SẮM", sectionShoppingList},
		{"Shopping list", sectionShoppingList},
		{"KẾ HOẠCH LUYỆN TẬP 7 NGÀY", sectionExercisePlan},
		{"Exercise schedule", sectionExercisePlan},
		{"PHÂN TÍCH BMI VÀ CẢNH BÁO SỨC KHỎE", sectionBMIAnalysis},
		{"BMI analysis", sectionBMIAnalysis},
		{"Random heading", sectionUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, classifySection(tc.header), "header %q", tc.header)
	}
}
