package plan

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

var (
	kcalRe = regexp.MustCompile(`(\d{3,4})\s*kcal`)
	bmiRe  = regexp.MustCompile(`bmi\s*[:=]?\s*(\d{1,2}(?:\.\d+)?)`)
)

var vegetarianWords = []string{"chay", "vegetarian", "vegan"}

// MockResponse is the offline substitute for a real model call. It reads
// the target kcal, BMI and diet back out of the prompt text, seeds the
// RNG with the kcal value so identical prompts yield identical plans, and
// emits the same section-marker format the formatter expects.
func MockResponse(prompt string) string {
	targetKcal := 2000
	if m := kcalRe.FindStringSubmatch(prompt); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			targetKcal = v
		}
	}

	lower := strings.ToLower(prompt)
	isVegetarian := false
	for _, w := range vegetarianWords {
		if strings.Contains(lower, w) {
			isVegetarian = true
			break
		}
	}

	var bmiVal float64
	hasBMI := false
	if m := bmiRe.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			bmiVal = v
			hasBMI = true
		}
	}

	rng := rand.New(rand.NewSource(int64(targetKcal)))

	var b strings.Builder
	writeMockAnalysis(&b, bmiVal, hasBMI)
	writeMockMealPlan(&b, rng, targetKcal, bmiVal, hasBMI, isVegetarian)
	writeMockShoppingList(&b, isVegetarian)
	writeMockExercisePlan(&b, bmiVal, hasBMI)
	return b.String()
}

// writeMockAnalysis emits the BMI section with the five fixed tiers:
// <16, <18.5, <25, <30, ≥30.
func writeMockAnalysis(b *strings.Builder, bmiVal float64, hasBMI bool) {
	b.WriteString(SectionBMI + "\n")
	if !hasBMI {
		b.WriteString("Không có thông tin BMI rõ ràng để phân tích.\n")
		return
	}
	switch {
	case bmiVal < 16:
		fmt.Fprintf(b, "**BMI hiện tại: %.1f - Gầy mức độ nghiêm trọng**\n\n", bmiVal)
		b.WriteString("**Cảnh báo nghiêm trọng**: BMI dưới 16 cho thấy tình trạng suy dinh dưỡng nặng.\n\n")
		b.WriteString("**Rủi ro sức khỏe:**\n- Suy giảm miễn dịch nghiêm trọng\n- Loãng xương, dễ gãy xương\n- Rối loạn nội tiết\n- Suy tim, rối loạn nhịp tim\n\n")
		b.WriteString("**Khuyến nghị:** Cần khám bác sĩ chuyên khoa dinh dưỡng NGAY. Tăng calo từ từ dưới sự giám sát y tế.\n")
	case bmiVal < 18.5:
		fmt.Fprintf(b, "**BMI hiện tại: %.1f - Thiếu cân**\n\n", bmiVal)
		b.WriteString("**Rủi ro sức khỏe:**\n- Thiếu hụt dinh dưỡng, vitamin\n- Giảm khả năng miễn dịch\n- Mệt mỏi, chóng mặt\n\n")
		b.WriteString("**Khuyến nghị:** Tăng khẩu phần ăn, ưu tiên thực phẩm giàu năng lượng (hạt, bơ, sữa, thịt nạc). Ăn 5-6 bữa nhỏ/ngày.\n")
	case bmiVal >= 30:
		fmt.Fprintf(b, "**BMI hiện tại: %.1f - Béo phì**\n\n", bmiVal)
		b.WriteString("**Cảnh báo cao**: BMI ≥ 30 tăng nguy cơ các bệnh mạn tính.\n\n")
		b.WriteString("**Rủi ro sức khỏe:**\n- Bệnh tim mạch, đột quỵ\n- Tiểu đường type 2\n- Huyết áp cao\n- Khó thở khi ngủ\n- Thoái hóa khớp\n\n")
		b.WriteString("**Khuyến nghị:** Tham vấn bác sĩ chuyên khoa tim mạch và nội tiết. Giảm cân từ từ (0.5-1kg/tuần), kết hợp vận động có cường độ.\n")
	case bmiVal >= 25:
		fmt.Fprintf(b, "**BMI hiện tại: %.1f - Thừa cân**\n\n", bmiVal)
		b.WriteString("**Rủi ro sức khỏe:**\n- Tăng nguy cơ tim mạch\n- Rối loạn chuyển hóa\n- Viêm khớp do tăng tải trọng\n\n")
		b.WriteString("**Khuyến nghị:** Giảm calo vừa phải (300-500 kcal/ngày), tăng hoạt động thể chất. Ưu tiên rau xanh, protein nạc, giảm carb tinh chế.\n")
	default:
		fmt.Fprintf(b, "**BMI hiện tại: %.1f - Bình thường**\n\n", bmiVal)
		b.WriteString("Chỉ số BMI trong ngưỡng khỏe mạnh. Hãy duy trì chế độ ăn cân bằng và hoạt động thể chất đều đặn.\n\n")
		b.WriteString("**Khuyến nghị:** Tiếp tục chế độ ăn đa dạng, 30 phút vận động/ngày, ngủ đủ giấc.\n")
	}
}

// writeMockMealPlan samples seven days with replacement from fixed
// Vietnamese dish pools. The pools are substring-modified for a
// vegetarian diet and to bias portion wording when the BMI indicates
// over- or underweight.
func writeMockMealPlan(b *strings.Builder, rng *rand.Rand, targetKcal int, bmiVal float64, hasBMI, isVegetarian bool) {
	b.WriteString("\n" + SectionMeal + "\n\n")

	breakfasts := []string{
		"1 bát phở gà nhỏ + 1 quả chuối",
		"1 bát bún riêu nhỏ",
		"1 chén cháo yến mạch + 1 quả chuối",
		"1 bánh mì ốp la (1 quả trứng) + rau",
		"1 chén yến mạch + sữa",
		"1 bánh cuốn nhỏ + ít nước chấm",
	}
	lunches := []string{
		"1 chén cơm + 100g ức gà xào rau",
		"1 chén cơm + 100g cá nướng + rau luộc",
		"1 phở gà nhỏ (ít dầu)",
		"1 chén cơm + đậu hũ xào + rau",
		"1 chén cơm + salad cá ngừ",
		"1 chén cơm + thịt bò xào rau",
	}
	snacks := []string{
		"1 hộp sữa chua", "1 quả táo + ít hạt", "1 nắm hạt điều", "1 ly sinh tố bơ nhỏ", "1 quả chuối",
	}
	dinners := []string{
		"1 chén cơm + 120g cá kho + canh rau",
		"1 chén cơm + 120g gà áp chảo + canh",
		"1 chén cơm + đậu hũ xào + rau",
		"1 chén cơm + cá nướng + rau",
		"1 phần mỳ Ý nhỏ (ít sốt) + salad",
		"1 chén cơm + cá quay + rau",
	}

	if isVegetarian {
		lunches = replaceAll(lunches, "ức gà", "đậu hũ", "cá", "đậu hũ", "thịt bò", "rau")
		dinners = replaceAll(dinners, "cá", "đậu hũ", "gà", "đậu hũ", "thịt", "rau")
	}

	if hasBMI {
		switch {
		case bmiVal >= 25:
			// Smaller carb portions, grilled over fried.
			lunches = replaceAll(lunches, "1 chén cơm", "1/2 chén cơm", "gà", "ức gà", "cá", "cá nướng")
			dinners = replaceAll(dinners, "1 chén cơm", "1/2 chén cơm")
			breakfasts = replaceAll(breakfasts, "1 chén cháo", "1 bát cháo nhỏ", "bánh mì", "bánh mì nguyên cám nhỏ")
		case bmiVal < 18.5:
			// Larger portions plus energy-dense additions.
			lunches = replaceAll(lunches, "1 chén cơm", "1.5 chén cơm", "100g", "150g")
			dinners = replaceAll(dinners, "1 chén cơm", "1.5 chén cơm")
			for i, s := range breakfasts {
				if !strings.Contains(s, "sữa") {
					breakfasts[i] = s + " + 1 ly sữa"
				}
			}
		}
	}

	// Rough per-day baseline: breakfast 400 + lunch 600 + snack 150 + dinner 800.
	const baseKcal = 1950
	approxKcal := int(float64(baseKcal) * float64(targetKcal) / float64(baseKcal))

	for day := 1; day <= 7; day++ {
		fmt.Fprintf(b, "Ngày %d: %s | %s | %s | %s | ~%d kcal\n",
			day,
			breakfasts[rng.Intn(len(breakfasts))],
			lunches[rng.Intn(len(lunches))],
			snacks[rng.Intn(len(snacks))],
			dinners[rng.Intn(len(dinners))],
			approxKcal)
	}
}

func writeMockShoppingList(b *strings.Builder, isVegetarian bool) {
	b.WriteString("\n" + SectionShopping + "\n\n")
	b.WriteString("**Nhóm tinh bột:**\n- Gạo/cơm: 2-3 kg\n- Bún/phở khô: 500g\n- Yến mạch: 500g\n- Bánh mì nguyên cám: 1 ổ\n\n")
	if !isVegetarian {
		b.WriteString("**Nhóm protein động vật:**\n- Ức gà: 700g\n- Cá (hồi/rô phi): 800g\n- Trứng: 1 vỉ (10 quả)\n\n")
	}
	b.WriteString("**Nhóm protein thực vật:**\n- Đậu hũ: 500g\n- Hạt điều: 200g\n- Sữa chua: 7 hộp\n\n")
	b.WriteString("**Rau củ:**\n- Rau xanh hỗn hợp: 1.5kg\n- Chuối: 7 quả\n- Táo: 3 quả\n- Bơ: 2 quả\n\n")
	b.WriteString("**Gia vị & khác:**\n- Dầu ăn, muối, tiêu, tương ớt\n- Nước mắm, tỏi, hành\n")
}

// writeMockExercisePlan picks one of three fixed 7-day templates:
// maintenance for a normal (or unknown) BMI, weight loss for ≥25,
// weight gain otherwise.
func writeMockExercisePlan(b *strings.Builder, bmiVal float64, hasBMI bool) {
	b.WriteString("\n" + SectionExercise + "\n\n")
	switch {
	case !hasBMI || (bmiVal >= 18.5 && bmiVal < 25):
		b.WriteString("**Mục tiêu: Duy trì sức khỏe**\n\n")
		b.WriteString("- Ngày 1: Đi bộ nhanh 30 phút (5-6 km/h)\n")
		b.WriteString("- Ngày 2: Yoga 25 phút (tư thế cơ bản)\n")
		b.WriteString("- Ngày 3: Chạy bộ nhẹ 20 phút + giãn cơ 10 phút\n")
		b.WriteString("- Ngày 4: Nghỉ ngơi hoặc đi bộ nhẹ 15 phút\n")
		b.WriteString("- Ngày 5: Tập sức mạnh (tạ nhẹ/bodyweight) 30 phút\n")
		b.WriteString("- Ngày 6: Đi bộ 30 phút + yoga 15 phút\n")
		b.WriteString("- Ngày 7: Nghỉ ngơi tích cực (giãn cơ nhẹ)\n")
	case bmiVal >= 25:
		b.WriteString("**Mục tiêu: Giảm cân an toàn**\n\n")
		b.WriteString("- Ngày 1: Đi bộ nhanh 40 phút (nhịp tim 60-70% max)\n")
		b.WriteString("- Ngày 2: Đạp xe hoặc bơi 30 phút\n")
		b.WriteString("- Ngày 3: Đi bộ nhanh 35 phút + tạ nhẹ 15 phút\n")
		b.WriteString("- Ngày 4: Yoga hoặc giãn cơ 30 phút\n")
		b.WriteString("- Ngày 5: Cardio nhẹ (đi bộ/xe đạp) 45 phút\n")
		b.WriteString("- Ngày 6: Bài tập sức bền (squat, plank) 25 phút\n")
		b.WriteString("- Ngày 7: Nghỉ ngơi hoặc đi bộ nhẹ 20 phút\n")
		b.WriteString("\n**Lưu ý:** Bắt đầu từ từ, tăng cường độ dần. Uống đủ nước. Nếu có đau khớp/tim đập nhanh bất thường, dừng và khám bác sĩ.\n")
	default:
		b.WriteString("**Mục tiêu: Tăng cân lành mạnh**\n\n")
		b.WriteString("- Ngày 1: Tập tạ nhẹ (nhóm cơ lớn) 30 phút\n")
		b.WriteString("- Ngày 2: Đi bộ nhẹ 20 phút (không cardio mạnh)\n")
		b.WriteString("- Ngày 3: Nghỉ ngơi, ưu tiên phục hồi\n")
		b.WriteString("- Ngày 4: Tập sức mạnh (bodyweight) 25 phút\n")
		b.WriteString("- Ngày 5: Yoga nhẹ 20 phút\n")
		b.WriteString("- Ngày 6: Tập tạ nhẹ 30 phút\n")
		b.WriteString("- Ngày 7: Nghỉ ngơi hoàn toàn\n")
		b.WriteString("\n**Lưu ý:** Tránh cardio mạnh (tiêu hao calo). Ưu tiên tăng cơ bắp. Ngủ đủ 8-9 giờ/đêm.\n")
	}
}

// replaceAll applies old/new replacement pairs to every string in the pool,
// returning a new slice.
func replaceAll(pool []string, pairs ...string) []string {
	out := make([]string, len(pool))
	for i, s := range pool {
		for j := 0; j+1 < len(pairs); j += 2 {
			s = strings.ReplaceAll(s, pairs[j], pairs[j+1])
		}
		out[i] = s
	}
	return out
}
