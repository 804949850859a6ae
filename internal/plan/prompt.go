// Package plan builds the model prompt, renders model output into safe
// HTML, and provides the deterministic offline mock generator.
package plan

import (
	"fmt"
	"strings"

	"vietfit/internal/metrics"
)

// Section marker lines the model is instructed to emit. The formatter and
// the mock generator both key off these.
const (
	SectionMeal     = "## KẾ HOẠCH ĂN 7 NGÀY"
	SectionShopping = "## DANH SÁCH MUA SẮM"
	SectionExercise = "## KẾ HOẠCH LUYỆN TẬP 7 NGÀY"
	SectionBMI      = "## PHÂN TÍCH BMI VÀ CẢNH BÁO SỨC KHỎE"
)

// BuildPrompt produces the full natural-language instruction for the
// model: the user's derived metrics plus the fixed section layout. It
// always succeeds given numeric inputs.
func BuildPrompt(d metrics.Derived, diet, activity string) string {
	dietText := ""
	if diet != "" && diet != "none" {
		dietText = fmt.Sprintf("Ưu tiên/không ăn: %s.", diet)
	}

	var b strings.Builder

	fmt.Fprintf(&b,
		"Hãy tạo kế hoạch ăn 7 ngày theo phong cách ẩm thực Việt Nam, mỗi ngày khoảng %d kcal. "+
			"Bao gồm 3 bữa chính và 1-2 bữa phụ, phân bố macro (protein/carbs/fat) sơ bộ. "+
			"Người dùng có BMI %.1f, TDEE ~%d kcal, mục tiêu: %s, mức hoạt động: %s. %s "+
			"Ghi rõ khẩu phần theo đơn vị Việt Nam (ví dụ: chén cơm, miếng, lát, bát canh). Cho công thức ngắn gọn dễ nấu.\n\n",
		int(d.TargetCalories), d.BMI, int(d.TDEE), d.Goal, activity, dietText)

	b.WriteString("Định dạng kết quả theo các phần sau:\n\n")
	b.WriteString(SectionMeal + "\n")
	b.WriteString("[Liệt kê từng ngày với format: Ngày X: Bữa sáng | Bữa trưa | Bữa phụ | Bữa tối | Ước tính kcal]\n\n")
	b.WriteString(SectionShopping + "\n")
	b.WriteString("[Liệt kê tất cả nguyên liệu cần mua cho 7 ngày, ước lượng khối lượng (kg/gram), phân loại theo nhóm: rau củ, thịt cá, hạt ngũ cốc, gia vị...]\n\n")

	b.WriteString(SectionExercise + "\n")
	fmt.Fprintf(&b, "[Đề xuất kế hoạch luyện tập chi tiết cho 7 ngày, phù hợp với BMI %.1f và mục tiêu %s:\n", d.BMI, d.Goal)
	b.WriteString("- Nếu mục tiêu giảm cân: ưu tiên cardio (đi bộ nhanh, chạy bộ nhẹ, đạp xe), kết hợp sức bền, thời gian và cường độ cụ thể\n")
	b.WriteString("- Nếu mục tiêu tăng cân: ưu tiên bài tập sức mạnh (tạ, bodyweight), ít cardio, thời gian nghỉ ngơi\n")
	b.WriteString("- Nếu duy trì: kết hợp cardio + sức mạnh + yoga/giãn cơ cân bằng\n")
	b.WriteString("Ghi rõ: loại bài tập, thời gian/số lượng, mức độ (nhẹ/vừa/nặng), lưu ý an toàn]\n\n")

	b.WriteString(SectionBMI + "\n")
	fmt.Fprintf(&b, "[Phân tích chỉ số BMI %.1f:\n", d.BMI)
	b.WriteString("- Nếu BMI < 18.5: cảnh báo gầy, liệt kê rủi ro (suy dinh dưỡng, giảm miễn dịch, loãng xương), khuyến nghị khám bác sĩ nếu < 16\n")
	b.WriteString("- Nếu 18.5 ≤ BMI < 25: nhận xét bình thường, khuyến nghị duy trì\n")
	b.WriteString("- Nếu 25 ≤ BMI < 30: cảnh báo thừa cân, rủi ro tim mạch/chuyển hóa, khuyến nghị giảm cân an toàn\n")
	b.WriteString("- Nếu BMI ≥ 30: cảnh báo béo phì, rủi ro cao (tiểu đường, huyết áp, tim mạch), khuyến nghị tham vấn bác sĩ chuyên khoa\n")
	b.WriteString("Đưa lời khuyên cụ thể và an toàn về chế độ ăn + vận động phù hợp với tình trạng BMI]\n")

	return b.String()
}
