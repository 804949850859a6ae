package plan

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"
)

// sectionKind identifies which of the four requested sections a marker
// line introduces.
type sectionKind int

const (
	sectionUnknown sectionKind = iota
	sectionMealPlan
	sectionShoppingList
	sectionExercisePlan
	sectionBMIAnalysis
)

// severity is the alert tier for the BMI analysis block.
type severity int

const (
	severitySuccess severity = iota
	severityWarning
	severityDanger
)

var (
	mealRowRe     = regexp.MustCompile(`(?i)^(Ngày\s*\d+)[:\s]+(.*)`)
	dayLineRe     = regexp.MustCompile(`(?i)^(Ngày|Day)\s*\d+`)
	mealSplitRe   = regexp.MustCompile(`\n|-\s*`)
	bulletRe      = regexp.MustCompile(`^[-*•]\s*`)
	groupHeaderRe = regexp.MustCompile(`^\p{Lu}[^:]+:\s*$`)
)

// sectionKeywords maps each section kind to the substrings (uppercased)
// that identify its header, in both Vietnamese and English.
var sectionKeywords = map[sectionKind][]string{
	sectionBMIAnalysis:  {"PHÂN TÍCH BMI", "BMI ANALYSIS", "CẢNH BÁO"},
	sectionMealPlan:     {"KẾ HOẠCH ĂN", "MEAL PLAN"},
	sectionShoppingList: {"DANH SÁCH MUA SẮM", "SHOPPING"},
	sectionExercisePlan: {"LUYỆN TẬP", "EXERCISE"},
}

// classifySection matches a section header against the known keyword sets,
// case-insensitively.
func classifySection(header string) sectionKind {
	upper := strings.ToUpper(header)
	for _, kind := range []sectionKind{sectionBMIAnalysis, sectionMealPlan, sectionShoppingList, sectionExercisePlan} {
		for _, kw := range sectionKeywords[kind] {
			if strings.Contains(upper, kw) {
				return kind
			}
		}
	}
	return sectionUnknown
}

var (
	dangerWords  = []string{"béo phì", "rất thấp", "nghiêm trọng", "obese", "severe"}
	warningWords = []string{"thừa cân", "thiếu cân", "gầy", "overweight", "underweight", "cảnh báo"}
)

// classifySeverity picks the alert tier for a BMI analysis body from the
// sentinel words it contains. Danger words win over warning words; text
// with neither reads as a healthy result.
func classifySeverity(content string) severity {
	lower := strings.ToLower(content)
	for _, w := range dangerWords {
		if strings.Contains(lower, w) {
			return severityDanger
		}
	}
	for _, w := range warningWords {
		if strings.Contains(lower, w) {
			return severityWarning
		}
	}
	return severitySuccess
}

func (s severity) alertClass() string {
	switch s {
	case severityDanger:
		return "danger"
	case severityWarning:
		return "warning"
	default:
		return "success"
	}
}

func (s severity) iconClass() string {
	switch s {
	case severityDanger:
		return "bi-exclamation-octagon-fill"
	case severityWarning:
		return "bi-exclamation-triangle-fill"
	default:
		return "bi-check-circle-fill"
	}
}

// dayRow is one rendered row of the 7-day meal table. JSON tags cover the
// structured "days" response shape.
type dayRow struct {
	Label     string `json:"label"`
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Snack     string `json:"snack"`
	Dinner    string `json:"dinner"`
}

// FormatHTML renders raw model text into sanitized HTML. The decision
// chain, highest priority first: section markers, an embedded JSON "days"
// object, plain "Ngày N"/"Day N" blocks, and finally escaped preformatted
// text. All user-facing text is escaped; only markup emitted here is
// literal.
func FormatHTML(text string) string {
	if text == "" {
		return ""
	}

	if strings.Contains(text, "##") {
		return formatSections(text)
	}

	stripped := strings.TrimSpace(text)
	if rows, ok := parseJSONDays(stripped); ok {
		return renderDaysTable(rows)
	}

	if rows, ok := parseDayBlocks(stripped); ok {
		return renderDaysTable(rows)
	}

	return `<pre class="plan-output">` + html.EscapeString(text) + `</pre>`
}

// section is one marker-delimited block of the response, in source order.
type section struct {
	kind    sectionKind
	content string
}

// splitSections cuts the text at "##" marker lines and classifies each
// block by its header.
func splitSections(text string) []section {
	var out []section
	kind := sectionUnknown
	var content []string
	flush := func() {
		if kind != sectionUnknown {
			out = append(out, section{kind: kind, content: strings.Join(content, "\n")})
		}
		content = nil
	}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "##") {
			flush()
			kind = classifySection(strings.TrimSpace(strings.ReplaceAll(trimmed, "##", "")))
			continue
		}
		content = append(content, line)
	}
	flush()
	return out
}

// findSection returns the first block of the given kind.
func findSection(sections []section, kind sectionKind) (string, bool) {
	for _, s := range sections {
		if s.kind == kind {
			return s.content, true
		}
	}
	return "", false
}

// formatSections renders a marker-structured response: BMI alert first for
// visibility, then the meal table and the two card lists.
func formatSections(text string) string {
	sections := splitSections(text)

	var b strings.Builder
	b.WriteString(`<div class="gemini-response">` + "\n")

	if content, ok := findSection(sections, sectionBMIAnalysis); ok {
		sev := classifySeverity(content)
		fmt.Fprintf(&b, `<div class="alert alert-%s border-start border-4 mb-4">`+"\n", sev.alertClass())
		fmt.Fprintf(&b, `<h5 class="alert-heading"><i class="bi %s me-2"></i>Phân tích BMI &amp; Cảnh báo sức khỏe</h5>`+"\n", sev.iconClass())
		b.WriteString(formatParagraphs(content))
		b.WriteString("\n</div>\n")
	}

	if content, ok := findSection(sections, sectionMealPlan); ok {
		b.WriteString(`<h4 class="text-primary mt-3"><i class="bi bi-calendar-week me-2"></i>Kế hoạch ăn 7 ngày</h4>` + "\n")
		b.WriteString(renderMealTable(content))
	}

	if content, ok := findSection(sections, sectionShoppingList); ok {
		b.WriteString(`<h5 class="text-success mt-4"><i class="bi bi-cart-fill me-2"></i>Danh sách mua sắm</h5>` + "\n")
		b.WriteString(`<div class="shopping-list">` + "\n")
		b.WriteString(formatGroupedList(content))
		b.WriteString("\n</div>\n")
	}

	if content, ok := findSection(sections, sectionExercisePlan); ok {
		b.WriteString(`<h5 class="text-info mt-4"><i class="bi bi-heart-pulse-fill me-2"></i>Kế hoạch luyện tập</h5>` + "\n")
		b.WriteString(`<div class="exercise-plan">` + "\n")
		b.WriteString(formatGroupedList(content))
		b.WriteString("\n</div>\n")
	}

	b.WriteString("</div>")
	return b.String()
}

// renderMealTable parses "Ngày N: sáng | trưa | phụ | tối | kcal" lines
// into a table. Missing fields are padded to empty cells; commas within a
// meal become line breaks for readability.
func renderMealTable(content string) string {
	var b strings.Builder
	b.WriteString(`<div class="table-responsive">` + "\n")
	b.WriteString(`<table class="table table-bordered table-hover align-middle">` + "\n")
	b.WriteString(`<thead><tr><th>Ngày</th><th>Bữa sáng</th><th>Bữa trưa</th><th>Bữa phụ</th><th>Bữa tối</th><th>Kcal</th></tr></thead>` + "\n")
	b.WriteString("<tbody>\n")

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		m := mealRowRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		parts := strings.Split(m[2], "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		for len(parts) < 5 {
			parts = append(parts, "")
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td><span class=\"badge bg-success\">%s</span></td></tr>\n",
			html.EscapeString(m[1]),
			mealCell(parts[0]), mealCell(parts[1]), mealCell(parts[2]), mealCell(parts[3]),
			html.EscapeString(parts[4]))
	}

	b.WriteString("</tbody></table>\n</div>\n")
	return b.String()
}

func mealCell(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), ",", "<br>")
}

// formatGroupedList renders shopping/exercise content as cards grouped by
// header lines (either **bold** or a capitalized line ending in a colon).
// When no headers are present the items fall back to one flat list.
func formatGroupedList(content string) string {
	lines := nonEmptyLines(content)

	var groups []struct {
		title string
		items []string
	}
	var flat []string
	startGroup := func(title string) {
		groups = append(groups, struct {
			title string
			items []string
		}{title: title})
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**"):
			startGroup(strings.Trim(strings.Trim(line, "*"), ": "))
		case groupHeaderRe.MatchString(line):
			startGroup(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ":")))
		default:
			item := bulletRe.ReplaceAllString(line, "")
			if item == "" {
				continue
			}
			if len(groups) == 0 {
				flat = append(flat, item)
			} else {
				groups[len(groups)-1].items = append(groups[len(groups)-1].items, item)
			}
		}
	}

	if len(groups) == 0 {
		var b strings.Builder
		b.WriteString(`<ul class="list-group">` + "\n")
		for _, item := range flat {
			fmt.Fprintf(&b, `<li class="list-group-item"><i class="bi bi-check-circle-fill text-success me-2"></i>%s</li>`+"\n", html.EscapeString(item))
		}
		b.WriteString("</ul>")
		return b.String()
	}

	var b strings.Builder
	b.WriteString(`<div class="row g-3">` + "\n")
	for _, g := range groups {
		if len(g.items) == 0 {
			continue
		}
		b.WriteString(`<div class="col-md-6">` + "\n" + `<div class="card shadow-sm h-100">` + "\n")
		fmt.Fprintf(&b, `<div class="card-header bg-primary text-white"><strong>%s</strong></div>`+"\n", html.EscapeString(g.title))
		b.WriteString(`<ul class="list-group list-group-flush">` + "\n")
		for _, item := range g.items {
			fmt.Fprintf(&b, `<li class="list-group-item"><i class="bi bi-check-circle text-success me-2"></i>%s</li>`+"\n", html.EscapeString(item))
		}
		b.WriteString("</ul>\n</div>\n</div>\n")
	}
	b.WriteString("</div>")
	return b.String()
}

// formatParagraphs renders free text as escaped paragraphs, turning single
// newlines into <br>.
func formatParagraphs(content string) string {
	var parts []string
	for _, para := range strings.Split(strings.TrimSpace(content), "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		var escaped []string
		for _, line := range strings.Split(para, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			escaped = append(escaped, html.EscapeString(line))
		}
		parts = append(parts, "<p>"+strings.Join(escaped, "<br>")+"</p>")
	}
	return strings.Join(parts, "\n")
}

// parseJSONDays looks for an embedded JSON object with a "days" array.
// Each entry is either a structured day record or a bare string, which
// lands in the first column.
func parseJSONDays(stripped string) ([]dayRow, bool) {
	start := strings.Index(stripped, "{")
	end := strings.LastIndex(stripped, "}")
	if start == -1 || end <= start {
		return nil, false
	}

	var obj struct {
		Days []json.RawMessage `json:"days"`
	}
	if err := json.Unmarshal([]byte(stripped[start:end+1]), &obj); err != nil || obj.Days == nil {
		return nil, false
	}

	rows := make([]dayRow, 0, len(obj.Days))
	for _, raw := range obj.Days {
		var row dayRow
		if err := json.Unmarshal(raw, &row); err == nil {
			rows = append(rows, row)
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			rows = append(rows, dayRow{Label: s})
		}
	}
	return rows, true
}

// parseDayBlocks groups loose "Ngày N"/"Day N" text into per-day rows,
// splitting each block's trailing lines into up to four meal slots.
func parseDayBlocks(stripped string) ([]dayRow, bool) {
	lines := nonEmptyLines(stripped)

	var starts []int
	for i, l := range lines {
		if dayLineRe.MatchString(l) {
			starts = append(starts, i)
		}
	}
	if len(starts) == 0 {
		return nil, false
	}

	var rows []dayRow
	for idx, start := range starts {
		end := len(lines)
		if idx+1 < len(starts) {
			end = starts[idx+1]
		}
		block := strings.Join(lines[start:end], "\n")

		tokens := mealSplitRe.Split(block, -1)
		label := tokens[0]
		var meals []string
		for _, tok := range tokens[1:] {
			tok = strings.TrimSpace(tok)
			if tok != "" && len(meals) < 4 {
				meals = append(meals, tok)
			}
		}
		for len(meals) < 4 {
			meals = append(meals, "")
		}
		rows = append(rows, dayRow{Label: label, Breakfast: meals[0], Lunch: meals[1], Snack: meals[2], Dinner: meals[3]})
	}
	return rows, true
}

// renderDaysTable renders day rows from the JSON and plain-text paths.
func renderDaysTable(rows []dayRow) string {
	var b strings.Builder
	b.WriteString(`<table class="table table-sm table-bordered">` + "\n")
	b.WriteString(`<thead class="table-light"><tr><th>Ngày</th><th>Bữa sáng</th><th>Bữa trưa</th><th>Bữa phụ</th><th>Bữa tối</th></tr></thead>` + "\n")
	b.WriteString("<tbody>\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(r.Label), html.EscapeString(r.Breakfast), html.EscapeString(r.Lunch),
			html.EscapeString(r.Snack), html.EscapeString(r.Dinner))
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
