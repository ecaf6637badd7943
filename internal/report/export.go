package report

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/linemk/order-days/internal/domain/models"
)

// utf8BOM нужен, чтобы Excel правильно показал арабский текст
const utf8BOM = "\uFEFF"

var csvHeader = []string{"Name", "Quantity", "Total ILS", "Picked", "Paid", "Needs Change", "Notes"}

var nonWord = regexp.MustCompile(`[^\w-]+`)

var newlines = regexp.MustCompile(`\r?\n`)

// Filename - имя файла выгрузки: she-store-<дата>-<заголовок>.<ext>
func Filename(day *models.OrderDay, ext string) string {
	title := fmt.Sprintf("day_%d", day.ID)
	if day.Title != nil && *day.Title != "" {
		title = nonWord.ReplaceAllString(*day.Title, "_")
	}
	return fmt.Sprintf("she-store-%s-%s.%s", day.OrderDate.String(), title, ext)
}

func WriteCSV(w io.Writer, entries []*models.Entry) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		record := []string{
			e.CustomerName,
			strconv.Itoa(e.Quantity),
			e.TotalILS.StringFixed(2),
			yesNo(e.PickedUp),
			yesNo(e.Paid),
			yesNo(e.NeedsChange),
			newlines.ReplaceAllString(notesOf(e), " "),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

type printRow struct {
	Name        string
	Quantity    int
	Total       string
	PickedUp    bool
	Paid        bool
	NeedsChange bool
	Notes       string
}

type printData struct {
	Date          string
	Title         string
	Rows          []printRow
	TotalQuantity int64
	TotalILS      string
}

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head>
  <meta charset="UTF-8" />
  <title>تقرير اليوم</title>
  <style>
    body { font-family: system-ui, -apple-system, "Segoe UI", sans-serif; margin: 20px; }
    h1, h2, p { margin: 0 0 8px 0; }
    table { width: 100%; border-collapse: collapse; margin-top: 12px; font-size: 12px; }
    th, td { border: 1px solid #999; padding: 4px 6px; text-align: right; }
    th { background: #f0f0f0; }
    tfoot td { font-weight: bold; background: #f7f7f7; }
  </style>
</head>
<body>
  <h1>شي ستور – تقرير الطلبات</h1>
  <p>التاريخ: {{.Date}}</p>
  <p>العنوان: {{.Title}}</p>
  <table>
    <thead>
      <tr>
        <th>الاسم</th>
        <th>القطع</th>
        <th>الإجمالي (₪)</th>
        <th>استلم</th>
        <th>دفع</th>
        <th>يحتاج فكة</th>
        <th>ملاحظات</th>
      </tr>
    </thead>
    <tbody>
{{- range .Rows}}
      <tr>
        <td>{{.Name}}</td>
        <td>{{.Quantity}}</td>
        <td>{{.Total}}</td>
        <td>{{if .PickedUp}}✓{{end}}</td>
        <td>{{if .Paid}}✓{{end}}</td>
        <td>{{if .NeedsChange}}✓{{end}}</td>
        <td>{{.Notes}}</td>
      </tr>
{{- end}}
    </tbody>
    <tfoot>
      <tr>
        <td>الإجمالي</td>
        <td>{{.TotalQuantity}}</td>
        <td>{{.TotalILS}}</td>
        <td colspan="4"></td>
      </tr>
    </tfoot>
  </table>
  <script>
    window.onload = function() { window.print(); };
  </script>
</body>
</html>
`))

// WritePrint рендерит печатную версию дня; печать запускается при открытии страницы
func WritePrint(w io.Writer, day *models.DaySummary, entries []*models.Entry) error {
	title := fmt.Sprintf("اليوم رقم %d", day.ID)
	if day.Title != nil && *day.Title != "" {
		title = *day.Title
	}

	totals := SumEntries(entries)
	data := printData{
		Date:          day.OrderDate.String(),
		Title:         title,
		Rows:          make([]printRow, 0, len(entries)),
		TotalQuantity: totals.Quantity,
		TotalILS:      totals.TotalILS.StringFixed(2),
	}
	for _, e := range entries {
		data.Rows = append(data.Rows, printRow{
			Name:        e.CustomerName,
			Quantity:    e.Quantity,
			Total:       e.TotalILS.StringFixed(2),
			PickedUp:    e.PickedUp,
			Paid:        e.Paid,
			NeedsChange: e.NeedsChange,
			Notes:       notesOf(e),
		})
	}

	return printTemplate.Execute(w, data)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func notesOf(e *models.Entry) string {
	if e.Notes == nil {
		return ""
	}
	return strings.TrimSpace(*e.Notes)
}
