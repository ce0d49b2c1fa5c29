package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Заказы"

var orderHeaders = []string{
	"ID Заказа", "Дата", "Тип", "Статус", "Клиент", "Username", "Телефон",
	"Вид работ", "Размеры / автомобиль", "Условия", "Срочность", "Комментарий", "Заметка",
}

// OrderRow - строка отчёта, уже приведённая к отображаемому виду.
type OrderRow struct {
	ID           int64
	Date         string
	Type         string
	Status       string
	Client       string
	Username     string
	Phone        string
	WorkType     string
	Dimensions   string
	Conditions   string
	Urgency      string
	Comment      string
	InternalNote string
}

func (r OrderRow) values() []any {
	return []any{
		r.ID, r.Date, r.Type, r.Status, r.Client, r.Username, r.Phone,
		r.WorkType, r.Dimensions, r.Conditions, r.Urgency, r.Comment, r.InternalNote,
	}
}

// BuildOrdersWorkbook собирает xlsx со списком заказов и возвращает его байты.
// title попадает в свойства документа.
func BuildOrdersWorkbook(title string, rows []OrderRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetDocProps(&excelize.DocProperties{Title: title, Creator: "motorist-crm"}); err != nil {
		return nil, fmt.Errorf("ошибка записи свойств документа: %w", err)
	}

	// NewFile создаёт лист Sheet1, переименовываем его.
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("ошибка создания листа: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания стиля: %w", err)
	}

	for i, header := range orderHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("ошибка записи заголовка: %w", err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(orderHeaders), 1)
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("ошибка применения стиля: %w", err)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := row.values()
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("ошибка записи строки заказа #%d: %w", row.ID, err)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 10)
	_ = f.SetColWidth(sheetName, "B", "G", 18)
	_ = f.SetColWidth(sheetName, "H", "M", 30)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("ошибка сохранения отчёта: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}
