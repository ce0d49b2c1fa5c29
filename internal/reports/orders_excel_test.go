package reports

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildOrdersWorkbook(t *testing.T) {
	data, err := BuildOrdersWorkbook("Заказы за май 2024", []OrderRow{
		{ID: 12, Date: "03.05 10:00", Type: "⚙️ Станок", Status: "🔥 НОВЫЙ", Client: "Иван", Phone: "+7 (916) 085-60-70"},
		{ID: 11, Date: "02.05 09:15", Type: "🔧 Двигатель", Status: "✅ ГОТОВ", Client: "Пётр"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "Заказы за май 2024", props.Title)

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, orderHeaders, rows[0])
	assert.Equal(t, "12", rows[1][0])
	assert.Equal(t, "+7 (916) 085-60-70", rows[1][6])
	assert.Equal(t, "Пётр", rows[2][4])
}

func TestBuildOrdersWorkbook_Empty(t *testing.T) {
	data, err := BuildOrdersWorkbook("", nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
