package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/Roezin7/SistemaGestion/internal/finance"
	"github.com/Roezin7/SistemaGestion/internal/models"
	"github.com/Roezin7/SistemaGestion/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler produces CSV and XLSX reports of the financial movements.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeaders = []string{"Fecha", "Tipo", "Concepto", "Monto", "Forma de pago", "Cliente"}

func (h *ExportHandler) fetchMovimientos(r finance.Rango) ([]models.Movimiento, map[uint]string, error) {
	var movimientos []models.Movimiento
	err := h.DB.Where("fecha >= ? AND fecha < ?", r.Inicio, r.Fin.AddDate(0, 0, 1)).
		Order("fecha DESC").
		Find(&movimientos).Error
	if err != nil {
		return nil, nil, err
	}

	nombres := map[uint]string{}
	ids := make([]uint, 0, len(movimientos))
	for i := range movimientos {
		if movimientos[i].ClientID != nil {
			ids = append(ids, *movimientos[i].ClientID)
		}
	}
	if len(ids) > 0 {
		var clientes []models.Cliente
		if err := h.DB.Where("id IN ?", ids).Find(&clientes).Error; err != nil {
			return nil, nil, err
		}
		for i := range clientes {
			nombres[clientes[i].ID] = clientes[i].Nombre
		}
	}
	return movimientos, nombres, nil
}

func exportRow(m *models.Movimiento, nombres map[uint]string) []string {
	cliente := ""
	if m.ClientID != nil {
		cliente = nombres[*m.ClientID]
	}
	return []string{
		m.Fecha.Format(fechaLayout),
		m.Tipo,
		m.Concepto,
		formatMonto(m.Monto),
		m.FormaPago,
		cliente,
	}
}

// ExportCSV streams the movements of the requested range as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	r, ok := rangoFromQuery(c)
	if !ok {
		return
	}

	movimientos, nombres, err := h.fetchMovimientos(r)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar movimientos")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"finanzas_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM so Excel renders accents correctly.
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write(exportHeaders)
	for i := range movimientos {
		writer.Write(exportRow(&movimientos[i], nombres))
	}
}

// ExportXLSX streams the movements of the requested range as a workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	r, ok := rangoFromQuery(c)
	if !ok {
		return
	}

	movimientos, nombres, err := h.fetchMovimientos(r)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar movimientos")
		return
	}

	f := excelize.NewFile()
	sheetName := "Finanzas"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al crear hoja")
		return
	}
	f.SetActiveSheet(index)

	for i, col := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, col)
	}
	for idx := range movimientos {
		row := idx + 2
		for i, valor := range exportRow(&movimientos[idx], nombres) {
			cell := fmt.Sprintf("%c%d", 'A'+i, row)
			f.SetCellValue(sheetName, cell, valor)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "C", 30)
	f.SetColWidth(sheetName, "D", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 15)
	f.SetColWidth(sheetName, "F", "F", 25)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"finanzas_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al exportar")
	}
}
