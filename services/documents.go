package services

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/Govind-619/OrderSphere/models"
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"
)

const invoiceNameWidth = 48

// RenderInvoice prints an order as a one page A4 PDF.
func RenderInvoice(order models.Order, client models.Client) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, utils.AppName)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "ORDER")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(50, 8, "Order ID: "+strconv.Itoa(int(order.ID)))
	pdf.Cell(70, 8, "Ordered: "+order.OrderedAt.Format("2006-01-02 15:04"))
	pdf.Ln(8)
	pdf.Cell(50, 8, "Status: "+order.Status)
	pdf.Cell(70, 8, "Delivered: "+order.DeliveredAt.Format("2006-01-02"))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Client:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, tr(client.Name))
	pdf.Ln(6)
	if client.TaxID != "" {
		pdf.Cell(100, 8, "Tax ID: "+client.TaxID)
		pdf.Ln(6)
	}
	if !client.IsPrimary(order.ClientID) {
		pdf.Cell(100, 8, fmt.Sprintf("Secondary account #%d", order.ClientID))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(25, 8, "Code", "1", 0, "C", false, 0, "")
	pdf.CellFormat(85, 8, "Product", "1", 0, "C", false, 0, "")
	pdf.CellFormat(15, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(32, 8, "Price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(33, 8, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, item := range order.Items {
		code, name := "", fmt.Sprintf("Product #%d", item.ProductID)
		if item.Product != nil {
			code = item.Product.Code
			name = utils.Title(item.Product.Name)
		}
		pdf.CellFormat(25, 8, code, "1", 0, "L", false, 0, "")
		pdf.CellFormat(85, 8, tr(utils.Truncate(name, invoiceNameWidth)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(15, 8, strconv.Itoa(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(32, 8, utils.FormatMoney(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(33, 8, utils.FormatMoney(item.Subtotal()), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(125, 8, "Bundles:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(65, 8, strconv.Itoa(order.BundleCount()), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(125, 10, "Total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(65, 10, utils.FormatMoney(order.TotalAmount), "", 1, "R", false, 0, "")

	if order.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "I", 11)
		pdf.MultiCell(0, 6, tr("Notes: "+order.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %d: %w", order.ID, err)
	}
	return buf.Bytes(), nil
}

var draftExportHeaders = []string{
	"Draft ID", "Client ID", "Client", "Submitted", "Item ID", "Code", "Product",
	"Quantity", "Unit", "Base price", "Unit price", "Total", "Discount %", "Offer ID", "Notes",
}

// RenderDraftExport writes one row per draft line of the given drafts.
func RenderDraftExport(drafts []models.DraftOrder) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Submitted drafts")
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range draftExportHeaders {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	var total float64
	for _, d := range drafts {
		clientName := ""
		if d.Client != nil {
			clientName = d.Client.Name
		}
		submitted := ""
		if d.SubmittedAt != nil {
			submitted = d.SubmittedAt.Format("2006-01-02 15:04")
		}
		for _, it := range d.Items {
			row := sheet.AddRow()
			row.AddCell().SetInt(int(d.ID))
			row.AddCell().SetInt(int(d.ClientID))
			row.AddCell().SetString(clientName)
			row.AddCell().SetString(submitted)
			row.AddCell().SetInt(int(it.ID))
			code := ""
			if it.Product != nil {
				code = it.Product.Code
			}
			row.AddCell().SetString(code)
			row.AddCell().SetString(it.Description)
			row.AddCell().SetInt(it.Quantity)
			row.AddCell().SetString(it.Unit)
			row.AddCell().SetFloat(it.BasePrice)
			row.AddCell().SetFloat(it.UnitPrice)
			row.AddCell().SetFloat(it.TotalPrice)
			row.AddCell().SetFloat(it.DiscountPercent)
			if it.OfferID != nil {
				row.AddCell().SetInt(int(*it.OfferID))
			} else {
				row.AddCell().SetString("")
			}
			row.AddCell().SetString(it.Notes)
			total += it.TotalPrice
		}
	}

	sheet.AddRow()
	summary := sheet.AddRow()
	summary.AddCell().SetString("Drafts")
	summary.AddCell().SetInt(len(drafts))
	summary = sheet.AddRow()
	summary.AddCell().SetString("Estimated total")
	summary.AddCell().SetString(utils.FormatMoney(total))

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
