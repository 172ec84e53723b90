// controllers/report.go
package controllers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/anhpham77346/pharma-care/config"
	"github.com/anhpham77346/pharma-care/models"
	"github.com/anhpham77346/pharma-care/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type RevenueBucket struct {
	Name     string `json:"name"`
	Revenue  int    `json:"revenue"`
	Quantity int    `json:"quantity"`
}

type DailyRevenue struct {
	Date    string `json:"date"`
	Revenue int    `json:"revenue"`
}

// revenueReport accumulates line revenue over all invoices in a date range.
// All monetary values are integers in the smallest currency unit, so the sums
// are exact.
type revenueReport struct {
	TotalRevenue int
	InvoiceCount int
	Start        time.Time
	End          time.Time

	byMedicine map[int]*RevenueBucket
	byCategory map[int]*RevenueBucket
	byDay      map[string]int
}

func buildRevenueReport(start, end time.Time) (*revenueReport, error) {
	var invoices []models.SaleInvoice
	err := config.DB.
		Preload("Details.Medicine.Category").
		Where("invoice_date BETWEEN ? AND ?", start, end).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}

	report := &revenueReport{
		Start:      start,
		End:        end,
		byMedicine: make(map[int]*RevenueBucket),
		byCategory: make(map[int]*RevenueBucket),
		byDay:      make(map[string]int),
	}
	report.InvoiceCount = len(invoices)

	for _, invoice := range invoices {
		day := invoice.InvoiceDate.Format(utils.DateLayout)

		for _, detail := range invoice.Details {
			revenue := detail.Quantity * detail.UnitPrice
			report.TotalRevenue += revenue
			report.byDay[day] += revenue

			if detail.Medicine == nil {
				continue
			}

			bucket, ok := report.byMedicine[detail.MedicineID]
			if !ok {
				bucket = &RevenueBucket{Name: detail.Medicine.Name}
				report.byMedicine[detail.MedicineID] = bucket
			}
			bucket.Revenue += revenue
			bucket.Quantity += detail.Quantity

			if detail.Medicine.Category != nil {
				categoryID := detail.Medicine.CategoryID
				bucket, ok := report.byCategory[categoryID]
				if !ok {
					bucket = &RevenueBucket{Name: detail.Medicine.Category.Name}
					report.byCategory[categoryID] = bucket
				}
				bucket.Revenue += revenue
				bucket.Quantity += detail.Quantity
			}
		}
	}

	return report, nil
}

func (r *revenueReport) MedicinesByRevenue() []RevenueBucket {
	return sortedBuckets(r.byMedicine)
}

func (r *revenueReport) CategoriesByRevenue() []RevenueBucket {
	return sortedBuckets(r.byCategory)
}

func (r *revenueReport) DailyByDateDesc() []DailyRevenue {
	daily := make([]DailyRevenue, 0, len(r.byDay))
	for date, revenue := range r.byDay {
		daily = append(daily, DailyRevenue{Date: date, Revenue: revenue})
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date > daily[j].Date
	})
	return daily
}

func (r *revenueReport) TimeRange() gin.H {
	return gin.H{
		"start": r.Start.Format(utils.DateLayout),
		"end":   r.End.Format(utils.DateLayout),
	}
}

func sortedBuckets(m map[int]*RevenueBucket) []RevenueBucket {
	buckets := make([]RevenueBucket, 0, len(m))
	for _, b := range m {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Revenue > buckets[j].Revenue
	})
	return buckets
}

// GetRevenueReport aggregates invoice line revenue over a date range,
// optionally grouped by medicine, category or day.
func GetRevenueReport(c *gin.Context) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate == "" || endDate == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Start date and end date are required")
		return
	}

	start, end, err := utils.ParseDateRange(startDate, endDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	report, err := buildRevenueReport(start, end)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate revenue report")
		return
	}

	var groupedData interface{}
	switch c.Query("groupBy") {
	case "medicine":
		groupedData = report.MedicinesByRevenue()
	case "category":
		groupedData = report.CategoriesByRevenue()
	case "daily":
		groupedData = report.DailyByDateDesc()
	default:
		groupedData = gin.H{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"totalRevenue": report.TotalRevenue,
			"invoiceCount": report.InvoiceCount,
			"timeRange":    report.TimeRange(),
			"groupedData":  groupedData,
		},
	})
}

// ExportRevenueReport writes the revenue report for a date range as an Excel
// workbook.
func ExportRevenueReport(c *gin.Context) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate == "" || endDate == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Start date and end date are required")
		return
	}

	start, end, err := utils.ParseDateRange(startDate, endDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	report, err := buildRevenueReport(start, end)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate revenue report")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Revenue"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "Revenue Report")
	f.SetCellValue(sheet, "A2", "Period")
	f.SetCellValue(sheet, "B2", fmt.Sprintf("%s - %s",
		report.Start.Format(utils.DateLayout), report.End.Format(utils.DateLayout)))
	f.SetCellValue(sheet, "A3", "Total Revenue")
	f.SetCellValue(sheet, "B3", report.TotalRevenue)
	f.SetCellValue(sheet, "A4", "Invoice Count")
	f.SetCellValue(sheet, "B4", report.InvoiceCount)

	f.SetCellValue(sheet, "A6", "Medicine")
	f.SetCellValue(sheet, "B6", "Quantity Sold")
	f.SetCellValue(sheet, "C6", "Revenue")
	row := 7
	for _, bucket := range report.MedicinesByRevenue() {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), bucket.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), bucket.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), bucket.Revenue)
		row++
	}

	row += 1
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Date")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Revenue")
	row++
	for _, daily := range report.DailyByDateDesc() {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), daily.Date)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), daily.Revenue)
		row++
	}

	filename := fmt.Sprintf("revenue-%s-%s.xlsx",
		report.Start.Format(utils.DateLayout), report.End.Format(utils.DateLayout))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to export revenue report")
		return
	}
}
