package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/anhpham77346/pharma-care/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSaleInvoice(t *testing.T) {
	db := setupTest(t)
	r := newRouter()
	employee := seedEmployee(t, db, "cashier1")
	token := tokenFor(t, employee)
	category := seedCategory(t, db, "Painkillers")

	t.Run("decrements stock and returns invoice with details", func(t *testing.T) {
		medicine := seedMedicine(t, db, "Panadol Extra", 1000, 10, category.ID)

		w := doRequest(r, http.MethodPost, "/api/sale-invoices", map[string]interface{}{
			"items": []map[string]int{
				{"medicineId": medicine.ID, "quantity": 3, "unitPrice": 1000},
			},
		}, token)

		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Sale invoice created successfully", body["message"])

		data := body["data"].(map[string]interface{})
		invoice := data["invoice"].(map[string]interface{})
		assert.Equal(t, float64(employee.ID), invoice["employeeId"])

		details := data["details"].([]interface{})
		require.Len(t, details, 1)
		detail := details[0].(map[string]interface{})
		assert.Equal(t, float64(medicine.ID), detail["medicineId"])
		assert.Equal(t, float64(3), detail["quantity"])
		assert.Equal(t, float64(1000), detail["unitPrice"])
		assert.Equal(t, invoice["id"], detail["saleInvoiceId"])

		var reloaded models.Medicine
		require.NoError(t, db.First(&reloaded, medicine.ID).Error)
		assert.Equal(t, 7, reloaded.Quantity)
	})

	t.Run("rejects insufficient stock without side effects", func(t *testing.T) {
		medicine := seedMedicine(t, db, "Amoxicillin", 2000, 2, category.ID)

		var invoicesBefore int64
		db.Model(&models.SaleInvoice{}).Count(&invoicesBefore)

		w := doRequest(r, http.MethodPost, "/api/sale-invoices", map[string]interface{}{
			"items": []map[string]int{
				{"medicineId": medicine.ID, "quantity": 5, "unitPrice": 1000},
			},
		}, token)

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Insufficient inventory for medicine: Amoxicillin", body["message"])

		var reloaded models.Medicine
		require.NoError(t, db.First(&reloaded, medicine.ID).Error)
		assert.Equal(t, 2, reloaded.Quantity)

		var invoicesAfter int64
		db.Model(&models.SaleInvoice{}).Count(&invoicesAfter)
		assert.Equal(t, invoicesBefore, invoicesAfter)
	})

	t.Run("rejects unknown medicine", func(t *testing.T) {
		var invoicesBefore int64
		db.Model(&models.SaleInvoice{}).Count(&invoicesBefore)

		w := doRequest(r, http.MethodPost, "/api/sale-invoices", map[string]interface{}{
			"items": []map[string]int{
				{"medicineId": 9999, "quantity": 1, "unitPrice": 500},
			},
		}, token)

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Medicine with ID 9999 not found", body["message"])

		var invoicesAfter int64
		db.Model(&models.SaleInvoice{}).Count(&invoicesAfter)
		assert.Equal(t, invoicesBefore, invoicesAfter)
	})

	t.Run("rejects empty items", func(t *testing.T) {
		var invoicesBefore int64
		db.Model(&models.SaleInvoice{}).Count(&invoicesBefore)

		w := doRequest(r, http.MethodPost, "/api/sale-invoices", map[string]interface{}{
			"items": []map[string]int{},
		}, token)

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Invalid input data", body["message"])

		var invoicesAfter int64
		db.Model(&models.SaleInvoice{}).Count(&invoicesAfter)
		assert.Equal(t, invoicesBefore, invoicesAfter)
	})

	t.Run("rejects zero quantity item", func(t *testing.T) {
		medicine := seedMedicine(t, db, "Vitamin C", 500, 10, category.ID)

		w := doRequest(r, http.MethodPost, "/api/sale-invoices", map[string]interface{}{
			"items": []map[string]int{
				{"medicineId": medicine.ID, "quantity": 0, "unitPrice": 500},
			},
		}, token)

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Invalid item data", body["message"])
	})

	t.Run("rolls back every write when a later item fails", func(t *testing.T) {
		first := seedMedicine(t, db, "Ibuprofen", 800, 10, category.ID)
		second := seedMedicine(t, db, "Aspirin", 600, 1, category.ID)

		var detailsBefore int64
		db.Model(&models.SaleInvoiceDetail{}).Count(&detailsBefore)

		w := doRequest(r, http.MethodPost, "/api/sale-invoices", map[string]interface{}{
			"items": []map[string]int{
				{"medicineId": first.ID, "quantity": 5, "unitPrice": 800},
				{"medicineId": second.ID, "quantity": 3, "unitPrice": 600},
			},
		}, token)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var reloadedFirst, reloadedSecond models.Medicine
		require.NoError(t, db.First(&reloadedFirst, first.ID).Error)
		require.NoError(t, db.First(&reloadedSecond, second.ID).Error)
		assert.Equal(t, 10, reloadedFirst.Quantity)
		assert.Equal(t, 1, reloadedSecond.Quantity)

		var detailsAfter int64
		db.Model(&models.SaleInvoiceDetail{}).Count(&detailsAfter)
		assert.Equal(t, detailsBefore, detailsAfter)
	})

	t.Run("preserves request order in details", func(t *testing.T) {
		m1 := seedMedicine(t, db, "Zinc", 300, 10, category.ID)
		m2 := seedMedicine(t, db, "Calcium", 400, 10, category.ID)
		m3 := seedMedicine(t, db, "Magnesium", 500, 10, category.ID)

		w := doRequest(r, http.MethodPost, "/api/sale-invoices", map[string]interface{}{
			"items": []map[string]int{
				{"medicineId": m2.ID, "quantity": 1, "unitPrice": 400},
				{"medicineId": m3.ID, "quantity": 1, "unitPrice": 500},
				{"medicineId": m1.ID, "quantity": 1, "unitPrice": 300},
			},
		}, token)

		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		details := body["data"].(map[string]interface{})["details"].([]interface{})
		require.Len(t, details, 3)

		got := make([]int, 0, 3)
		for _, d := range details {
			got = append(got, int(d.(map[string]interface{})["medicineId"].(float64)))
		}
		assert.Equal(t, []int{m2.ID, m3.ID, m1.ID}, got)
	})

	t.Run("duplicate medicine lines each decrement stock", func(t *testing.T) {
		medicine := seedMedicine(t, db, "Loratadine", 700, 5, category.ID)

		w := doRequest(r, http.MethodPost, "/api/sale-invoices", map[string]interface{}{
			"items": []map[string]int{
				{"medicineId": medicine.ID, "quantity": 2, "unitPrice": 700},
				{"medicineId": medicine.ID, "quantity": 2, "unitPrice": 700},
			},
		}, token)

		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		details := body["data"].(map[string]interface{})["details"].([]interface{})
		assert.Len(t, details, 2)

		var reloaded models.Medicine
		require.NoError(t, db.First(&reloaded, medicine.ID).Error)
		assert.Equal(t, 1, reloaded.Quantity)
	})

	t.Run("duplicate medicine lines cannot jointly oversell", func(t *testing.T) {
		medicine := seedMedicine(t, db, "Cetirizine", 900, 5, category.ID)

		w := doRequest(r, http.MethodPost, "/api/sale-invoices", map[string]interface{}{
			"items": []map[string]int{
				{"medicineId": medicine.ID, "quantity": 3, "unitPrice": 900},
				{"medicineId": medicine.ID, "quantity": 3, "unitPrice": 900},
			},
		}, token)

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Insufficient inventory for medicine: Cetirizine", body["message"])

		var reloaded models.Medicine
		require.NoError(t, db.First(&reloaded, medicine.ID).Error)
		assert.Equal(t, 5, reloaded.Quantity)
	})

	t.Run("idempotency key replays the stored invoice", func(t *testing.T) {
		medicine := seedMedicine(t, db, "Omeprazole", 1200, 10, category.ID)

		payload := map[string]interface{}{
			"idempotencyKey": "retry-abc-123",
			"items": []map[string]int{
				{"medicineId": medicine.ID, "quantity": 4, "unitPrice": 1200},
			},
		}

		w1 := doRequest(r, http.MethodPost, "/api/sale-invoices", payload, token)
		require.Equal(t, http.StatusCreated, w1.Code)
		first := decodeBody(t, w1)["data"].(map[string]interface{})["invoice"].(map[string]interface{})

		w2 := doRequest(r, http.MethodPost, "/api/sale-invoices", payload, token)
		require.Equal(t, http.StatusOK, w2.Code)
		body := decodeBody(t, w2)
		assert.Equal(t, "Sale invoice already processed", body["message"])
		replayed := body["data"].(map[string]interface{})["invoice"].(map[string]interface{})
		assert.Equal(t, first["id"], replayed["id"])

		var reloaded models.Medicine
		require.NoError(t, db.First(&reloaded, medicine.ID).Error)
		assert.Equal(t, 6, reloaded.Quantity)
	})

	t.Run("requires authentication", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/api/sale-invoices", map[string]interface{}{
			"items": []map[string]int{{"medicineId": 1, "quantity": 1, "unitPrice": 100}},
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetSaleInvoiceById(t *testing.T) {
	db := setupTest(t)
	r := newRouter()
	employee := seedEmployee(t, db, "cashier2")
	token := tokenFor(t, employee)
	category := seedCategory(t, db, "Antibiotics")
	medicine := seedMedicine(t, db, "Augmentin", 3500, 20, category.ID)

	invoice := seedInvoice(t, db, employee.ID, time.Now(),
		models.SaleInvoiceDetail{MedicineID: medicine.ID, Quantity: 2, UnitPrice: 3500})

	t.Run("returns invoice with employee and details", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, fmt.Sprintf("/api/sale-invoices/%d", invoice.ID), nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		data := decodeBody(t, w)["data"].(map[string]interface{})
		emp := data["employee"].(map[string]interface{})
		assert.Equal(t, float64(employee.ID), emp["id"])
		assert.Equal(t, employee.FullName, emp["fullName"])

		details := data["details"].([]interface{})
		require.Len(t, details, 1)
		med := details[0].(map[string]interface{})["medicine"].(map[string]interface{})
		assert.Equal(t, "Augmentin", med["name"])
	})

	t.Run("repeated reads return identical data", func(t *testing.T) {
		path := fmt.Sprintf("/api/sale-invoices/%d", invoice.ID)
		w1 := doRequest(r, http.MethodGet, path, nil, token)
		w2 := doRequest(r, http.MethodGet, path, nil, token)
		require.Equal(t, http.StatusOK, w1.Code)
		require.Equal(t, http.StatusOK, w2.Code)
		assert.Equal(t, w1.Body.String(), w2.Body.String())
	})

	t.Run("returns 404 for unknown invoice", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/sale-invoices/424242", nil, token)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSearchInvoicesByDate(t *testing.T) {
	db := setupTest(t)
	r := newRouter()
	employee := seedEmployee(t, db, "cashier3")
	token := tokenFor(t, employee)
	category := seedCategory(t, db, "Cough")
	medicine := seedMedicine(t, db, "Prospan", 4500, 50, category.ID)

	older := seedInvoice(t, db, employee.ID,
		time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local),
		models.SaleInvoiceDetail{MedicineID: medicine.ID, Quantity: 1, UnitPrice: 4500})
	newer := seedInvoice(t, db, employee.ID,
		time.Date(2025, 3, 12, 15, 30, 0, 0, time.Local),
		models.SaleInvoiceDetail{MedicineID: medicine.ID, Quantity: 2, UnitPrice: 4500})
	// Out of range
	seedInvoice(t, db, employee.ID, time.Date(2025, 4, 1, 8, 0, 0, 0, time.Local))

	t.Run("requires both dates", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/sale-invoices/search?startDate=2025-03-01", nil, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Start date and end date are required", body["message"])
	})

	t.Run("returns invoices in range, newest first", func(t *testing.T) {
		w := doRequest(r, http.MethodGet,
			"/api/sale-invoices/search?startDate=2025-03-01&endDate=2025-03-31", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		data := decodeBody(t, w)["data"].([]interface{})
		require.Len(t, data, 2)
		assert.Equal(t, float64(newer.ID), data[0].(map[string]interface{})["id"])
		assert.Equal(t, float64(older.ID), data[1].(map[string]interface{})["id"])
	})

	t.Run("range is inclusive of the end day", func(t *testing.T) {
		w := doRequest(r, http.MethodGet,
			"/api/sale-invoices/search?startDate=2025-03-12&endDate=2025-03-12", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		data := decodeBody(t, w)["data"].([]interface{})
		require.Len(t, data, 1)
		assert.Equal(t, float64(newer.ID), data[0].(map[string]interface{})["id"])
	})
}
