package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anhpham77346/pharma-care/config"
	"github.com/anhpham77346/pharma-care/models"
	"github.com/anhpham77346/pharma-care/routes"
	"github.com/anhpham77346/pharma-care/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-for-pharma-care-tests")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Employee{},
		&models.MedicineCategory{},
		&models.Medicine{},
		&models.Supplier{},
		&models.SaleInvoice{},
		&models.SaleInvoiceDetail{},
		&models.StockAlertLog{},
	))

	config.DB = db
	return db
}

func doRequest(r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func seedEmployee(t *testing.T, db *gorm.DB, username string) models.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	birthDate := time.Date(1990, 1, 15, 0, 0, 0, 0, time.Local)
	employee := models.Employee{
		FullName:     "Test Employee",
		BirthDate:    &birthDate,
		Address:      "1 Test Street",
		Phone:        "+84" + username,
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(&employee).Error)
	return employee
}

func tokenFor(t *testing.T, employee models.Employee) string {
	t.Helper()
	token, err := utils.GenerateToken(employee.ID, employee.Username)
	require.NoError(t, err)
	return token
}

func seedCategory(t *testing.T, db *gorm.DB, name string) models.MedicineCategory {
	t.Helper()
	category := models.MedicineCategory{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func seedMedicine(t *testing.T, db *gorm.DB, name string, price, quantity, categoryID int) models.Medicine {
	t.Helper()
	medicine := models.Medicine{
		Name:       name,
		Price:      price,
		Quantity:   quantity,
		CategoryID: categoryID,
	}
	require.NoError(t, db.Create(&medicine).Error)
	return medicine
}

func seedInvoice(t *testing.T, db *gorm.DB, employeeID int, date time.Time, details ...models.SaleInvoiceDetail) models.SaleInvoice {
	t.Helper()
	invoice := models.SaleInvoice{InvoiceDate: date, EmployeeID: employeeID}
	require.NoError(t, db.Create(&invoice).Error)
	for i := range details {
		details[i].SaleInvoiceID = invoice.ID
		require.NoError(t, db.Create(&details[i]).Error)
	}
	return invoice
}

func newRouter() *gin.Engine {
	return routes.SetupRouter()
}
