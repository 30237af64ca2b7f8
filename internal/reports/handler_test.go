package reports

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"portal-backend/internal/auth"
	"portal-backend/internal/config"
	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	database.DB = db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "0123456789abcdef0123456789abcdef",
		StorageSecret: "secreto-de-storage-para-pruebas",
		SiteURL:       "http://portal.test",
	}
}

func newReportsApp(cfg *config.Config) *fiber.App {
	app := fiber.New()

	api := app.Group("/api")
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/reports", ListReportsHandler())
	protected.Get("/reports/:id", GetReportHandler())
	protected.Get("/reports/:id/download", DownloadReportHandler(cfg))

	return app
}

func makeUser(t *testing.T, email string, role models.UserRole, companyID *uint) models.User {
	t.Helper()

	user := models.User{Email: email, Role: role, CompanyID: companyID}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func makeCompany(t *testing.T, name, slug string) models.Company {
	t.Helper()

	company := models.Company{Name: name, Slug: slug}
	require.NoError(t, database.DB.Create(&company).Error)
	return company
}

func makeReport(t *testing.T, companyID uint, title string, month, year int, status models.ReportStatus, pdfPath string) models.Report {
	t.Helper()

	report := models.Report{
		CompanyID:   companyID,
		Title:       title,
		PeriodMonth: month,
		PeriodYear:  year,
		Status:      status,
		PDFPath:     pdfPath,
	}
	require.NoError(t, database.DB.Create(&report).Error)
	return report
}

func getWithToken(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	req.Header.Set(fiber.HeaderAuthorization, authHeader)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bearer(t *testing.T, cfg *config.Config, user *models.User) string {
	t.Helper()

	token, err := auth.GenerateToken(cfg.JWTSecret, user)
	require.NoError(t, err)
	return "Bearer " + token
}

func decodeReports(t *testing.T, resp *http.Response) []ReportResponse {
	t.Helper()

	var body []ReportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// Un cliente nunca recibe reportes de otra empresa ni borradores.
func TestListReportsScopedToCompany(t *testing.T) {
	setupDB(t)
	cfg := testConfig()
	app := newReportsApp(cfg)

	acme := makeCompany(t, "Acme", "acme")
	globex := makeCompany(t, "Globex", "globex")
	client := makeUser(t, "cliente@acme.com", models.RoleClient, &acme.ID)

	makeReport(t, acme.ID, "Acme Marzo", 3, 2024, models.ReportPublished, "")
	makeReport(t, acme.ID, "Acme Borrador", 4, 2024, models.ReportDraft, "")
	makeReport(t, globex.ID, "Globex Marzo", 3, 2024, models.ReportPublished, "")

	resp := getWithToken(t, app, "/api/reports", bearer(t, cfg, &client))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeReports(t, resp)
	require.Len(t, body, 1)
	assert.Equal(t, "Acme Marzo", body[0].Title)
	assert.Equal(t, "acme", body[0].Company.Slug)
	assert.Equal(t, "Marzo 2024", body[0].Period)
}

func TestListReportsAdminSeesAll(t *testing.T) {
	setupDB(t)
	cfg := testConfig()
	app := newReportsApp(cfg)

	acme := makeCompany(t, "Acme", "acme")
	globex := makeCompany(t, "Globex", "globex")
	adminUser := makeUser(t, "admin@tandem.com", models.RoleAdmin, nil)

	makeReport(t, acme.ID, "Acme Marzo", 3, 2024, models.ReportPublished, "")
	makeReport(t, globex.ID, "Globex Febrero", 2, 2024, models.ReportPublished, "")
	makeReport(t, globex.ID, "Globex Borrador", 4, 2024, models.ReportDraft, "")

	resp := getWithToken(t, app, "/api/reports", bearer(t, cfg, &adminUser))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeReports(t, resp), 2)

	resp = getWithToken(t, app, "/api/reports?include_drafts=true", bearer(t, cfg, &adminUser))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeReports(t, resp), 3)
}

func TestListReportsOrderedByPeriodDesc(t *testing.T) {
	setupDB(t)
	cfg := testConfig()
	app := newReportsApp(cfg)

	acme := makeCompany(t, "Acme", "acme")
	adminUser := makeUser(t, "admin@tandem.com", models.RoleAdmin, nil)

	makeReport(t, acme.ID, "Enero 2023", 1, 2023, models.ReportPublished, "")
	makeReport(t, acme.ID, "Diciembre 2024", 12, 2024, models.ReportPublished, "")
	makeReport(t, acme.ID, "Marzo 2024", 3, 2024, models.ReportPublished, "")

	resp := getWithToken(t, app, "/api/reports", bearer(t, cfg, &adminUser))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeReports(t, resp)
	require.Len(t, body, 3)
	assert.Equal(t, "Diciembre 2024", body[0].Title)
	assert.Equal(t, "Marzo 2024", body[1].Title)
	assert.Equal(t, "Enero 2023", body[2].Title)
}

func TestListReportsClientWithoutCompany(t *testing.T) {
	setupDB(t)
	cfg := testConfig()
	app := newReportsApp(cfg)

	acme := makeCompany(t, "Acme", "acme")
	orphan := makeUser(t, "sin-empresa@x.com", models.RoleClient, nil)
	makeReport(t, acme.ID, "Acme Marzo", 3, 2024, models.ReportPublished, "")

	resp := getWithToken(t, app, "/api/reports", bearer(t, cfg, &orphan))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeReports(t, resp), 0)
}

// Un reporte ajeno responde igual que uno inexistente.
func TestGetReportForeignCompany(t *testing.T) {
	setupDB(t)
	cfg := testConfig()
	app := newReportsApp(cfg)

	acme := makeCompany(t, "Acme", "acme")
	globex := makeCompany(t, "Globex", "globex")
	client := makeUser(t, "cliente@acme.com", models.RoleClient, &acme.ID)

	own := makeReport(t, acme.ID, "Acme Marzo", 3, 2024, models.ReportPublished, "")
	foreign := makeReport(t, globex.ID, "Globex Marzo", 3, 2024, models.ReportPublished, "")
	draft := makeReport(t, acme.ID, "Acme Borrador", 4, 2024, models.ReportDraft, "")

	token := bearer(t, cfg, &client)

	resp := getWithToken(t, app, fmt.Sprintf("/api/reports/%d", own.ID), token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = getWithToken(t, app, fmt.Sprintf("/api/reports/%d", foreign.ID), token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = getWithToken(t, app, fmt.Sprintf("/api/reports/%d", draft.ID), token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDownloadReportWithoutPDF(t *testing.T) {
	setupDB(t)
	cfg := testConfig()
	app := newReportsApp(cfg)

	acme := makeCompany(t, "Acme", "acme")
	client := makeUser(t, "cliente@acme.com", models.RoleClient, &acme.ID)
	report := makeReport(t, acme.ID, "Acme Marzo", 3, 2024, models.ReportPublished, "")

	path := fmt.Sprintf("/api/reports/%d/download", report.ID)
	resp := getWithToken(t, app, path, bearer(t, cfg, &client))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// La descarga redirige a una URL firmada recién acuñada; dos pedidos
// nunca reciben la misma URL.
func TestDownloadReportRedirectsToFreshSignedURL(t *testing.T) {
	setupDB(t)
	cfg := testConfig()
	app := newReportsApp(cfg)

	acme := makeCompany(t, "Acme", "acme")
	client := makeUser(t, "cliente@acme.com", models.RoleClient, &acme.ID)
	report := makeReport(t, acme.ID, "Acme Marzo", 3, 2024, models.ReportPublished, "reports/acme/informe.pdf")

	path := fmt.Sprintf("/api/reports/%d/download", report.ID)
	token := bearer(t, cfg, &client)

	first := getWithToken(t, app, path, token)
	require.Equal(t, fiber.StatusFound, first.StatusCode)
	firstURL := first.Header.Get(fiber.HeaderLocation)
	require.Contains(t, firstURL, "/files/reports/acme/informe.pdf")

	second := getWithToken(t, app, path, token)
	require.Equal(t, fiber.StatusFound, second.StatusCode)
	secondURL := second.Header.Get(fiber.HeaderLocation)

	assert.NotEqual(t, firstURL, secondURL)
}

func TestDownloadForeignReport(t *testing.T) {
	setupDB(t)
	cfg := testConfig()
	app := newReportsApp(cfg)

	acme := makeCompany(t, "Acme", "acme")
	globex := makeCompany(t, "Globex", "globex")
	client := makeUser(t, "cliente@acme.com", models.RoleClient, &acme.ID)
	foreign := makeReport(t, globex.ID, "Globex Marzo", 3, 2024, models.ReportPublished, "reports/globex/informe.pdf")

	path := fmt.Sprintf("/api/reports/%d/download", foreign.ID)
	resp := getWithToken(t, app, path, bearer(t, cfg, &client))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
