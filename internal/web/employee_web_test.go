package web

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"Backoffice/internal/repo"
	"Backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

func newEmployeePages(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewEmployeeService(repo.NewMemEmployeeRepo(), nil, nil, log)
	h := NewEmployeeWeb(svc, log)

	r := gin.New()
	r.SetHTMLTemplate(Templates())
	r.GET("/employees", h.List)
	r.GET("/employees/create", h.CreateForm)
	r.POST("/employees/create", h.Create)
	r.GET("/employees/update/:id", h.UpdateForm)
	r.POST("/employees/update/:id", h.Update)
	r.GET("/employees/delete/:id", h.DeleteConfirm)
	r.POST("/employees/delete/:id", h.Delete)
	return r
}

func sampleEmployeeForm() url.Values {
	return url.Values{
		"full_name":       {"John Doe"},
		"date_of_birth":   {"1990-01-01"},
		"gender":          {"M"},
		"phone_number":    {"+1234567890"},
		"email":           {"john.doe@example.com"},
		"address":         {"123 Main St, City"},
		"job_title":       {"Software Engineer"},
		"department":      {"Engineering"},
		"employee_id":     {"EMP001"},
		"date_of_joining": {"2023-01-01"},
		"work_location":   {"New York"},
	}
}

func postForm(t *testing.T, r *gin.Engine, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getPage(t *testing.T, r *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEmployeeCreateFlow(t *testing.T) {
	r := newEmployeePages(t)

	w := getPage(t, r, "/employees/create")
	if w.Code != http.StatusOK {
		t.Fatalf("form status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Register New Employee") {
		t.Fatalf("form page missing heading")
	}

	w = postForm(t, r, "/employees/create", sampleEmployeeForm())
	if w.Code != http.StatusSeeOther {
		t.Fatalf("submit status = %d, body %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/employees" {
		t.Fatalf("redirect to %q", loc)
	}

	// Follow the redirect with the flash cookie; the listing shows
	// the new row and the success notice, and clears the cookie.
	flash := getFlashCookie(t, w)
	w = getPage(t, r, "/employees", flash)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Employee registered successfully!") {
		t.Fatalf("missing flash message in listing:\n%s", body)
	}
	if !strings.Contains(body, "John Doe") || !strings.Contains(body, "EMP001") {
		t.Fatalf("missing employee row in listing:\n%s", body)
	}
	if !cookieCleared(w) {
		t.Fatalf("expected flash cookie to be cleared")
	}
}

func TestEmployeeCreateInvalidRerenders(t *testing.T) {
	r := newEmployeePages(t)

	form := sampleEmployeeForm()
	form.Set("email", "not-an-email")
	form.Set("full_name", "")
	w := postForm(t, r, "/employees/create", form)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected re-render", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Enter a valid email address.") {
		t.Fatalf("missing email error:\n%s", body)
	}
	if !strings.Contains(body, "This field is required.") {
		t.Fatalf("missing required error:\n%s", body)
	}
	// Submitted values are kept so the user does not retype everything.
	if !strings.Contains(body, "not-an-email") || !strings.Contains(body, "+1234567890") {
		t.Fatalf("submitted values not preserved:\n%s", body)
	}
}

func TestEmployeeCreateDuplicateNotice(t *testing.T) {
	r := newEmployeePages(t)

	if w := postForm(t, r, "/employees/create", sampleEmployeeForm()); w.Code != http.StatusSeeOther {
		t.Fatalf("first submit status = %d", w.Code)
	}
	second := sampleEmployeeForm()
	second.Set("employee_id", "EMP002")
	w := postForm(t, r, "/employees/create", second)
	if w.Code != http.StatusOK {
		t.Fatalf("duplicate submit status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Error saving employee: email already exists") {
		t.Fatalf("missing duplicate notice:\n%s", w.Body.String())
	}
}

func TestEmployeeUpdateFlow(t *testing.T) {
	r := newEmployeePages(t)

	if w := postForm(t, r, "/employees/create", sampleEmployeeForm()); w.Code != http.StatusSeeOther {
		t.Fatalf("create status = %d", w.Code)
	}

	w := getPage(t, r, "/employees/update/1")
	if w.Code != http.StatusOK {
		t.Fatalf("edit form status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "john.doe@example.com") {
		t.Fatalf("edit form not prefilled:\n%s", w.Body.String())
	}

	form := sampleEmployeeForm()
	form.Set("job_title", "Senior Engineer")
	w = postForm(t, r, "/employees/update/1", form)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}

	flash := getFlashCookie(t, w)
	w = getPage(t, r, "/employees", flash)
	body := w.Body.String()
	if !strings.Contains(body, "Employee updated successfully!") {
		t.Fatalf("missing update flash:\n%s", body)
	}
	if !strings.Contains(body, "Senior Engineer") {
		t.Fatalf("listing missing updated title:\n%s", body)
	}

	if w := getPage(t, r, "/employees/update/999"); w.Code != http.StatusNotFound {
		t.Fatalf("missing employee form status = %d", w.Code)
	}
}

func TestEmployeeDeleteFlow(t *testing.T) {
	r := newEmployeePages(t)

	if w := postForm(t, r, "/employees/create", sampleEmployeeForm()); w.Code != http.StatusSeeOther {
		t.Fatalf("create status = %d", w.Code)
	}

	w := getPage(t, r, "/employees/delete/1")
	if w.Code != http.StatusOK {
		t.Fatalf("confirm status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Are you sure you want to delete John Doe") {
		t.Fatalf("missing confirmation prompt:\n%s", w.Body.String())
	}

	w = postForm(t, r, "/employees/delete/1", url.Values{})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("delete status = %d", w.Code)
	}

	flash := getFlashCookie(t, w)
	w = getPage(t, r, "/employees", flash)
	body := w.Body.String()
	if !strings.Contains(body, "Employee deleted successfully!") {
		t.Fatalf("missing delete flash:\n%s", body)
	}
	if strings.Contains(body, "John Doe") {
		t.Fatalf("deleted employee still listed:\n%s", body)
	}

	if w := postForm(t, r, "/employees/delete/1", url.Values{}); w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", w.Code)
	}
	if w := getPage(t, r, "/employees/delete/abc"); w.Code != http.StatusNotFound {
		t.Fatalf("bad id status = %d", w.Code)
	}
}

// getFlashCookie pulls the flash cookie out of a redirect response.
func getFlashCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == flashCookie && ck.MaxAge > 0 {
			return ck
		}
	}
	t.Fatalf("no flash cookie set; headers: %v", w.Header())
	return nil
}

func cookieCleared(w *httptest.ResponseRecorder) bool {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == flashCookie && ck.MaxAge < 0 {
			return true
		}
	}
	return false
}
